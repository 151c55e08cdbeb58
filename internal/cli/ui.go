package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/stressmap/pkg/errors"
)

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

var (
	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// ReportError prints err for the user on w. Coded errors show their message
// followed by the code.
func ReportError(w io.Writer, err error) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+errors.UserMessage(err))
	if code := errors.GetCode(err); code != "" {
		fmt.Fprintln(w, "  "+StyleDim.Render(string(code)))
	}
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// frameStats summarises one render for printStats.
type frameStats struct {
	cells    int
	markers  int
	rejected int
	cached   bool
}

// formatStats renders the stats line without a trailing newline.
func formatStats(s frameStats) string {
	parts := []string{fmt.Sprintf("%d cells", s.cells)}
	if s.markers > 0 {
		parts = append(parts, fmt.Sprintf("%d points", s.markers))
	}
	if s.rejected > 0 {
		parts = append(parts, StyleWarning.Render(fmt.Sprintf("%d rejected", s.rejected)))
	}

	status, statusStyle := iconFresh, styleComputed
	if s.cached {
		status, statusStyle = iconCached, styleCached
	}

	var line strings.Builder
	line.WriteString("  ")
	for i, part := range parts {
		if i > 0 {
			line.WriteString(StyleDim.Render(" · "))
		}
		line.WriteString(StyleDim.Render(part))
	}
	line.WriteString(StyleDim.Render(" · "))
	line.WriteString(statusStyle.Render(status))
	return line.String()
}

// printStats prints render statistics on a single line.
func printStats(s frameStats) {
	fmt.Println(formatStats(s))
}

// swatch renders hex as a block of background colour width cells wide.
func swatch(hex string, width int) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render(strings.Repeat(" ", width))
}

// writeKeyValue writes a labeled value.
func writeKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(18)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}
