package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stressmap/pkg/palette"
)

// swatchWidth is the number of terminal cells per colour stop.
const swatchWidth = 3

// palettesCommand lists the built-in colour schemes.
func (c *CLI) palettesCommand() *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "palettes",
		Short: "List the built-in colour schemes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			writePalettes(cmd.OutOrStdout(), palette.Default(), plain)
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "print hex stops instead of swatches")
	return cmd
}

// writePalettes writes one line per scheme in name order. The default
// scheme is marked.
func writePalettes(w io.Writer, reg *palette.Registry, plain bool) {
	for _, name := range reg.Names() {
		scheme, _ := reg.Lookup(name)
		label := name
		if name == palette.DefaultName {
			label += " (default)"
		}
		if plain {
			fmt.Fprintf(w, "%s\t%s\n", label, strings.Join(scheme.Stops(), " "))
			continue
		}
		var bar strings.Builder
		for _, hex := range scheme.Stops() {
			bar.WriteString(swatch(hex, swatchWidth))
		}
		writeKeyValue(w, label, bar.String())
	}
}
