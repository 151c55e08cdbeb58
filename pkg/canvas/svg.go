package canvas

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
)

// SVGOption configures an [SVG] surface.
type SVGOption func(*SVG)

// WithSVGBackground paints color behind everything drawn.
func WithSVGBackground(color string) SVGOption {
	return func(s *SVG) { s.background = color }
}

// SVG is a [Surface] that writes SVG elements. Transforms are carried as SVG
// transform lists on every element, so Clear never loses them.
type SVG struct {
	width, height int
	background    string

	body  bytes.Buffer
	st    state
	tf    []string
	stack []svgFrame

	path       strings.Builder
	hasCurrent bool
}

type svgFrame struct {
	st state
	tf []string
}

// NewSVG creates an empty 300×150 SVG surface.
func NewSVG(opts ...SVGOption) *SVG {
	s := &SVG{}
	for _, opt := range opts {
		opt(s)
	}
	s.Resize(300, 150)
	return s
}

func (s *SVG) Resize(width, height int) {
	s.width, s.height = max(width, 0), max(height, 0)
	s.body.Reset()
	s.st = defaultState()
	s.tf = nil
	s.stack = nil
	s.BeginPath()
}

func (s *SVG) Size() (int, int) { return s.width, s.height }

func (s *SVG) Clear() { s.body.Reset() }

func (s *SVG) Save() {
	s.stack = append(s.stack, svgFrame{st: s.st, tf: slices.Clone(s.tf)})
}

func (s *SVG) Restore() {
	if len(s.stack) == 0 {
		return
	}
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.st, s.tf = top.st, top.tf
}

func (s *SVG) Translate(x, y float64) {
	s.tf = append(s.tf, fmt.Sprintf("translate(%s %s)", num(x), num(y)))
}

func (s *SVG) Rotate(angle float64) {
	s.tf = append(s.tf, fmt.Sprintf("rotate(%s)", num(angle*180/math.Pi)))
}

func (s *SVG) Scale(sx, sy float64) {
	s.tf = append(s.tf, fmt.Sprintf("scale(%s %s)", num(sx), num(sy)))
}

func (s *SVG) SetFillColor(color string)      { s.st.fill = color }
func (s *SVG) SetStrokeColor(color string)    { s.st.stroke = color }
func (s *SVG) SetLineWidth(width float64)     { s.st.lineWidth = width }
func (s *SVG) SetFont(f Font)                 { s.st.font = f }
func (s *SVG) SetTextAlign(a TextAlign)       { s.st.align = a }
func (s *SVG) SetTextBaseline(b TextBaseline) { s.st.baseline = b }

func (s *SVG) FillRect(x, y, w, h float64) {
	fmt.Fprintf(&s.body, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"%s/>`+"\n",
		num(x), num(y), num(w), num(h), EscapeXML(s.st.fill), s.transform())
}

func (s *SVG) BeginPath() {
	s.path.Reset()
	s.hasCurrent = false
}

func (s *SVG) MoveTo(x, y float64) {
	fmt.Fprintf(&s.path, "M%s %s ", num(x), num(y))
	s.hasCurrent = true
}

func (s *SVG) LineTo(x, y float64) {
	if !s.hasCurrent {
		s.MoveTo(x, y)
		return
	}
	fmt.Fprintf(&s.path, "L%s %s ", num(x), num(y))
}

func (s *SVG) Arc(cx, cy, r, start, end float64) {
	sx, sy := cx+r*math.Cos(start), cy+r*math.Sin(start)
	if s.hasCurrent {
		s.LineTo(sx, sy)
	} else {
		s.MoveTo(sx, sy)
	}

	sweep := end - start
	if sweep >= 2*math.Pi {
		// A single SVG arc cannot close on itself; split into two halves.
		mx, my := cx+r*math.Cos(start+math.Pi), cy+r*math.Sin(start+math.Pi)
		fmt.Fprintf(&s.path, "A%s %s 0 0 1 %s %s A%s %s 0 0 1 %s %s ",
			num(r), num(r), num(mx), num(my), num(r), num(r), num(sx), num(sy))
		return
	}
	sweep = math.Mod(sweep, 2*math.Pi)
	if sweep < 0 {
		sweep += 2 * math.Pi
	}
	large := 0
	if sweep > math.Pi {
		large = 1
	}
	ex, ey := cx+r*math.Cos(start+sweep), cy+r*math.Sin(start+sweep)
	fmt.Fprintf(&s.path, "A%s %s 0 %d 1 %s %s ", num(r), num(r), large, num(ex), num(ey))
}

func (s *SVG) Fill() {
	if s.path.Len() == 0 {
		return
	}
	fmt.Fprintf(&s.body, `  <path d="%s" fill="%s"%s/>`+"\n",
		strings.TrimSpace(s.path.String()), EscapeXML(s.st.fill), s.transform())
}

func (s *SVG) Stroke() {
	if s.path.Len() == 0 {
		return
	}
	fmt.Fprintf(&s.body, `  <path d="%s" fill="none" stroke="%s" stroke-width="%s"%s/>`+"\n",
		strings.TrimSpace(s.path.String()), EscapeXML(s.st.stroke), num(s.st.lineWidth), s.transform())
}

func (s *SVG) FillText(text string, x, y float64) {
	weight := ""
	if s.st.font.Bold {
		weight = ` font-weight="bold"`
	}
	fmt.Fprintf(&s.body, `  <text x="%s" y="%s" font-family="%s" font-size="%s"%s fill="%s" text-anchor="%s" dominant-baseline="%s"%s>%s</text>`+"\n",
		num(x), num(y), EscapeXML(s.st.font.Family), num(s.st.font.Size), weight, EscapeXML(s.st.fill),
		textAnchor(s.st.align), dominantBaseline(s.st.baseline), s.transform(), EscapeXML(text))
}

// Bytes returns the complete SVG document.
func (s *SVG) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		s.width, s.height, s.width, s.height)
	if s.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", EscapeXML(s.background))
	}
	buf.Write(s.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// WriteTo writes the SVG document to w.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(s.Bytes())
	return int64(n), err
}

func (s *SVG) transform() string {
	if len(s.tf) == 0 {
		return ""
	}
	return ` transform="` + strings.Join(s.tf, " ") + `"`
}

func textAnchor(a TextAlign) string {
	switch a {
	case AlignCenter:
		return "middle"
	case AlignRight:
		return "end"
	default:
		return "start"
	}
}

func dominantBaseline(b TextBaseline) string {
	switch b {
	case BaselineTop:
		return "text-before-edge"
	case BaselineMiddle:
		return "central"
	case BaselineBottom:
		return "text-after-edge"
	default:
		return "alphabetic"
	}
}

// num formats v with at most two decimals and no trailing zeros.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
