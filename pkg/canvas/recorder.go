package canvas

import "slices"

// Op is one recorded drawing call. Style fields hold the state in effect
// when the call was made and are only set for calls that use them.
type Op struct {
	Name      string       `json:"op"`
	Args      []float64    `json:"args,omitempty"`
	Text      string       `json:"text,omitempty"`
	Fill      string       `json:"fill,omitempty"`
	Stroke    string       `json:"stroke,omitempty"`
	LineWidth float64      `json:"line_width,omitempty"`
	Font      string       `json:"font,omitempty"`
	Align     TextAlign    `json:"align,omitempty"`
	Baseline  TextBaseline `json:"baseline,omitempty"`
}

// Op names.
const (
	OpClear     = "clear"
	OpSave      = "save"
	OpRestore   = "restore"
	OpTranslate = "translate"
	OpRotate    = "rotate"
	OpScale     = "scale"
	OpFillRect  = "fillRect"
	OpBeginPath = "beginPath"
	OpMoveTo    = "moveTo"
	OpLineTo    = "lineTo"
	OpArc       = "arc"
	OpFill      = "fill"
	OpStroke    = "stroke"
	OpFillText  = "fillText"
)

// Recorder is a [Surface] that records drawing calls instead of producing
// pixels. Clear drops everything recorded before it, so Ops always describes
// the current frame.
type Recorder struct {
	width, height int
	ops           []Op
	st            state
	stack         []state
}

// NewRecorder creates a 300×150 recorder.
func NewRecorder() *Recorder {
	r := &Recorder{}
	r.Resize(300, 150)
	return r
}

func (r *Recorder) Resize(width, height int) {
	r.width, r.height = max(width, 0), max(height, 0)
	r.ops = nil
	r.st = defaultState()
	r.stack = nil
}

func (r *Recorder) Size() (int, int) { return r.width, r.height }

func (r *Recorder) Clear() {
	r.ops = []Op{{Name: OpClear}}
}

func (r *Recorder) Save() {
	r.stack = append(r.stack, r.st)
	r.record(Op{Name: OpSave})
}

func (r *Recorder) Restore() {
	if len(r.stack) == 0 {
		return
	}
	r.st = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.record(Op{Name: OpRestore})
}

func (r *Recorder) Translate(x, y float64) { r.record(Op{Name: OpTranslate, Args: []float64{x, y}}) }
func (r *Recorder) Rotate(angle float64)   { r.record(Op{Name: OpRotate, Args: []float64{angle}}) }
func (r *Recorder) Scale(sx, sy float64)   { r.record(Op{Name: OpScale, Args: []float64{sx, sy}}) }

func (r *Recorder) SetFillColor(color string)      { r.st.fill = color }
func (r *Recorder) SetStrokeColor(color string)    { r.st.stroke = color }
func (r *Recorder) SetLineWidth(width float64)     { r.st.lineWidth = width }
func (r *Recorder) SetFont(f Font)                 { r.st.font = f }
func (r *Recorder) SetTextAlign(a TextAlign)       { r.st.align = a }
func (r *Recorder) SetTextBaseline(b TextBaseline) { r.st.baseline = b }

func (r *Recorder) FillRect(x, y, w, h float64) {
	r.record(Op{Name: OpFillRect, Args: []float64{x, y, w, h}, Fill: r.st.fill})
}

func (r *Recorder) BeginPath()          { r.record(Op{Name: OpBeginPath}) }
func (r *Recorder) MoveTo(x, y float64) { r.record(Op{Name: OpMoveTo, Args: []float64{x, y}}) }
func (r *Recorder) LineTo(x, y float64) { r.record(Op{Name: OpLineTo, Args: []float64{x, y}}) }

func (r *Recorder) Arc(cx, cy, radius, start, end float64) {
	r.record(Op{Name: OpArc, Args: []float64{cx, cy, radius, start, end}})
}

func (r *Recorder) Fill() { r.record(Op{Name: OpFill, Fill: r.st.fill}) }

func (r *Recorder) Stroke() {
	r.record(Op{Name: OpStroke, Stroke: r.st.stroke, LineWidth: r.st.lineWidth})
}

func (r *Recorder) FillText(text string, x, y float64) {
	r.record(Op{
		Name:     OpFillText,
		Args:     []float64{x, y},
		Text:     text,
		Fill:     r.st.fill,
		Font:     r.st.font.String(),
		Align:    r.st.align,
		Baseline: r.st.baseline,
	})
}

// Ops returns a copy of the recorded calls.
func (r *Recorder) Ops() []Op { return slices.Clone(r.ops) }

// Count returns how many calls named name were recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, op := range r.ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// Texts returns the strings passed to FillText, in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.ops {
		if op.Name == OpFillText {
			out = append(out, op.Text)
		}
	}
	return out
}

func (r *Recorder) record(op Op) { r.ops = append(r.ops, op) }
