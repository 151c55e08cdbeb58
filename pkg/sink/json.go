package sink

import (
	"encoding/json"

	"github.com/matzehuels/stressmap/pkg/canvas"
	"github.com/matzehuels/stressmap/pkg/heatmap"
	"github.com/matzehuels/stressmap/pkg/scene"
)

type jsonOutput struct {
	heatmap.Frame
	Seed uint64      `json:"seed"`
	Ops  []canvas.Op `json:"ops,omitempty"`
}

// RenderJSON renders the scene's frame report as indented JSON. With
// [WithOps] the output also lists every drawing call of the final frame.
func RenderJSON(s *scene.Scene, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	rec := canvas.NewRecorder()
	frame, err := draw(s, rec, o)
	if err != nil {
		return nil, err
	}
	out := jsonOutput{Frame: frame, Seed: s.Seed}
	if o.ops {
		out.Ops = rec.Ops()
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
