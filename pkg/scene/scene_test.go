package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/stressmap/pkg/errors"
)

const tomlScene = `
width = 800
height = 500
pixel_ratio = 2
palette = "plasma"
seed = 7

[[points]]
r = 0.5
theta = 60

[[points]]
r = 2.5
theta = 30
`

func TestParseTOML(t *testing.T) {
	s, err := Parse([]byte(tomlScene), FormatTOML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Width != 800 || s.Height != 500 || s.PixelRatio != 2 {
		t.Errorf("size = %vx%v@%v, want 800x500@2", s.Width, s.Height, s.PixelRatio)
	}
	if s.Palette != "plasma" || s.Seed != 7 {
		t.Errorf("palette/seed = %s/%d, want plasma/7", s.Palette, s.Seed)
	}
	if s.RDivisions != 50 || s.ThetaDivisions != 50 {
		t.Errorf("divisions = %d×%d, want defaults 50×50", s.RDivisions, s.ThetaDivisions)
	}
	if len(s.Points) != 2 || s.Points[1].R != 2.5 || s.Points[1].Theta != 30 {
		t.Errorf("points = %+v", s.Points)
	}
	if s.HasData() || s.Data() != nil {
		t.Error("scene without grid should report no data")
	}
}

func TestParseJSON(t *testing.T) {
	data := `{
		"palette": "bw",
		"r_divisions": 1,
		"theta_divisions": 1,
		"samples": [
			{"r": 0, "theta": 0, "value": 0},
			{"r": 0, "theta": 180, "value": 0.25},
			{"r": 3, "theta": 0, "value": 0.5},
			{"r": 3, "theta": 180, "value": 1}
		],
		"points": [{"r": 1.5, "theta": 120}]
	}`
	s, err := Parse([]byte(data), FormatJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Width != DefaultWidth || s.Height != DefaultHeight || s.Seed != DefaultSeed {
		t.Errorf("defaults not applied: %+v", s)
	}
	if !s.HasData() || len(s.Data()) != 4 || s.Data()[3].Value != 1 {
		t.Errorf("Data() = %+v", s.Data())
	}
}

func TestParseValues(t *testing.T) {
	data := `values = [
		[0.0, 0.1, 0.2],
		[0.3, 0.4, 0.5],
	]`
	s, err := Parse([]byte(data), FormatTOML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.RDivisions != 1 || s.ThetaDivisions != 2 {
		t.Fatalf("divisions = %d×%d, want 1×2", s.RDivisions, s.ThetaDivisions)
	}
	got := s.Data()
	if len(got) != 6 {
		t.Fatalf("Data() has %d samples, want 6", len(got))
	}
	last := got[5]
	if last.R != 3 || last.Theta != 180 || last.Value != 0.5 {
		t.Errorf("last sample = %+v, want R=3 θ=180 value=0.5", last)
	}
	if got[1].Theta != 90 || got[1].Value != 0.1 {
		t.Errorf("second sample = %+v, want θ=90 value=0.1", got[1])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		code   errors.Code
	}{
		{"bad toml", `width = `, FormatTOML, errors.ErrCodeInvalidScene},
		{"bad json", `{"width": }`, FormatJSON, errors.ErrCodeInvalidScene},
		{"unknown json field", `{"colour": "red"}`, FormatJSON, errors.ErrCodeInvalidScene},
		{"negative width", `width = -1`, FormatTOML, errors.ErrCodeInvalidScene},
		{"negative ratio", `pixel_ratio = -2`, FormatTOML, errors.ErrCodeInvalidScene},
		{"bad palette name", `palette = "no spaces"`, FormatTOML, errors.ErrCodeInvalidPalette},
		{"negative divisions", `r_divisions = -5`, FormatTOML, errors.ErrCodeInvalidInput},
		{"ragged values", "values = [[0.0, 1.0], [0.5]]", FormatTOML, errors.ErrCodeInvalidScene},
		{"single row", "values = [[0.0, 1.0]]", FormatTOML, errors.ErrCodeInvalidInput},
		{"samples and values", "values = [[0.0, 1.0], [0.5, 0.5]]\n[[samples]]\nr = 0\ntheta = 0\nvalue = 1", FormatTOML, errors.ErrCodeInvalidScene},
		{"unknown format", `{}`, Format("yaml"), errors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			if !errors.Is(err, tt.code) {
				t.Errorf("Parse() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.toml")
	if err := os.WriteFile(path, []byte(tomlScene), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Palette != "plasma" {
		t.Errorf("Palette = %q, want plasma", s.Palette)
	}

	if _, err := Load(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
	if _, err := Load(filepath.Join(dir, "scene.yaml")); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("yaml error = %v, want UNSUPPORTED", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"width": -1}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); !errors.Is(err, errors.ErrCodeInvalidScene) {
		t.Errorf("bad scene error = %v, want INVALID_SCENE", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"scene.toml", FormatTOML, true},
		{"dir/Scene.TOML", FormatTOML, true},
		{"scene.json", FormatJSON, true},
		{"scene", "", false},
		{"scene.yml", "", false},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v", tt.path, got, err)
		}
	}
}

func TestCanonicalStable(t *testing.T) {
	a, _ := Parse([]byte(tomlScene), FormatTOML)
	b, _ := Parse([]byte(tomlScene), FormatTOML)
	ca, err := a.Canonical()
	if err != nil {
		t.Fatal(err)
	}
	cb, _ := b.Canonical()
	if string(ca) != string(cb) {
		t.Error("equal scenes should have equal canonical encodings")
	}

	b.Points = b.Points[:1]
	cb, _ = b.Canonical()
	if string(ca) == string(cb) {
		t.Error("different scenes should have different canonical encodings")
	}
}

func TestExampleScenes(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "scenes", "*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no example scenes")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(s.Points) == 0 {
				t.Error("example scene has no points")
			}
		})
	}
}
