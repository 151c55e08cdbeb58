package stress

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		r       float64
		want    Regime
		wantErr bool
	}{
		{"lower bound", 0, Normal, false},
		{"normal", 0.5, Normal, false},
		{"just below one", 0.9999, Normal, false},
		{"one is strike-slip", 1, StrikeSlip, false},
		{"strike-slip", 1.5, StrikeSlip, false},
		{"two is reverse", 2, Reverse, false},
		{"reverse", 2.5, Reverse, false},
		{"upper bound closed", 3, Reverse, false},
		{"negative", -0.1, 0, true},
		{"above three", 3.0001, 0, true},
		{"nan", math.NaN(), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.r)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Classify(%v) error = %v, wantErr %v", tt.r, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrOutOfRange) {
					t.Errorf("Classify(%v) error = %v, want ErrOutOfRange", tt.r, err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

func TestPhiPrime(t *testing.T) {
	tests := []struct {
		r    float64
		want float64
	}{
		{0.25, 0.25},
		{1.25, 0.75},
		{2.25, 0.25},
		{3, 1},
	}

	for _, tt := range tests {
		regime, err := Classify(tt.r)
		if err != nil {
			t.Fatalf("Classify(%v): %v", tt.r, err)
		}
		if got := PhiPrime(tt.r, regime); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("PhiPrime(%v, %v) = %v, want %v", tt.r, regime, got, tt.want)
		}
	}
}

func TestRegimeLabels(t *testing.T) {
	want := []string{"Normal", "Strike slip", "Reverse"}
	for i, r := range Regimes {
		if r.Label() != want[i] {
			t.Errorf("Regimes[%d].Label() = %q, want %q", i, r.Label(), want[i])
		}
		if c := r.Center(); c != float64(i)+0.5 {
			t.Errorf("Regimes[%d].Center() = %v, want %v", i, c, float64(i)+0.5)
		}
	}
}

func TestPointLabel(t *testing.T) {
	tests := []struct {
		p    Point
		want string
	}{
		{Point{0.5, 60}, "(R=0.5, θ=60°)"},
		{Point{1.5, 120}, "(R=1.5, θ=120°)"},
		{Point{2.5, 30}, "(R=2.5, θ=30°)"},
		{Point{3, 180}, "(R=3.0, θ=180°)"},
	}
	for _, tt := range tests {
		if got := tt.p.Label(); got != tt.want {
			t.Errorf("Label() = %q, want %q", got, tt.want)
		}
	}
}

func TestRandomGrid(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 42^0xdeadbeef))
	samples := RandomGrid(DefaultDivisions, DefaultDivisions, rng)

	if len(samples) != 51*51 {
		t.Fatalf("len = %d, want %d", len(samples), 51*51)
	}
	first, last := samples[0], samples[len(samples)-1]
	if first.R != 0 || first.Theta != 0 {
		t.Errorf("first sample at (%v, %v), want (0, 0)", first.R, first.Theta)
	}
	if last.R != RMax || last.Theta != ThetaMax {
		t.Errorf("last sample at (%v, %v), want (%v, %v)", last.R, last.Theta, RMax, ThetaMax)
	}
	for i, s := range samples {
		if s.Value < 0 || s.Value >= 1 {
			t.Fatalf("samples[%d].Value = %v, want [0, 1)", i, s.Value)
		}
	}
}

func TestRandomGridDeterministic(t *testing.T) {
	a := RandomGrid(4, 4, rand.New(rand.NewPCG(7, 7)))
	b := RandomGrid(4, 4, rand.New(rand.NewPCG(7, 7)))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("samples[%d] differ: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestGridInvalidDivisions(t *testing.T) {
	if got := Grid(0, 10, func(float64, float64) float64 { return 0 }); got != nil {
		t.Errorf("Grid(0, 10) = %d samples, want nil", len(got))
	}
}
