package density

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/glyphfit/sdf"
)

// rampField builds a w x h field whose value at (x, y) is x - y - 0.5.
func rampField(w, h int) *sdf.Field {
	f := &sdf.Field{Data: make([]float32, w*h), Width: w, Height: h}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			f.Data[y*w+x] = float32(x-y) - 0.5
		}
	}
	return f
}

func TestTotal(t *testing.T) {
	f := rampField(4, 3)
	tests := []struct {
		name string
		a    sdf.Area
		want float64
	}{
		{"single pixel", sdf.Rect(2, 1, 3, 2), 0.5},
		{"row", sdf.Rect(0, 0, 4, 1), -0.5 + 0.5 + 1.5 + 2.5},
		{"full", f.Bounds(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Total(f, tt.a)
			if err != nil {
				t.Fatalf("Total() error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Total(%v) = %v, want %v", tt.a, got, tt.want)
			}
		})
	}
}

func TestTotalAdditive(t *testing.T) {
	r := sdf.NewRaster(40, 30)
	r.Fill(sdf.Rect(5, 4, 18, 25), 255)
	r.Fill(sdf.Rect(24, 10, 33, 14), 255)
	f, err := sdf.Generate(r)
	if err != nil {
		t.Fatal(err)
	}

	a := sdf.Rect(2, 1, 37, 28)
	whole, err := Total(f, a)
	if err != nil {
		t.Fatal(err)
	}
	for x := a.X1 + 1; x < a.X2; x++ {
		left, right := a.SplitX(x)
		l, err := Total(f, left)
		if err != nil {
			t.Fatal(err)
		}
		rt, err := Total(f, right)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(whole-(l+rt)) > 1e-6 {
			t.Errorf("split at %d: %v + %v != %v", x, l, rt, whole)
		}
	}
}

func TestMeanFloors(t *testing.T) {
	f := rampField(4, 3)
	// Row 0: -0.5 0.5 1.5 2.5, sum 4, mean 1.
	got, err := Mean(f, sdf.Rect(0, 0, 4, 1))
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("Mean(row 0) = %v, want 1", got)
	}
	// Column 0: -0.5 -1.5 -2.5, sum -4.5, mean -1.5 floors to -2.
	got, err = Mean(f, sdf.Rect(0, 0, 1, 3))
	if err != nil {
		t.Fatal(err)
	}
	if got != -2 {
		t.Errorf("Mean(col 0) = %v, want -2", got)
	}
}

func TestCoverage(t *testing.T) {
	f := rampField(4, 3)
	got, err := Coverage(f, f.Bounds())
	if err != nil {
		t.Fatal(err)
	}
	// Positive where x > y: (1,0) (2,0) (3,0) (2,1) (3,1) (3,2).
	if got != 6 {
		t.Errorf("Coverage() = %v, want 6", got)
	}
}

func TestInvalidArea(t *testing.T) {
	f := rampField(4, 3)
	bad := []sdf.Area{
		sdf.Rect(0, 0, 0, 3),
		sdf.Rect(-1, 0, 2, 3),
		sdf.Rect(0, 0, 5, 3),
		sdf.Rect(0, 2, 4, 1),
	}
	for _, m := range Metrics() {
		for _, a := range bad {
			if _, err := m.Evaluate(f, a); !errors.Is(err, sdf.ErrInvalidArea) {
				t.Errorf("%s.Evaluate(%v) error = %v, want ErrInvalidArea", m.Name(), a, err)
			}
		}
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"total", "MEAN", "Coverage"} {
		m, err := ByName(name)
		if err != nil {
			t.Errorf("ByName(%q) error: %v", name, err)
			continue
		}
		if m == nil {
			t.Errorf("ByName(%q) = nil", name)
		}
	}
	if _, err := ByName("darkness"); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("ByName(darkness) error = %v, want ErrUnknownMetric", err)
	}
}
