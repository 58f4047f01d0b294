package scale

import "testing"

func TestEncodingEndpoints(t *testing.T) {
	e := NewEncoding(736301, 10, true)
	if got := e.Extrusion.At(0); got != 0 {
		t.Fatalf("extrusion(0) = %v, want 0", got)
	}
	if got := e.Extrusion.At(736301); got != 10 {
		t.Fatalf("extrusion(max) = %v, want 10", got)
	}
	if got := e.Luminance.At(736301); got != 1 {
		t.Fatalf("luminance(max) = %v, want 1", got)
	}
	if got := e.Luminance.At(736301.0 / 2); got != 0.5 {
		t.Fatalf("luminance(max/2) = %v, want 0.5", got)
	}
}

func TestExtrusionMonotonic(t *testing.T) {
	e := NewEncoding(1000, 4, false)
	prev := e.Extrusion.At(0)
	for v := 10.0; v <= 1000; v += 10 {
		cur := e.Extrusion.At(v)
		if cur < prev {
			t.Fatalf("extrusion decreased at %v: %v < %v", v, cur, prev)
		}
		prev = cur
	}
}

func TestClamping(t *testing.T) {
	tests := []struct {
		name  string
		clamp bool
		in    float64
		want  float64
	}{
		{"clamped above", true, 2000, 4},
		{"clamped below", true, -500, 0},
		{"extrapolated above", false, 2000, 8},
		{"extrapolated below", false, -500, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEncoding(1000, 4, tt.clamp)
			if got := e.Extrusion.At(tt.in); got != tt.want {
				t.Fatalf("At(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDegenerateDomain(t *testing.T) {
	e := NewEncoding(0, 10, true)
	if got := e.Extrusion.At(0); got != 0 {
		t.Fatalf("zero-width domain: At(0) = %v, want 0", got)
	}
	if got := e.Luminance.At(5); got != 0 {
		t.Fatalf("zero-width domain: At(5) = %v, want 0", got)
	}
}
