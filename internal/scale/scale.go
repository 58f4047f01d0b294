// Package scale maps data values onto visual encodings.
package scale

// Linear maps a numeric domain onto a range. A zero-width domain maps every
// input to the start of the range.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
	clamp  bool
}

func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Clamped returns a copy that pins outputs to the range.
func (l Linear) Clamped() Linear {
	l.clamp = true
	return l
}

func (l Linear) At(v float64) float64 {
	if l.d1 == l.d0 {
		return l.r0
	}
	t := (v - l.d0) / (l.d1 - l.d0)
	if l.clamp {
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	return l.r0 + t*(l.r1-l.r0)
}

// Encoding holds the two scales calibrated from one maximum.
type Encoding struct {
	Max       float64
	Extrusion Linear
	Luminance Linear
}

// NewEncoding calibrates value->extrusion on [0,max]->[0,maxExtrusion] and
// value->luminance on [0,max]->[0,1].
func NewEncoding(max, maxExtrusion float64, clamp bool) Encoding {
	e := Encoding{
		Max:       max,
		Extrusion: NewLinear(0, max, 0, maxExtrusion),
		Luminance: NewLinear(0, max, 0, 1),
	}
	if clamp {
		e.Extrusion = e.Extrusion.Clamped()
		e.Luminance = e.Luminance.Clamped()
	}
	return e
}
