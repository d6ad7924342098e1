package math

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Transform is a 2D affine transformation stored as a 2x3 matrix in
// row-major order:
//
//	| A  B  C |
//	| D  E  F |
//
// which maps a point as
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
//
// The builder methods post-multiply, so in
// Identity().Translate(p).Rotate(r).Scale(s) the scale is applied to a point
// first and the translation last. Every method returns a new value.
type Transform struct {
	A, B, C float32
	D, E, F float32
}

// Identity returns the transformation that leaves points unchanged.
func Identity() Transform {
	return Transform{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Ortho returns the projection mapping the box [left,right]x[bottom,top]
// onto clip space [-1,1]x[-1,1].
func Ortho(left, right, bottom, top float32) Transform {
	return Identity().Project(left, right, bottom, top)
}

// Reset returns the identity transformation.
func (t Transform) Reset() Transform {
	return Identity()
}

// Translate appends a translation by (x, y).
func (t Transform) Translate(x, y float32) Transform {
	t.C = t.A*x + t.B*y + t.C
	t.F = t.D*x + t.E*y + t.F
	return t
}

// TranslateV is Translate taking a vector.
func (t Transform) TranslateV(v Vec2) Transform {
	return t.Translate(v.X, v.Y)
}

// Scale appends a scale by (x, y).
func (t Transform) Scale(x, y float32) Transform {
	t.A *= x
	t.B *= y
	t.D *= x
	t.E *= y
	return t
}

func (t Transform) ScaleV(v Vec2) Transform {
	return t.Scale(v.X, v.Y)
}

// Shear appends the shear | 1 x ; y 1 |.
func (t Transform) Shear(x, y float32) Transform {
	a, d := t.A, t.D
	t.A += t.B * y
	t.B += a * x
	t.D += t.E * y
	t.E += d * x
	return t
}

// Rotate appends a counter-clockwise rotation given in degrees.
func (t Transform) Rotate(degrees float32) Transform {
	return t.RotateRadians(DegToRad(degrees))
}

// RotateRadians appends a counter-clockwise rotation given in radians.
func (t Transform) RotateRadians(radians float32) Transform {
	s, c := math32.Sincos(radians)
	a, b, d, e := t.A, t.B, t.D, t.E
	t.A = a*c + b*s
	t.B = b*c - a*s
	t.D = d*c + e*s
	t.E = e*c - d*s
	return t
}

// Project appends an orthographic projection of the given box.
func (t Transform) Project(left, right, bottom, top float32) Transform {
	rl := right - left
	tb := top - bottom
	a := 2 / rl
	b := 2 / tb
	c := (-right - left) / rl
	d := (-top - bottom) / tb

	t.F += c*t.D + d*t.E
	t.E *= b
	t.D *= a
	t.C += c*t.A + d*t.B
	t.B *= b
	t.A *= a
	return t
}

// Determinant of the linear part.
func (t Transform) Determinant() float32 {
	return t.A*t.E - t.B*t.D
}

// Invert returns the inverse transformation. A singular matrix yields
// non-finite components; check Determinant first when that can happen.
func (t Transform) Invert() Transform {
	det := t.Determinant()
	return Transform{
		A: t.E / det,
		B: -t.B / det,
		C: -(t.C*t.E - t.B*t.F) / det,
		D: -t.D / det,
		E: t.A / det,
		F: -(t.A*t.F - t.C*t.D) / det,
	}
}

// Mul returns the composition t * other: other is applied first.
func (t Transform) Mul(other Transform) Transform {
	return Transform{
		A: t.A*other.A + t.B*other.D,
		B: t.A*other.B + t.B*other.E,
		C: t.A*other.C + t.B*other.F + t.C,
		D: t.D*other.A + t.E*other.D,
		E: t.D*other.B + t.E*other.E,
		F: t.D*other.C + t.E*other.F + t.F,
	}
}

// Apply transforms a point.
func (t Transform) Apply(p Vec2) Vec2 {
	return Vec2{
		X: t.A*p.X + t.B*p.Y + t.C,
		Y: t.D*p.X + t.E*p.Y + t.F,
	}
}

// ApplyVector transforms a direction, ignoring the translation.
func (t Transform) ApplyVector(v Vec2) Vec2 {
	return Vec2{
		X: t.A*v.X + t.B*v.Y,
		Y: t.D*v.X + t.E*v.Y,
	}
}

// Compare reports whether every component is within tolerance.
func (t Transform) Compare(other Transform, tolerance float32) bool {
	a := t.Array()
	b := other.Array()
	for i := range a {
		if math32.Abs(a[i]-b[i]) > tolerance {
			return false
		}
	}
	return true
}

// Array returns the six components in row-major order.
func (t Transform) Array() [6]float32 {
	return [6]float32{t.A, t.B, t.C, t.D, t.E, t.F}
}

// Mat3 expands the transform to a column-major 3x3 matrix, the layout GLSL
// expects for a mat3 uniform.
func (t Transform) Mat3() [9]float32 {
	return [9]float32{
		t.A, t.D, 0,
		t.B, t.E, 0,
		t.C, t.F, 1,
	}
}

func (t Transform) String() string {
	return fmt.Sprintf("[%g %g %g; %g %g %g]", t.A, t.B, t.C, t.D, t.E, t.F)
}
