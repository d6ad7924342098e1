package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const tol float32 = 1e-4

func assertVec(t *testing.T, want, got Vec2) {
	t.Helper()
	assert.True(t, want.Compare(got, tol), "want %v, got %v", want, got)
}

func assertTransform(t *testing.T, want, got Transform) {
	t.Helper()
	assert.True(t, want.Compare(got, tol), "want %v, got %v", want, got)
}

func TestTransformBuilders(t *testing.T) {
	tests := []struct {
		name string
		tr   Transform
		in   Vec2
		want Vec2
	}{
		{"identity", Identity(), Vec2{3, -4}, Vec2{3, -4}},
		{"translate", Identity().Translate(2, 5), Vec2{1, 1}, Vec2{3, 6}},
		{"scale", Identity().Scale(2, 3), Vec2{1, 1}, Vec2{2, 3}},
		{"rotate 90", Identity().Rotate(90), Vec2{1, 0}, Vec2{0, 1}},
		{"rotate radians", Identity().RotateRadians(K_PI), Vec2{1, 0}, Vec2{-1, 0}},
		{"shear", Identity().Shear(1, 0), Vec2{1, 2}, Vec2{3, 2}},
		{"scale then translate", Identity().Translate(10, 0).Scale(2, 2), Vec2{1, 1}, Vec2{12, 2}},
		{"ortho corner", Ortho(0, 800, 0, 600), Vec2{800, 600}, Vec2{1, 1}},
		{"ortho origin", Ortho(0, 800, 0, 600), Vec2{0, 0}, Vec2{-1, -1}},
		{"ortho flipped", Ortho(0, 800, 600, 0), Vec2{0, 0}, Vec2{-1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVec(t, tt.want, tt.tr.Apply(tt.in))
		})
	}
}

func TestTransformBuildersMatchComposition(t *testing.T) {
	base := Identity().Translate(3, 4).Rotate(30)
	assertTransform(t, base.Mul(Identity().Translate(1, 2)), base.Translate(1, 2))
	assertTransform(t, base.Mul(Identity().Scale(2, 5)), base.Scale(2, 5))
	assertTransform(t, base.Mul(Identity().Rotate(45)), base.Rotate(45))
	assertTransform(t, base.Mul(Identity().Shear(0.5, 0.25)), base.Shear(0.5, 0.25))
	assertTransform(t, base.Mul(Ortho(-1, 3, -2, 2)), base.Project(-1, 3, -2, 2))
}

func TestTransformAssociativity(t *testing.T) {
	a := Identity().Translate(5, -2).Rotate(33)
	b := Identity().Scale(2, 0.5).Shear(0.3, 0)
	c := Identity().Rotate(-71).Translate(1, 9)
	p := Vec2{7, -3}

	assertVec(t, a.Mul(b.Mul(c)).Apply(p), a.Mul(b).Mul(c).Apply(p))
	assertVec(t, a.Apply(b.Apply(c.Apply(p))), a.Mul(b).Mul(c).Apply(p))
}

func TestTranslateRoundTrip(t *testing.T) {
	p := Vec2{12.5, -3}
	got := Identity().Translate(4, 7).Translate(-4, -7).Apply(p)
	assertVec(t, p, got)
}

func TestInvert(t *testing.T) {
	tr := Identity().Translate(10, -5).Rotate(27).Scale(3, 2).Shear(0.2, 0.1)
	assertTransform(t, Identity(), tr.Mul(tr.Invert()))
	assertTransform(t, Identity(), tr.Invert().Mul(tr))

	p := Vec2{1, 2}
	assertVec(t, p, tr.Invert().Apply(tr.Apply(p)))
}

func TestValueSemantics(t *testing.T) {
	base := Identity()
	moved := base.Translate(1, 1)
	assert.Equal(t, Identity(), base)
	assert.NotEqual(t, base, moved)
	assert.Equal(t, Identity(), moved.Reset())
}

func TestMat3Layout(t *testing.T) {
	m := Transform{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}.Mat3()
	assert.Equal(t, [9]float32{1, 4, 0, 2, 5, 0, 3, 6, 1}, m)
	assert.Equal(t, [6]float32{1, 2, 3, 4, 5, 6}, Transform{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}.Array())
}

func TestClampAndLerp(t *testing.T) {
	assert.Equal(t, 5, Clamp(9, 0, 5))
	assert.Equal(t, 0.0, Clamp(-1.0, 0.0, 1.0))
	assert.Equal(t, float32(0.5), Clamp(float32(0.5), 0, 1))
	assert.InDelta(t, 7.5, Lerp(5.0, 10.0, 0.5), 1e-9)

	v := Vec2{0, 0}.Lerp(Vec2{10, 20}, 0.25)
	assertVec(t, Vec2{2.5, 5}, v)
	assertVec(t, Vec2{0.6, 0.8}, Vec2{3, 4}.Normalize())
	assert.Equal(t, Vec2{}, Vec2{}.Normalize())
	assert.InDelta(t, 5, Vec2{0, 0}.Distance(Vec2{3, 4}), 1e-6)
}

func TestLerpAngleTakesShortestWay(t *testing.T) {
	cases := []struct {
		a, b, t, want float32
	}{
		{0, 90, 0.5, 45},
		{359, 1, 0.5, 360},
		{1, 359, 0.5, 0},
		{-170, 170, 0.5, -180},
		{0, 720, 1, 0},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, LerpAngle(c.a, c.b, c.t), 1e-3, "%v -> %v at %v", c.a, c.b, c.t)
	}
}
