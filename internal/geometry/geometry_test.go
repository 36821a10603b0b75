package geometry

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestShortestAngleDelta(t *testing.T) {
	// S2: target = 170 deg, measured = -170 deg (the 190 deg wrap).
	target := DegToRad(170)
	measured := DegToRad(-170)

	got := ShortestAngleDelta(target, measured)
	want := DegToRad(-20)

	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("ShortestAngleDelta(170, -170) = %v rad, want %v rad", got, want)
	}
}

func TestWrapPi(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi, math.Pi},
		{-3 * math.Pi, math.Pi},
	}
	for _, c := range cases {
		got := WrapPi(c.in)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("WrapPi(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Errorf("Clamp(5,0,3) = %v, want 3", got)
	}
	if got := Clamp(-5, 0, 3); got != 0 {
		t.Errorf("Clamp(-5,0,3) = %v, want 0", got)
	}
	if got := Clamp(2, 0, 3); got != 2 {
		t.Errorf("Clamp(2,0,3) = %v, want 2", got)
	}
}

func TestDistance3(t *testing.T) {
	a := r3.Vec{X: 0, Y: 0, Z: 0}
	b := r3.Vec{X: 3, Y: 4, Z: 0}
	if got := Distance3(a, b); math.Abs(got-5) > 1e-9 {
		t.Errorf("Distance3 = %v, want 5", got)
	}
}

func TestSign(t *testing.T) {
	if Sign(0.5) != 1 {
		t.Errorf("Sign(0.5) != 1")
	}
	if Sign(-0.5) != -1 {
		t.Errorf("Sign(-0.5) != -1")
	}
	if Sign(0) != 0 {
		t.Errorf("Sign(0) != 0")
	}
}
