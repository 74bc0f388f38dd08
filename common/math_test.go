package common

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBasis(t *testing.T) {
	tests := []struct {
		name     string
		yaw      float64
		forward  Vec3
		rightVec Vec3
	}{
		{"zero", 0, Vec3{X: 1}, Vec3{Z: 1}},
		{"quarter", math.Pi / 2, Vec3{Z: 1}, Vec3{X: -1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, r := Basis(tc.yaw)
			if !approx(f.X, tc.forward.X) || !approx(f.Z, tc.forward.Z) || f.Y != 0 {
				t.Fatalf("forward = %+v, want %+v", f, tc.forward)
			}
			if !approx(r.X, tc.rightVec.X) || !approx(r.Z, tc.rightVec.Z) || r.Y != 0 {
				t.Fatalf("right = %+v, want %+v", r, tc.rightVec)
			}
			if !approx(f.Dot(r), 0) {
				t.Fatalf("basis not orthogonal: %v", f.Dot(r))
			}
		})
	}
}

func TestDirectionPitchUp(t *testing.T) {
	d := Direction(0, math.Pi/2)
	if !approx(d.Y, -1) || !approx(d.Len(), 1) {
		t.Fatalf("looking straight up should be %+v, got %+v", Up, d)
	}
}

func TestNormalizeZero(t *testing.T) {
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Fatalf("zero vector should normalize to zero")
	}
}
