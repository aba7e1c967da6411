package model

import (
	"math"
	"testing"
)

func TestVec3Distance(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
		want float64
	}{
		{"same point", NewVec3(1, 2, 3), NewVec3(1, 2, 3), 0},
		{"axis", NewVec3(0, 0, 0), NewVec3(3, 0, 0), 3},
		{"pythagoras", NewVec3(0, 0, 0), NewVec3(3, 0, 4), 5},
		{"negative", NewVec3(-1, -1, -1), NewVec3(1, 1, 1), math.Sqrt(12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Distance(tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Distance() = %v, want %v", got, tt.want)
			}
			if got := tt.a.DistanceSquared(tt.b); math.Abs(got-tt.want*tt.want) > 1e-9 {
				t.Errorf("DistanceSquared() = %v, want %v", got, tt.want*tt.want)
			}
		})
	}
}

func TestVec3MoveTowards(t *testing.T) {
	from := NewVec3(0, 0, 0)
	to := NewVec3(10, 0, 0)

	got := from.MoveTowards(to, 4)
	if got != NewVec3(4, 0, 0) {
		t.Errorf("MoveTowards() = %v, want (4,0,0)", got)
	}

	// no overshoot
	got = from.MoveTowards(to, 25)
	if got != to {
		t.Errorf("MoveTowards() overshoot = %v, want %v", got, to)
	}
}

func TestVec3Normalized(t *testing.T) {
	if got := (Vec3{}).Normalized(); got != (Vec3{}) {
		t.Errorf("zero vector Normalized() = %v", got)
	}
	got := NewVec3(0, 0, 5).Normalized()
	if got != NewVec3(0, 0, 1) {
		t.Errorf("Normalized() = %v, want (0,0,1)", got)
	}
}
