package core

import (
	"math"
	"testing"
)

func TestVec3_Reflect(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		normal   Vec3
		expected Vec3
	}{
		{
			name:     "Head-on reflection",
			vector:   NewVec3(0, 0, -1),
			normal:   NewVec3(0, 0, 1),
			expected: NewVec3(0, 0, 1),
		},
		{
			name:     "45 degree reflection",
			vector:   NewVec3(1, -1, 0),
			normal:   NewVec3(0, 1, 0),
			expected: NewVec3(1, 1, 0),
		},
		{
			name:     "Grazing vector is unchanged",
			vector:   NewVec3(1, 0, 0),
			normal:   NewVec3(0, 1, 0),
			expected: NewVec3(1, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Reflect(tt.normal)

			const tolerance = 1e-9
			if result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 0, 4).Normalize()
	if math.Abs(v.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", v.Length())
	}

	// Zero vector must not produce NaN
	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("Expected zero vector, got %v", zero)
	}
}

func TestVec3_Cross(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)
	if got := x.Cross(y); got != NewVec3(0, 0, 1) {
		t.Errorf("Expected +Z, got %v", got)
	}
}

func TestVec3_MGLRoundTrip(t *testing.T) {
	v := NewVec3(1.5, -2, 3.25)
	if got := Vec3FromMGL(v.MGL()); got != v {
		t.Errorf("Expected %v, got %v", v, got)
	}
}

func TestPackRGB(t *testing.T) {
	tests := []struct {
		name     string
		r, g, b  int
		expected uint32
	}{
		{"black", 0, 0, 0, 0xFF000000},
		{"white", 255, 255, 255, 0xFFFFFFFF},
		{"red", 255, 0, 0, 0xFFFF0000},
		{"out of range is clamped", 300, -5, 128, 0xFFFF0080},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PackRGB(tt.r, tt.g, tt.b); got != tt.expected {
				t.Errorf("Expected %#08x, got %#08x", tt.expected, got)
			}
		})
	}
}

func TestUnpackRGB(t *testing.T) {
	r, g, b := UnpackRGB(0xFF102030)
	if r != 0x10 || g != 0x20 || b != 0x30 {
		t.Errorf("Expected (16,32,48), got (%d,%d,%d)", r, g, b)
	}
}

func TestPackVec3_Rounds(t *testing.T) {
	got := PackVec3(NewVec3(99.6, 0.4, 254.5))
	r, g, b := UnpackRGB(got)
	if r != 100 || g != 0 || b != 255 {
		t.Errorf("Expected (100,0,255), got (%d,%d,%d)", r, g, b)
	}
}
