package quantum

import "testing"

func TestOrbitalName(t *testing.T) {
	tests := []struct {
		l    int
		want string
	}{
		{0, "s"},
		{1, "p"},
		{2, "d"},
		{3, "f"},
		{7, "l=7"},
		{-1, "l=-1"},
	}

	for _, tt := range tests {
		if got := OrbitalName(tt.l); got != tt.want {
			t.Errorf("OrbitalName(%d) = %q, want %q", tt.l, got, tt.want)
		}
	}
}

func TestDescriptionsFallback(t *testing.T) {
	if got := ShapeDescription(1); got != "dumbbell (p orbital)" {
		t.Errorf("unexpected p shape description %q", got)
	}
	if got := ShapeDescription(9); got != "angular momentum l=9" {
		t.Errorf("unexpected fallback %q", got)
	}
	if got := MagneticDescription(2, -2); got != "in the xy plane along the diagonals" {
		t.Errorf("unexpected dxy description %q", got)
	}
	if got := MagneticDescription(1, 5); got != "magnetic quantum number m=5" {
		t.Errorf("unexpected fallback %q", got)
	}
	if got := MagneticDescription(0, 3); got != "spherically symmetric" {
		t.Errorf("unexpected s description %q", got)
	}
}
