package cloud

import (
	"math"
	"testing"
)

func TestBaseColor(t *testing.T) {
	tests := []struct {
		l    int
		want RGB
	}{
		{0, ColorS},
		{1, ColorP},
		{2, ColorD},
		{3, ColorDefault},
		{-1, ColorDefault},
	}
	for _, tt := range tests {
		if got := BaseColor(tt.l); got != tt.want {
			t.Errorf("BaseColor(%d) = %v, want %v", tt.l, got, tt.want)
		}
	}
}

func TestColorForDeterministic(t *testing.T) {
	pos := Vec3{1.5, -2, 3.25}
	a := ColorFor(1, 0.42, pos)
	b := ColorFor(1, 0.42, pos)
	if a != b {
		t.Errorf("same inputs gave %v and %v", a, b)
	}
}

func TestColorForBrightness(t *testing.T) {
	pos := Vec3{0, 0, 0}
	dim := ColorFor(0, 0.1, pos)
	bright := ColorFor(0, 0.9, pos)
	for i := range dim {
		if bright[i] < dim[i] {
			t.Errorf("channel %d: p=0.9 gave %d, below p=0.1 %d", i, bright[i], dim[i])
		}
	}
	if bright[2] <= dim[2] {
		t.Errorf("blue channel did not brighten: %d vs %d", bright[2], dim[2])
	}
}

func TestColorForDepthCue(t *testing.T) {
	near := ColorFor(2, 1, Vec3{Z: 20})
	far := ColorFor(2, 1, Vec3{Z: -20})
	if near[0] <= far[0] {
		t.Errorf("expected +z brighter than -z, got %v vs %v", near, far)
	}
}

func TestColorForDegenerateInputs(t *testing.T) {
	inputs := []struct {
		name string
		p    float64
		pos  Vec3
	}{
		{"nan probability", math.NaN(), Vec3{}},
		{"negative probability", -3, Vec3{}},
		{"huge probability", 12, Vec3{}},
		{"nan depth", 0.5, Vec3{Z: math.NaN()}},
		{"inf depth", 0.5, Vec3{Z: math.Inf(1)}},
	}
	for _, in := range inputs {
		t.Run(in.name, func(t *testing.T) {
			c := ColorFor(1, in.p, in.pos)
			if c == (RGB{}) {
				t.Errorf("expected a visible color, got black")
			}
		})
	}
}

func TestChannelClamp(t *testing.T) {
	if got := channel(300); got != 255 {
		t.Errorf("channel(300) = %d", got)
	}
	if got := channel(-4); got != 0 {
		t.Errorf("channel(-4) = %d", got)
	}
	if got := channel(math.NaN()); got != 0 {
		t.Errorf("channel(NaN) = %d", got)
	}
	if got := channel(99.6); got != 100 {
		t.Errorf("channel(99.6) = %d", got)
	}
}
