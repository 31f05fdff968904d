package cloud

import (
	"math"
	"testing"

	"github.com/san-kum/orbitals/internal/quantum"
)

func TestOrientationForCatalog(t *testing.T) {
	for _, st := range quantum.All() {
		o := OrientationFor(st.L, st.M)
		if st.L == 0 {
			if !o.Isotropic() {
				t.Errorf("%s: s orbital should be isotropic", st.Label)
			}
			continue
		}
		if o.Isotropic() {
			t.Errorf("%s: expected lobes", st.Label)
		}
		if o.Shape <= 0 || o.Shape > 1 {
			t.Errorf("%s: shape %v out of (0,1]", st.Label, o.Shape)
		}
		for _, lobe := range o.Lobes {
			if math.Abs(lobe.Length()-1) > 1e-9 {
				t.Errorf("%s: lobe %v not unit length", st.Label, lobe)
			}
		}
	}
}

func TestOrientationFallback(t *testing.T) {
	for _, c := range []struct{ l, m int }{{3, 0}, {4, -2}, {1, 5}, {2, -7}} {
		o := OrientationFor(c.l, c.m)
		if o.Weights != (Vec3{1, 1, 1}) || !o.Isotropic() {
			t.Errorf("l=%d m=%d: expected isotropic fallback, got %+v", c.l, c.m, o)
		}
	}
}

func TestOrientationPzBias(t *testing.T) {
	o := OrientationFor(1, 0)
	if o.Weights.Z <= o.Weights.X || o.Weights.Z <= o.Weights.Y {
		t.Errorf("pz should stretch z, got %v", o.Weights)
	}
	if o.Angular(0, 0) != 1 {
		t.Errorf("pz angular peak on the z axis should be 1")
	}
	if v := o.Angular(math.Pi/2, 0); v > 1e-12 {
		t.Errorf("pz angular on the xy plane should vanish, got %v", v)
	}
}

func TestOrientationAngularBounded(t *testing.T) {
	for l := 0; l <= 2; l++ {
		for m := -l; m <= l; m++ {
			o := OrientationFor(l, m)
			for theta := 0.0; theta <= math.Pi; theta += 0.1 {
				for phi := 0.0; phi < 2*math.Pi; phi += 0.1 {
					if v := o.Angular(theta, phi); v < 0 || v > 1+1e-9 {
						t.Fatalf("l=%d m=%d: angular(%v,%v) = %v", l, m, theta, phi, v)
					}
				}
			}
		}
	}
}

func TestOrthonormal(t *testing.T) {
	for _, axis := range []Vec3{axisX, axisY, axisZ, Vec3{1, 1, 0}.Normalize(), Vec3{0, 1, -1}.Normalize()} {
		t1, t2 := orthonormal(axis)
		if math.Abs(t1.Dot(axis)) > 1e-9 || math.Abs(t2.Dot(axis)) > 1e-9 || math.Abs(t1.Dot(t2)) > 1e-9 {
			t.Errorf("basis for %v not orthogonal: %v %v", axis, t1, t2)
		}
		if math.Abs(t1.Length()-1) > 1e-9 || math.Abs(t2.Length()-1) > 1e-9 {
			t.Errorf("basis for %v not unit: %v %v", axis, t1, t2)
		}
	}
}
