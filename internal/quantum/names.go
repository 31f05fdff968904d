package quantum

import "fmt"

var orbitalNames = []string{"s", "p", "d", "f", "g"}

var shapeDescriptions = map[int]string{
	0: "spherically symmetric (s orbital)",
	1: "dumbbell (p orbital)",
	2: "cloverleaf (d orbital)",
	3: "complex lobes (f orbital)",
}

// OrbitalName maps l to its spectroscopic letter, "l=<l>" when unmapped.
func OrbitalName(l int) string {
	if l >= 0 && l < len(orbitalNames) {
		return orbitalNames[l]
	}
	return fmt.Sprintf("l=%d", l)
}

func ShapeDescription(l int) string {
	if d, ok := shapeDescriptions[l]; ok {
		return d
	}
	return fmt.Sprintf("angular momentum l=%d", l)
}

// MagneticDescription describes the spatial orientation selected by m.
func MagneticDescription(l, m int) string {
	switch l {
	case 0:
		return "spherically symmetric"
	case 1:
		switch m {
		case 0:
			return "along the z axis"
		case 1:
			return "along the x axis"
		case -1:
			return "along the y axis"
		}
	case 2:
		switch m {
		case 0:
			return "along the z axis"
		case 1:
			return "in the xz plane"
		case -1:
			return "in the yz plane"
		case 2:
			return "in the xy plane along x and y"
		case -2:
			return "in the xy plane along the diagonals"
		}
	}
	return fmt.Sprintf("magnetic quantum number m=%d", m)
}
