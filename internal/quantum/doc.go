// Package quantum holds the fixed catalog of hydrogen orbitals the
// visualizer can display.
//
// The catalog is a static, ordered table of (n, l, m) triples:
//
//   - [All]: every state in declaration order (grouped by n)
//   - [Get]: exact (n, l, m) lookup, nil when the combination is unsupported
//   - [ByLabel], [ByN], [ByL]: secondary lookups used by pickers and the CLI
//   - [OrbitalName], [ShapeDescription], [MagneticDescription]: display text
//
// Lookups never fail on unknown input. Text helpers fall back to a generic
// derived string and state lookups return nil.
//
// # Example
//
//	st := quantum.Get(2, 1, 0)
//	if st == nil {
//	    return quantum.ErrUnknownState
//	}
//	fmt.Println(st.Label, st.Description) // 2pz dumbbell along the z axis
package quantum
