package quantum

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownState is returned by callers that need an error for a catalog miss.
var ErrUnknownState = errors.New("quantum: invalid quantum state")

// State is one orbital of the catalog. Values are copied out of the table,
// so callers cannot mutate the catalog.
type State struct {
	N           int    `json:"n" yaml:"n" msgpack:"n"`
	L           int    `json:"l" yaml:"l" msgpack:"l"`
	M           int    `json:"m" yaml:"m" msgpack:"m"`
	Label       string `json:"label" yaml:"label" msgpack:"label"`
	Name        string `json:"name" yaml:"name" msgpack:"name"`
	Description string `json:"description" yaml:"description" msgpack:"description"`
}

func (s State) String() string {
	return fmt.Sprintf("%s (n=%d, l=%d, m=%d)", s.Label, s.N, s.L, s.M)
}

// Orbital returns the spectroscopic letter of the state's l.
func (s State) Orbital() string { return OrbitalName(s.L) }

// Slug is the ASCII form of the label, safe for URLs and file names.
func (s State) Slug() string { return slug(s.Label) }

func slug(label string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(label), "²", "2"))
}

var states = []State{
	{N: 1, L: 0, M: 0, Label: "1s", Name: "1s orbital", Description: "ground state, spherically symmetric"},
	{N: 2, L: 0, M: 0, Label: "2s", Name: "2s orbital", Description: "first excited state, spherically symmetric"},
	{N: 2, L: 1, M: 0, Label: "2pz", Name: "2pz orbital", Description: "dumbbell along the z axis"},
	{N: 2, L: 1, M: 1, Label: "2px", Name: "2px orbital", Description: "dumbbell along the x axis"},
	{N: 2, L: 1, M: -1, Label: "2py", Name: "2py orbital", Description: "dumbbell along the y axis"},
	{N: 3, L: 0, M: 0, Label: "3s", Name: "3s orbital", Description: "spherically symmetric with radial nodes"},
	{N: 3, L: 1, M: 0, Label: "3pz", Name: "3pz orbital", Description: "dumbbell with a radial node"},
	{N: 3, L: 2, M: 0, Label: "3dz²", Name: "3dz² orbital", Description: "cloverleaf along the z axis"},
	{N: 3, L: 2, M: 1, Label: "3dxz", Name: "3dxz orbital", Description: "cloverleaf in the xz plane"},
	{N: 3, L: 2, M: -1, Label: "3dyz", Name: "3dyz orbital", Description: "cloverleaf in the yz plane"},
	{N: 3, L: 2, M: 2, Label: "3dx²-y²", Name: "3dx²-y² orbital", Description: "cloverleaf in the xy plane along x and y"},
	{N: 3, L: 2, M: -2, Label: "3dxy", Name: "3dxy orbital", Description: "cloverleaf in the xy plane along the diagonals"},
}

type key struct{ n, l, m int }

var index = buildIndex()

func buildIndex() map[key]int {
	idx := make(map[key]int, len(states))
	for i, s := range states {
		k := key{s.N, s.L, s.M}
		if _, dup := idx[k]; dup {
			panic(fmt.Sprintf("quantum: duplicate catalog entry %s", s))
		}
		idx[k] = i
	}
	return idx
}

// All returns the catalog in declaration order.
func All() []State {
	out := make([]State, len(states))
	copy(out, states)
	return out
}

// Get returns the catalog entry for (n, l, m), or nil when the triple is not
// part of the catalog.
func Get(n, l, m int) *State {
	i, ok := index[key{n, l, m}]
	if !ok {
		return nil
	}
	s := states[i]
	return &s
}

// ByLabel looks a state up by its display label ("2pz", "3dxy", ...).
// Matching ignores case, and "2" may stand in for "²" ("3dz2").
func ByLabel(label string) *State {
	want := slug(label)
	for _, s := range states {
		if slug(s.Label) == want {
			st := s
			return &st
		}
	}
	return nil
}

// ByN returns the states of one shell.
func ByN(n int) []State {
	var out []State
	for _, s := range states {
		if s.N == n {
			out = append(out, s)
		}
	}
	return out
}

// ByL returns the states sharing an angular momentum quantum number.
func ByL(l int) []State {
	var out []State
	for _, s := range states {
		if s.L == l {
			out = append(out, s)
		}
	}
	return out
}

// Levels lists the distinct principal quantum numbers in ascending order.
func Levels() []int {
	seen := make(map[int]bool)
	var out []int
	for _, s := range states {
		if !seen[s.N] {
			seen[s.N] = true
			out = append(out, s.N)
		}
	}
	return out
}

// Labels returns every label in catalog order.
func Labels() []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = s.Label
	}
	return out
}

// Valid reports whether (n, l, m) is a physically allowed triple:
// n >= 1, 0 <= l < n, -l <= m <= l. It does not consult the catalog.
func Valid(n, l, m int) bool {
	return n >= 1 && l >= 0 && l < n && m >= -l && m <= l
}
