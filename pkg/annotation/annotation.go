// Package annotation defines the per-video point annotation model and its
// JSON record format.
package annotation

import "sort"

// Point is an annotated location in frame pixel coordinates.
type Point struct {
	X int
	Y int
}

// Map maps a frame index to the single point annotated on that frame.
type Map map[int]Point

// Clone returns a copy of m. A nil map clones to an empty map.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Indices returns the annotated frame indices in ascending order.
func (m Map) Indices() []int {
	indices := make([]int, 0, len(m))
	for k := range m {
		indices = append(indices, k)
	}
	sort.Ints(indices)
	return indices
}

// Equal reports whether m and other hold the same entries.
func (m Map) Equal(other Map) bool {
	if len(m) != len(other) {
		return false
	}
	for k, v := range m {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
