// Package heuristic implements the pluggable priority function h(distance,
// depth) -> real of §4.7. The heuristic only changes frontier ordering; it
// is not required to be admissible (the search is best-first, not
// optimal-first).
package heuristic

// Func computes a frontier priority from a node's current distance and
// search depth. Lower priority is explored first (min-heap, §3).
type Func func(distance float64, depth int) float64

// Default is h(distance, depth) = distance + depth, per §4.7.
func Default(distance float64, depth int) float64 {
	return distance + float64(depth)
}
