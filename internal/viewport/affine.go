package viewport

// AffineMap is a one-dimensional linear map between a domain and a range
// interval. Position maps carry an intercept (domain does not start at zero);
// length maps keep both intervals anchored at zero so the map stays
// zero-preserving.
type AffineMap struct {
	Domain [2]float64
	Range  [2]float64
}

// Apply maps a value from domain space into range space.
func (m AffineMap) Apply(v float64) float64 {
	d := m.Domain[1] - m.Domain[0]
	if d == 0 {
		return m.Range[0]
	}
	return m.Range[0] + (v-m.Domain[0])*(m.Range[1]-m.Range[0])/d
}

// Invert maps a value from range space back into domain space.
func (m AffineMap) Invert(v float64) float64 {
	r := m.Range[1] - m.Range[0]
	if r == 0 {
		return m.Domain[0]
	}
	return m.Domain[0] + (v-m.Range[0])*(m.Domain[1]-m.Domain[0])/r
}
