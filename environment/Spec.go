package environment

import "fmt"

// SpecType determines what kind of specification a Spec is. A Spec can
// specify the layout of an action or an observation.
type SpecType int

const (
	Action SpecType = iota
	Observation
)

// Spec implements an environment specification, which tells the type
// and size of the discrete space of actions or observations in an
// environment. Elements of the space are indexed 0..N-1.
type Spec struct {
	N    int
	Type SpecType
}

// NewSpec constructs a new environment specification for a discrete
// space with n elements
func NewSpec(n int, t SpecType) Spec {
	if n <= 0 {
		panic(fmt.Sprintf("newSpec: discrete space must have at least one "+
			"element, got %d", n))
	}
	return Spec{n, t}
}
