// Package reward implements reward function hypotheses for inverse
// reinforcement learning. A reward function maps a reward input to a
// scalar and carries a mutable parameter vector that IRL algorithms
// optimize.
package reward

import (
	"gonum.org/v1/gonum/mat"
)

// Kind tags the concrete variant of a reward function. Consumers that
// need to construct variant-specific inputs switch on the declared
// Kind instead of inspecting concrete types.
type Kind string

const (
	KindFeatureBased Kind = "FeatureBased"
	KindTabular      Kind = "Tabular"
)

// Domain declares which parts of a transition (s, a, s') belong to the
// input domain of a tabular reward function. A function with neither
// flag set is a function of the state only.
type Domain struct {
	ActionInDomain    bool
	NextStateInDomain bool
}

// Input is the argument to a reward function evaluation. Feature-based
// functions read Features; tabular functions read the transition
// indices restricted to their declared Domain.
type Input struct {
	Features  mat.Vector
	State     int
	Action    int
	NextState int
}

// Function is a parametric reward hypothesis.
type Function interface {
	// Reward evaluates the function on a single input
	Reward(Input) (float64, error)

	// Parameters returns the mutable parameter vector. Updates made
	// through the returned vector are visible to later Reward calls.
	Parameters() *mat.VecDense

	// SetParameters replaces the parameter vector
	SetParameters(*mat.VecDense) error

	// Kind returns the variant tag of the function
	Kind() Kind

	// Domain declares the input domain for tabular evaluation
	Domain() Domain
}
