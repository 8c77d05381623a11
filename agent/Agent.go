// Package agent defines the forward reinforcement-learning solver
// interface consumed by IRL algorithms
package agent

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/kasakh/irl-benchmark/environment"
)

// Solver is a forward RL algorithm that turns an environment's current
// reward hypothesis into a policy and value estimates. An IRL
// algorithm re-trains the same Solver every outer iteration after
// swapping the environment's reward hypothesis.
type Solver interface {
	// Train optimizes the solver's policy against the environment's
	// current reward hypothesis for numEpisodes episodes. The call
	// blocks until training finishes.
	Train(numEpisodes int) error

	// PolicyArray returns the solver's stochastic policy as an
	// nStates x nActions matrix whose rows are probability
	// distributions over actions
	PolicyArray() *mat.Dense

	// StateValues returns the solver's state-value estimates
	StateValues() *mat.VecDense

	// QValues returns the solver's action-value estimates as an
	// nStates x nActions matrix
	QValues() *mat.Dense
}

// Factory constructs a Solver for an environment. IRL algorithms take
// a Factory rather than a Solver so that solver construction can see
// the fully wrapped environment.
type Factory func(environment.Environment) (Solver, error)

// Config represents a configuration for creating a solver
type Config interface {
	// CreateSolver creates the solver that the config describes
	CreateSolver(env environment.Environment, seed uint64) (Solver, error)

	// Validate returns an error describing whether or not the
	// configuration is valid or not.
	Validate() error
}

// FromConfig adapts a Config into a Factory. The config is validated
// when the factory runs, so an invalid config surfaces where solver
// construction was requested.
func FromConfig(config Config, seed uint64) Factory {
	return func(env environment.Environment) (Solver, error) {
		if err := config.Validate(); err != nil {
			return nil, fmt.Errorf("fromConfig: invalid config: %v", err)
		}
		return config.CreateSolver(env, seed)
	}
}
