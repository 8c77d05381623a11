package softvi

import (
	"fmt"

	"github.com/kasakh/irl-benchmark/agent"
	"github.com/kasakh/irl-benchmark/environment"
)

// Config represents a configuration for the SoftVI solver
type Config struct {
	// Gamma is the discount factor of the planning problem
	Gamma float64

	// Temperature scales the softmax that turns action values into
	// the Boltzmann policy. Lower temperatures approach the greedy
	// policy.
	Temperature float64
}

// NewConfig returns a Config with default parameter values
func NewConfig() Config {
	return Config{
		Gamma:       0.9,
		Temperature: 1.0,
	}
}

// CreateSolver creates the solver from the Config
func (c Config) CreateSolver(env environment.Environment,
	seed uint64) (agent.Solver, error) {
	return New(env, c)
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Gamma <= 0 || c.Gamma > 1 {
		return fmt.Errorf("gamma must be in (0, 1], got %v", c.Gamma)
	}
	if c.Temperature <= 0 {
		return fmt.Errorf("temperature must be positive, got %v",
			c.Temperature)
	}
	return nil
}

// Factory returns an agent.Factory constructing SoftVI solvers with
// the Config. SoftVI plans deterministically, so the factory seed is
// irrelevant.
func (c Config) Factory() agent.Factory {
	return agent.FromConfig(c, 0)
}
