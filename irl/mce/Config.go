package mce

import "fmt"

// Config represents a configuration for the MCEIRL algorithm
type Config struct {
	// Gamma is the discount factor used by the occupancy-measure
	// recursion
	Gamma float64

	// Epsilon is the convergence tolerance of the occupancy-measure
	// fixed point
	Epsilon float64

	// LR is the gradient-descent step size for the reward parameters
	LR float64

	// Verbose enables per-iteration logging of the iteration number
	// and the current reward parameters
	Verbose bool
}

// NewConfig returns a Config with default parameter values
func NewConfig() Config {
	return Config{
		Gamma:   0.9,
		Epsilon: 1e-6,
		LR:      0.02,
		Verbose: true,
	}
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Gamma <= 0 || c.Gamma > 1 {
		return fmt.Errorf("gamma must be in (0, 1], got %v", c.Gamma)
	}
	if c.Epsilon <= 0 {
		return fmt.Errorf("epsilon must be positive, got %v", c.Epsilon)
	}
	if c.LR <= 0 {
		return fmt.Errorf("learning rate must be positive, got %v", c.LR)
	}
	return nil
}
