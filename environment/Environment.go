// Package environment outlines the interfaces and structs needed to
// implement concrete discrete environments with enumerable transition
// structures
package environment

import (
	"github.com/kasakh/irl-benchmark/timestep"
)

// Starter implements a distribution of starting states and samples
// starting state indices for environments
type Starter interface {
	Start() int
}

// Outcome is a single entry of an environment's transition structure:
// taking an action in a state moves the agent to NextState with the
// given Probability, yields Reward, and ends the episode if Done.
type Outcome struct {
	Probability float64
	NextState   int
	Reward      float64
	Done        bool
}

// Model exposes the explicit transition structure of a finite MDP.
// States are indexed 0..NStates()-1 and actions 0..NActions()-1, with
// every action available in every state.
type Model interface {
	NStates() int
	NActions() int

	// Transitions returns the ordered outcome list for taking action
	// in state. The probabilities of the returned outcomes sum to 1.
	Transitions(state, action int) []Outcome
}

// Task implements the reward scheme for taking actions in some
// environment
type Task interface {
	GetReward(state, action, nextState int) float64
	AtGoal(state int) bool
}

// Environment implements a simulated environment, which includes a
// Task to complete. Layers wrapped around a base environment share its
// capability Registry, so consumers query capabilities directly rather
// than unwrapping the layer chain.
type Environment interface {
	Reset() timestep.TimeStep // Resets between episodes
	Step(action int) (timestep.TimeStep, bool)
	ObservationSpec() Spec
	ActionSpec() Spec
	Capabilities() *Registry
}
