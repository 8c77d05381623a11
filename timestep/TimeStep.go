// Package timestep implements timesteps of the agent-environment interaction
package timestep

import "fmt"

// StepType denotes the type of step that a TimeStep can be, either a first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// TimeStep packages together a single timestep in a discrete environment.
// State is the index of the state observed after the transition. Reward
// is the reward signal seen by the agent; TrueReward is the environment's
// native reward, which reward-wrapping layers leave untouched when they
// override Reward.
type TimeStep struct {
	stepType   StepType
	Reward     float64
	TrueReward float64
	Discount   float64
	State      int
	Number     int
}

// New returns a TimeStep with TrueReward initialized to the reward
// produced by the environment.
func New(t StepType, r, d float64, state, n int) TimeStep {
	return TimeStep{t, r, r, d, state, n}
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.stepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.stepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.stepType == Last
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Discount: %.2f  |  " +
		"State: %d  |  Step Number:  %v"

	return fmt.Sprintf(str, t.stepType, t.Reward, t.Discount, t.State, t.Number)
}
