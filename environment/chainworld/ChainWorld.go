// Package chainworld implements an episodic N-state chain MDP with an
// explicit transition structure.
//
// States are laid out in a line. Action 0 moves the agent one state to
// the right and action 1 one state to the left, clipped at the chain
// ends. With probability slip an action leaves the agent where it is.
// The last state of the chain is terminal: entering it ends the
// episode, and its own transition structure self-loops.
package chainworld

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/kasakh/irl-benchmark/environment"
	"github.com/kasakh/irl-benchmark/timestep"
)

// Chain actions
const (
	Right int = iota
	Left
)

// SingleStart always starts episodes in the same state
type SingleStart struct {
	state int
}

// NewSingleStart returns a Starter that starts every episode in state
func NewSingleStart(state, nStates int) (environment.Starter, error) {
	if state < 0 || state >= nStates {
		return nil, fmt.Errorf("singleStart: state %d outside chain of "+
			"length %d", state, nStates)
	}
	return &SingleStart{state}, nil
}

// Start returns the starting state index
func (s *SingleStart) Start() int {
	return s.state
}

// ChainWorld represents a chain environment. It provides its own
// transition Model capability.
type ChainWorld struct {
	environment.Task
	environment.Starter
	nStates     int
	slip        float64
	discount    float64
	state       int
	currentStep timestep.TimeStep
	rng         *rand.Rand
	caps        *environment.Registry
}

// New creates a new chain with nStates states, slip probability slip,
// task t, discount factor discount, and Starter s. The last state of
// the chain is terminal.
func New(nStates int, slip float64, t environment.Task, discount float64,
	s environment.Starter, seed uint64) (*ChainWorld, timestep.TimeStep,
	error) {
	if nStates < 2 {
		return nil, timestep.TimeStep{}, fmt.Errorf("chainworld: need at "+
			"least 2 states, got %d", nStates)
	}
	if slip < 0 || slip >= 1 {
		return nil, timestep.TimeStep{}, fmt.Errorf("chainworld: slip "+
			"probability %v outside [0, 1)", slip)
	}

	c := &ChainWorld{
		Task:     t,
		Starter:  s,
		nStates:  nStates,
		slip:     slip,
		discount: discount,
		rng:      rand.New(rand.NewSource(seed)),
		caps:     environment.NewRegistry(),
	}
	c.caps.Register(environment.ModelCapability, c)

	return c, c.Reset(), nil
}

// Reset resets the environment and returns a starting timestep with a
// state drawn from the environment Starter
func (c *ChainWorld) Reset() timestep.TimeStep {
	c.state = c.Start()
	startStep := timestep.New(timestep.First, 0, c.discount, c.state, 0)
	c.currentStep = startStep
	return startStep
}

// Step takes one environmental step given the action and returns the
// next timestep and whether the episode has ended
func (c *ChainWorld) Step(action int) (timestep.TimeStep, bool) {
	outcomes := c.Transitions(c.state, action)

	// Sample an outcome from the transition structure
	outcome := outcomes[len(outcomes)-1]
	u := c.rng.Float64()
	cumulative := 0.0
	for _, o := range outcomes {
		cumulative += o.Probability
		if u < cumulative {
			outcome = o
			break
		}
	}

	c.state = outcome.NextState
	stepType := timestep.Mid
	if outcome.Done {
		stepType = timestep.Last
	}

	step := timestep.New(stepType, outcome.Reward, c.discount, c.state,
		c.currentStep.Number+1)
	c.currentStep = step

	return step, stepType == timestep.Last
}

// NStates returns the number of states in the chain
func (c *ChainWorld) NStates() int {
	return c.nStates
}

// NActions returns the number of actions, identical in every state
func (c *ChainWorld) NActions() int {
	return 2
}

// Transitions returns the outcome list for taking action in state. The
// terminal state self-loops with done set, regardless of action.
func (c *ChainWorld) Transitions(state, action int) []environment.Outcome {
	if state == c.nStates-1 {
		return []environment.Outcome{
			{Probability: 1.0, NextState: state, Reward: 0, Done: true},
		}
	}

	target := state + 1
	if action == Left {
		target = state - 1
	}
	if target < 0 {
		target = 0
	}

	move := environment.Outcome{
		Probability: 1.0 - c.slip,
		NextState:   target,
		Reward:      c.GetReward(state, action, target),
		Done:        target == c.nStates-1,
	}
	if c.slip == 0 {
		return []environment.Outcome{move}
	}

	stay := environment.Outcome{
		Probability: c.slip,
		NextState:   state,
		Reward:      c.GetReward(state, action, state),
		Done:        false,
	}
	return []environment.Outcome{move, stay}
}

// ObservationSpec returns the observation specification of the chain
func (c *ChainWorld) ObservationSpec() environment.Spec {
	return environment.NewSpec(c.nStates, environment.Observation)
}

// ActionSpec returns the action specification of the chain
func (c *ChainWorld) ActionSpec() environment.Spec {
	return environment.NewSpec(c.NActions(), environment.Action)
}

// Capabilities returns the capability registry shared by the chain and
// any layers wrapped around it
func (c *ChainWorld) Capabilities() *environment.Registry {
	return c.caps
}

func (c *ChainWorld) String() string {
	return fmt.Sprintf("ChainWorld | At: %d  |  States: %d  |  Slip: %v",
		c.state, c.nStates, c.slip)
}

// Goal rewards reaching the terminal end of the chain and penalizes
// every other transition with a constant step reward.
type Goal struct {
	goal           int
	timeStepReward float64
	goalReward     float64
}

// NewGoal creates a new Goal task for a chain with nStates states
func NewGoal(nStates int, timeStepReward, goalReward float64) *Goal {
	return &Goal{nStates - 1, timeStepReward, goalReward}
}

// GetReward returns the reward for the transition (state, action,
// nextState)
func (g *Goal) GetReward(state, action, nextState int) float64 {
	if nextState == g.goal {
		return g.goalReward
	}
	return g.timeStepReward
}

// AtGoal returns whether state is the goal state
func (g *Goal) AtGoal(state int) bool {
	return state == g.goal
}
