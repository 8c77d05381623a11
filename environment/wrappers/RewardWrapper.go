package wrappers

import (
	"fmt"

	"github.com/kasakh/irl-benchmark/environment"
	"github.com/kasakh/irl-benchmark/reward"
	"github.com/kasakh/irl-benchmark/timestep"
)

// RewardWrapper wraps an environment and replaces the reward of every
// step with the value of an attached reward function hypothesis. The
// environment's native reward is preserved in each timestep's
// TrueReward field. Swapping the hypothesis with UpdateRewardFunction
// lets an IRL algorithm re-evaluate the environment under its current
// estimate without rebuilding the environment.
//
// RewardWrapper itself implements the environment.Environment
// interface, and is therefore itself an Environment.
type RewardWrapper struct {
	environment.Environment
	rewardFunction reward.Function

	// lastState tracks S_t so the reward input for the transition
	// (S_t, A_t, S_{t+1}) can be built when Step returns S_{t+1}
	lastState int
}

// NewRewardWrapper creates and returns a new RewardWrapper around env
// with reward hypothesis f. The wrapper registers itself as the
// environment's reward function capability.
func NewRewardWrapper(env environment.Environment,
	f reward.Function) *RewardWrapper {
	w := &RewardWrapper{env, f, 0}
	env.Capabilities().Register(environment.RewardFunctionCapability, w)
	return w
}

// RewardFunction returns the currently attached reward hypothesis
func (w *RewardWrapper) RewardFunction() reward.Function {
	return w.rewardFunction
}

// UpdateRewardFunction replaces the attached reward hypothesis
func (w *RewardWrapper) UpdateRewardFunction(f reward.Function) {
	w.rewardFunction = f
}

// Reset resets the wrapped environment and returns its starting
// timestep
func (w *RewardWrapper) Reset() timestep.TimeStep {
	step := w.Environment.Reset()
	w.lastState = step.State
	return step
}

// Step takes one environmental step given the action, replacing the
// reward of the resulting timestep with the attached hypothesis's
// value for the observed transition.
func (w *RewardWrapper) Step(action int) (timestep.TimeStep, bool) {
	step, last := w.Environment.Step(action)

	in, err := w.RewardInput(w.lastState, action, step.State)
	if err != nil {
		panic(fmt.Sprintf("step: cannot build reward input: %v", err))
	}
	r, err := w.rewardFunction.Reward(in)
	if err != nil {
		panic(fmt.Sprintf("step: cannot evaluate reward hypothesis: %v", err))
	}

	// TrueReward keeps the environment's native signal
	step.Reward = r
	w.lastState = step.State

	return step, last
}

// RewardInput builds the input that the attached hypothesis requires
// for the transition (state, action, nextState). Feature-based
// hypotheses receive the feature vector of the transition from the
// environment's feature capability; tabular hypotheses receive the
// indices restricted to their declared domain.
func (w *RewardWrapper) RewardInput(state, action,
	nextState int) (reward.Input, error) {
	switch w.rewardFunction.Kind() {
	case reward.KindFeatureBased:
		features, err := environment.GetFeatureProvider(w.Environment)
		if err != nil {
			return reward.Input{}, fmt.Errorf("rewardInput: feature-based "+
				"hypothesis attached but %v", err)
		}
		return reward.Input{
			Features: features.Features(state, action, nextState),
		}, nil

	case reward.KindTabular:
		domain := w.rewardFunction.Domain()
		if domain.ActionInDomain || domain.NextStateInDomain {
			return reward.Input{}, fmt.Errorf("rewardInput: tabular " +
				"hypotheses over actions or next states are not supported")
		}
		// State-only domains are evaluated at the successor state
		return reward.Input{State: nextState}, nil
	}

	return reward.Input{}, fmt.Errorf("rewardInput: unrecognized reward "+
		"function variant %q", w.rewardFunction.Kind())
}
