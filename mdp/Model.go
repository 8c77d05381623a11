// Package mdp builds explicit transition and reward models from
// discrete environments.
//
// Episodic environments are made compatible with infinite-horizon
// discounted formulas by appending a synthetic absorbing state at the
// last state index. Every transition structure entry marked done
// rewires its successor state to the absorbing state, and the
// absorbing state self-loops with reward 0 under every action.
package mdp

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"

	"github.com/kasakh/irl-benchmark/environment"
	"github.com/kasakh/irl-benchmark/reward"
)

// TransitionTensor is a dense rank-3 transition model T[s, a, s'] over
// an environment's state space augmented with the absorbing state. For
// every (s, a) the probabilities over successors sum to 1. The tensor
// is built once and immutable thereafter.
type TransitionTensor struct {
	dense    *tensor.Dense
	data     []float64 // dense's float64 backing, for hot-loop reads
	strides  []int
	nStates  int // includes the absorbing state
	nActions int
}

// NewTransitionTensor builds the transition tensor of model. The
// returned tensor has model.NStates()+1 states; the last index is the
// absorbing state.
func NewTransitionTensor(model environment.Model) *TransitionTensor {
	nStates := model.NStates() + 1
	nActions := model.NActions()
	absorbing := nStates - 1

	dense := tensor.New(tensor.Of(tensor.Float64),
		tensor.WithShape(nStates, nActions, nStates))
	t := &TransitionTensor{
		dense:    dense,
		data:     dense.Data().([]float64),
		strides:  dense.Strides(),
		nStates:  nStates,
		nActions: nActions,
	}

	// Accumulate probability mass and collect terminal states
	terminal := make(map[int]bool)
	for state := 0; state < model.NStates(); state++ {
		for action := 0; action < nActions; action++ {
			for _, outcome := range model.Transitions(state, action) {
				t.data[t.index(state, action, outcome.NextState)] +=
					outcome.Probability
				if outcome.Done {
					terminal[outcome.NextState] = true
				}
			}
		}
	}

	// Terminal states map to the absorbing state with probability 1
	// under every action, overriding their natural transitions
	for state := range terminal {
		for action := 0; action < nActions; action++ {
			for next := 0; next < nStates; next++ {
				t.data[t.index(state, action, next)] = 0
			}
			t.data[t.index(state, action, absorbing)] = 1.0
		}
	}

	// The absorbing state only reaches itself under every action
	for action := 0; action < nActions; action++ {
		t.data[t.index(absorbing, action, absorbing)] = 1.0
	}

	return t
}

// At returns the probability of moving from state to nextState under
// action
func (t *TransitionTensor) At(state, action, nextState int) float64 {
	return t.data[t.index(state, action, nextState)]
}

// NStates returns the number of states, including the absorbing state
func (t *TransitionTensor) NStates() int {
	return t.nStates
}

// NActions returns the number of actions
func (t *TransitionTensor) NActions() int {
	return t.nActions
}

// AbsorbingState returns the index of the absorbing state
func (t *TransitionTensor) AbsorbingState() int {
	return t.nStates - 1
}

// Tensor returns the underlying dense tensor of shape
// (NStates, NActions, NStates). The dense tensor owns the storage that
// At reads; callers that sweep whole transition rows read through its
// layout directly.
func (t *TransitionTensor) Tensor() *tensor.Dense {
	return t.dense
}

func (t *TransitionTensor) index(state, action, nextState int) int {
	return state*t.strides[0] + action*t.strides[1] + nextState*t.strides[2]
}

// NewRewardMatrix builds the dense reward matrix R[s, a] of env over
// the absorbing-state-augmented state space, where R[s, a] is the
// expectation of the transition rewards under the transition
// probabilities.
//
// If a reward hypothesis is attached to env, rewards are re-derived by
// evaluating it instead of using the environment's native rewards:
// feature-based hypotheses are evaluated on the successor state's
// feature vector and tabular hypotheses on the successor state index.
// Transitions into the absorbing state always carry reward 0, and
// terminal self-loops in the raw transition structure are rewritten to
// point at the absorbing state before rewards are looked up, keeping
// the reward matrix consistent with the transition tensor.
func NewRewardMatrix(env environment.Environment) (*mat.Dense, error) {
	model, err := environment.GetModel(env)
	if err != nil {
		return nil, fmt.Errorf("newRewardMatrix: %v", err)
	}

	nStates := model.NStates() + 1
	nActions := model.NActions()
	absorbing := nStates - 1

	rewardFn := attachedRewardFunction(env)

	rewards := mat.NewDense(nStates, nActions, nil)
	for state := 0; state < model.NStates(); state++ {
		for action := 0; action < nActions; action++ {
			outcomes := rewireTerminalSelfLoop(
				model.Transitions(state, action), state, absorbing)

			expected := 0.0
			for _, outcome := range outcomes {
				r := outcome.Reward
				if outcome.NextState == absorbing {
					// The absorbing state is synthetic and carries no
					// reward, whatever hypothesis is attached
					r = 0
				} else if rewardFn != nil {
					r, err = deriveReward(env, rewardFn, state, action,
						outcome.NextState)
					if err != nil {
						return nil, fmt.Errorf("newRewardMatrix: %v", err)
					}
				}
				expected += outcome.Probability * r
			}
			rewards.Set(state, action, expected)
		}
	}

	// Absorbing-state row stays all zero
	return rewards, nil
}

// attachedRewardFunction returns env's reward hypothesis, or nil when
// the environment carries none and native rewards should be used
func attachedRewardFunction(env environment.Environment) reward.Function {
	provider, err := environment.GetRewardFunctionProvider(env)
	if err != nil {
		return nil
	}
	return provider.RewardFunction()
}

// rewireTerminalSelfLoop rewrites a terminal state's pure self-loop to
// point at the absorbing state with the same probability, mirroring
// the rewiring performed during transition-tensor construction
func rewireTerminalSelfLoop(outcomes []environment.Outcome, state,
	absorbing int) []environment.Outcome {
	if len(outcomes) != 1 || outcomes[0].NextState != state ||
		!outcomes[0].Done {
		return outcomes
	}
	return []environment.Outcome{{
		Probability: outcomes[0].Probability,
		NextState:   absorbing,
		Reward:      0,
		Done:        true,
	}}
}

// deriveReward evaluates the attached hypothesis for a transition,
// constructing the input its variant requires
func deriveReward(env environment.Environment, fn reward.Function, state,
	action, nextState int) (float64, error) {
	switch fn.Kind() {
	case reward.KindFeatureBased:
		features, err := environment.GetFeatureProvider(env)
		if err != nil {
			return 0, fmt.Errorf("feature-based hypothesis attached but %v",
				err)
		}
		return fn.Reward(reward.Input{
			Features: features.Features(state, action, nextState),
		})

	case reward.KindTabular:
		domain := fn.Domain()
		if domain.ActionInDomain || domain.NextStateInDomain {
			return 0, fmt.Errorf("tabular hypotheses over actions or next " +
				"states are not supported")
		}
		return fn.Reward(reward.Input{State: nextState})
	}

	return 0, fmt.Errorf("unrecognized reward function variant %q",
		fn.Kind())
}
