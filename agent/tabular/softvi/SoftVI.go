// Package softvi implements soft (Boltzmann) value iteration for
// discrete environments with explicit transition models.
//
// Soft value iteration replaces the max in the Bellman backup with a
// temperature-scaled log-sum-exp, so the resulting policy is the
// Boltzmann distribution over action values. This is the soft-optimal
// planner that maximum-causal-entropy IRL assumes of its expert.
package softvi

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/kasakh/irl-benchmark/environment"
	"github.com/kasakh/irl-benchmark/mdp"
	"github.com/kasakh/irl-benchmark/utils/floatutils"
)

// SoftVI plans on an environment's explicit model. The transition
// tensor is built once at construction; the reward matrix is rebuilt
// on every Train call so that the solver always plans against the
// environment's current reward hypothesis.
type SoftVI struct {
	env    environment.Environment
	config Config

	transitions *mdp.TransitionTensor
	stateValues *mat.VecDense
	qValues     *mat.Dense
	policy      *mat.Dense
}

// New creates a new SoftVI solver planning on env's transition model
func New(env environment.Environment, config Config) (*SoftVI, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("softvi: invalid config: %v", err)
	}

	model, err := environment.GetModel(env)
	if err != nil {
		return nil, fmt.Errorf("softvi: %v", err)
	}

	transitions := mdp.NewTransitionTensor(model)
	nStates := transitions.NStates()
	nActions := transitions.NActions()

	s := &SoftVI{
		env:         env,
		config:      config,
		transitions: transitions,
		stateValues: mat.NewVecDense(nStates, nil),
		qValues:     mat.NewDense(nStates, nActions, nil),
		policy:      mat.NewDense(nStates, nActions, nil),
	}
	s.uniformPolicy()

	return s, nil
}

// Train runs numEpisodes sweeps of soft value iteration against the
// environment's current reward hypothesis and recomputes the Boltzmann
// policy from the resulting action values.
func (s *SoftVI) Train(numEpisodes int) error {
	rewards, err := mdp.NewRewardMatrix(s.env)
	if err != nil {
		return fmt.Errorf("train: %v", err)
	}

	nStates := s.transitions.NStates()
	nActions := s.transitions.NActions()
	gamma := s.config.Gamma
	temp := s.config.Temperature

	for sweep := 0; sweep < numEpisodes; sweep++ {
		// Bellman backup of the action values under the soft values
		for state := 0; state < nStates; state++ {
			for action := 0; action < nActions; action++ {
				expected := 0.0
				for next := 0; next < nStates; next++ {
					p := s.transitions.At(state, action, next)
					if p != 0 {
						expected += p * s.stateValues.AtVec(next)
					}
				}
				s.qValues.Set(state, action,
					rewards.At(state, action)+gamma*expected)
			}
		}

		// Soft state values: V(s) = temp * logsumexp(Q(s, .) / temp)
		for state := 0; state < nStates; state++ {
			scaled := make([]float64, nActions)
			for action := 0; action < nActions; action++ {
				scaled[action] = s.qValues.At(state, action) / temp
			}
			s.stateValues.SetVec(state, temp*floatutils.LogSumExp(scaled...))
		}
	}

	s.boltzmannPolicy()
	return nil
}

// PolicyArray returns the Boltzmann policy over the solver's current
// action values. Each row is a probability distribution over actions.
func (s *SoftVI) PolicyArray() *mat.Dense {
	return s.policy
}

// StateValues returns the solver's soft state-value estimates
func (s *SoftVI) StateValues() *mat.VecDense {
	return s.stateValues
}

// QValues returns the solver's action-value estimates
func (s *SoftVI) QValues() *mat.Dense {
	return s.qValues
}

// boltzmannPolicy sets policy(s, a) proportional to exp(Q(s, a)/temp).
// The soft values make the rows sum to 1 up to floating error, so the
// rows are renormalized explicitly.
func (s *SoftVI) boltzmannPolicy() {
	nStates := s.transitions.NStates()
	nActions := s.transitions.NActions()
	temp := s.config.Temperature

	for state := 0; state < nStates; state++ {
		row := make([]float64, nActions)
		sum := 0.0
		for action := 0; action < nActions; action++ {
			p := math.Exp((s.qValues.At(state, action) -
				s.stateValues.AtVec(state)) / temp)
			row[action] = p
			sum += p
		}
		for action := range row {
			row[action] /= sum
		}
		s.policy.SetRow(state, row)
	}
}

// uniformPolicy sets every row of the policy to the uniform
// distribution, the policy before any training
func (s *SoftVI) uniformPolicy() {
	nStates := s.transitions.NStates()
	nActions := s.transitions.NActions()
	uniform := make([]float64, nActions)
	for action := range uniform {
		uniform[action] = 1.0 / float64(nActions)
	}
	for state := 0; state < nStates; state++ {
		s.policy.SetRow(state, uniform)
	}
}
