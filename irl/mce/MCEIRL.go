// Package mce implements maximum causal entropy inverse reinforcement
// learning for finite MDPs.
//
// Given trajectories of an expert assumed to be Boltzmann-rational,
// MCEIRL estimates reward parameters theta under which the expert's
// behavior maximizes the causal-entropy-regularized log likelihood.
// The outer loop alternates a forward policy-optimization step with an
// occupancy-measure computation and a feature-expectation-matching
// gradient update.
package mce

import (
	"fmt"
	"log"

	"gonum.org/v1/gonum/mat"

	"github.com/kasakh/irl-benchmark/agent"
	"github.com/kasakh/irl-benchmark/environment"
	"github.com/kasakh/irl-benchmark/experiment/tracker"
	"github.com/kasakh/irl-benchmark/mdp"
	"github.com/kasakh/irl-benchmark/reward"
	"github.com/kasakh/irl-benchmark/trajectory"
	"github.com/kasakh/irl-benchmark/utils/matutils"
)

// MCEIRL estimates a reward function from expert trajectories. The
// environment must provide a transition model and a swappable reward
// hypothesis; the solver factory provides the forward RL step.
//
// The struct is not safe for concurrent use: the environment's reward
// hypothesis is mutated in place every iteration.
type MCEIRL struct {
	env         environment.Environment
	expertTrajs []trajectory.Trajectory
	factory     agent.Factory
	config      Config
	seed        uint64

	transitions *mdp.TransitionTensor
	nStates     int // includes the absorbing state
	nActions    int
	featMap     *mat.Dense // identity feature map over states

	metrics tracker.Tracker
}

// New creates a new MCEIRL algorithm estimating rewards on env from
// the expert trajectories, using solvers built by factory for the
// forward step. The seed drives the random initialization of the
// reward parameters.
func New(env environment.Environment, expertTrajs []trajectory.Trajectory,
	factory agent.Factory, config Config, seed uint64) (*MCEIRL, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("mceirl: invalid config: %v", err)
	}
	if len(expertTrajs) == 0 {
		return nil, fmt.Errorf("mceirl: no expert trajectories given")
	}

	model, err := environment.GetModel(env)
	if err != nil {
		return nil, fmt.Errorf("mceirl: %v", err)
	}
	if _, err := environment.GetRewardFunctionProvider(env); err != nil {
		return nil, fmt.Errorf("mceirl: %v", err)
	}

	transitions := mdp.NewTransitionTensor(model)
	nStates := transitions.NStates()

	// Identity feature map: one indicator feature per state, absorbing
	// state included
	featMap := mat.NewDense(nStates, nStates, nil)
	for i := 0; i < nStates; i++ {
		featMap.Set(i, i, 1.0)
	}

	return &MCEIRL{
		env:         env,
		expertTrajs: expertTrajs,
		factory:     factory,
		config:      config,
		seed:        seed,
		transitions: transitions,
		nStates:     nStates,
		nActions:    transitions.NActions(),
		featMap:     featMap,
	}, nil
}

// Register registers a Tracker with the algorithm so that diagnostic
// metrics generated during training can be tracked and saved
func (m *MCEIRL) Register(t tracker.Tracker) {
	m.metrics = t
}

// Train estimates the reward parameters theta that maximize the
// likelihood of the expert trajectories and returns them.
//
// The outer loop runs exactly nIRLIters iterations; there is no
// convergence check or early stopping, so runs with the same iteration
// count stay comparable across benchmarked algorithms. Each iteration
// attaches a reward hypothesis built from the current theta to the
// environment, trains
// the forward solver for nRLEpisodesPerIter episodes against it,
// computes the occupancy measure of the resulting policy, and steps
// theta against the feature-expectation-matching gradient. The
// absorbing-state feature dimension is excluded from the update since
// it carries no reward by construction.
//
// nIRLEpisodesPerIter is reserved for interface parity with IRL
// algorithms that sample episodes per iteration; MCEIRL plans on the
// explicit model and does not use it.
func (m *MCEIRL) Train(nIRLIters, nRLEpisodesPerIter,
	nIRLEpisodesPerIter int) (*mat.VecDense, error) {
	visitCounts, p0 := Visitations(m.expertTrajs, m.nStates, m.nActions)

	// Mean per-trajectory state visitation counts
	meanStateVisits := mat.NewVecDense(m.nStates, nil)
	for s := 0; s < m.nStates; s++ {
		total := 0.0
		for a := 0; a < m.nActions; a++ {
			total += visitCounts.At(s, a)
		}
		meanStateVisits.SetVec(s, total/float64(len(m.expertTrajs)))
	}

	// Empirical discounted feature expectations of the expert
	meanFeatureCount := mat.NewVecDense(m.nStates, nil)
	meanFeatureCount.MulVec(m.featMap.T(), meanStateVisits)

	// theta spans the raw states only; the absorbing state carries no
	// reward signal
	rewardFunction := reward.NewRandomFeatureBased(m.nStates-1, m.seed)
	theta := rewardFunction.Parameters()

	provider, err := environment.GetRewardFunctionProvider(m.env)
	if err != nil {
		return nil, fmt.Errorf("train: %v", err)
	}

	solver, err := m.factory(m.env)
	if err != nil {
		return nil, fmt.Errorf("train: could not create solver: %v", err)
	}

	for iteration := 1; iteration <= nIRLIters; iteration++ {
		if m.config.Verbose {
			log.Printf("IRL iteration %d", iteration)
		}

		// Attach the current hypothesis so the forward solver plans
		// against it
		estimate := reward.NewFeatureBased(theta)
		provider.UpdateRewardFunction(estimate)

		if err := solver.Train(nRLEpisodesPerIter); err != nil {
			return nil, fmt.Errorf("train: forward solver failed at "+
				"iteration %d: %v", iteration, err)
		}
		policy := solver.PolicyArray()

		d := OccupancyMeasure(m.transitions, policy, p0, m.config.Gamma,
			m.config.Epsilon, -1)

		// Log-likelihood gradient: the negative difference between the
		// expert's and the policy's discounted feature expectations
		policyFeatures := mat.NewVecDense(m.nStates, nil)
		policyFeatures.MulVec(m.featMap.T(), d)

		grad := mat.NewVecDense(m.nStates, nil)
		grad.SubVec(policyFeatures, meanFeatureCount)

		// Gradient descent on theta, absorbing dimension excluded
		theta.AddScaledVec(theta, -m.config.LR,
			grad.SliceVec(0, m.nStates-1))

		if m.metrics != nil {
			m.metrics.Track("log_likelihood",
				m.logLikelihood(visitCounts, solver))
		}
		if m.config.Verbose {
			log.Printf("theta: %v", matutils.Format(theta.T()))
		}
	}

	return theta, nil
}

// logLikelihood computes the Boltzmann-rational log likelihood of the
// expert's state-action visitations under the solver's current value
// estimates. Diagnostic only; the gradient does not use it.
func (m *MCEIRL) logLikelihood(visitCounts *mat.Dense,
	solver agent.Solver) float64 {
	qValues := solver.QValues()
	stateValues := solver.StateValues()

	ll := 0.0
	for s := 0; s < m.nStates; s++ {
		for a := 0; a < m.nActions; a++ {
			count := visitCounts.At(s, a)
			if count != 0 {
				ll += count * (qValues.At(s, a) - stateValues.AtVec(s))
			}
		}
	}
	return ll
}
