// Package trajectory implements expert trajectory datasets: recorded
// episodes of states, actions, and rewards used as input to IRL
// algorithms.
package trajectory

import (
	"fmt"
	"os"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/kasakh/irl-benchmark/environment"
	"github.com/kasakh/irl-benchmark/utils/progressbar"
)

// Trajectory is one recorded episode. States holds the T+1 visited
// states and Actions the T taken actions. Rewards holds the reward
// signal the acting agent saw; TrueRewards holds the environment's
// native rewards, which differ when a reward hypothesis is wrapped
// around the environment. Trajectories are read-only once recorded.
type Trajectory struct {
	States      []int
	Actions     []int
	Rewards     []float64
	TrueRewards []float64
}

// Len returns the number of transitions in the trajectory
func (t Trajectory) Len() int {
	return len(t.Actions)
}

// Collect records n episodes of policy acting in env. The policy is an
// nStates x nActions matrix whose rows are probability distributions
// over actions. When showProgress is set a progress bar is printed to
// stderr.
func Collect(env environment.Environment, policy *mat.Dense, n int,
	seed uint64, showProgress bool) ([]Trajectory, error) {
	nActions := env.ActionSpec().N
	rows, cols := policy.Dims()
	if rows < env.ObservationSpec().N || cols != nActions {
		return nil, fmt.Errorf("collect: policy shape (%d, %d) does not "+
			"cover environment with %d states and %d actions", rows, cols,
			env.ObservationSpec().N, nActions)
	}

	source := rand.NewSource(seed)
	trajs := make([]Trajectory, 0, n)

	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.New(os.Stderr, 40, n)
		defer bar.Close()
	}

	for episode := 0; episode < n; episode++ {
		var traj Trajectory

		step := env.Reset()
		traj.States = append(traj.States, step.State)

		for !step.Last() {
			// Sample an action from the policy's distribution for the
			// current state
			dist := distuv.NewCategorical(policy.RawRowView(step.State),
				source)
			action := int(dist.Rand())

			step, _ = env.Step(action)

			traj.Actions = append(traj.Actions, action)
			traj.Rewards = append(traj.Rewards, step.Reward)
			traj.TrueRewards = append(traj.TrueRewards, step.TrueReward)
			traj.States = append(traj.States, step.State)
		}

		trajs = append(trajs, traj)
		if bar != nil {
			bar.Increment()
		}
	}

	return trajs, nil
}

// AvgUndiscountedReturn returns the average undiscounted true return
// of trajs, falling back to the observed rewards for datasets recorded
// without true-reward traces.
func AvgUndiscountedReturn(trajs []Trajectory) float64 {
	if len(trajs) == 0 {
		return 0
	}

	total := 0.0
	for _, traj := range trajs {
		rewards := traj.TrueRewards
		if len(rewards) == 0 {
			rewards = traj.Rewards
		}
		for _, r := range rewards {
			total += r
		}
	}
	return total / float64(len(trajs))
}
