// Demo of maximum causal entropy IRL on a chain MDP: a soft-optimal
// expert is trained on the true reward, its trajectories are recorded,
// and MCEIRL recovers reward parameters from them.
package main

import (
	"fmt"
	"log"

	"github.com/kasakh/irl-benchmark/agent/tabular/softvi"
	"github.com/kasakh/irl-benchmark/environment/chainworld"
	"github.com/kasakh/irl-benchmark/environment/wrappers"
	"github.com/kasakh/irl-benchmark/experiment/tracker"
	"github.com/kasakh/irl-benchmark/irl/mce"
	"github.com/kasakh/irl-benchmark/reward"
	"github.com/kasakh/irl-benchmark/trajectory"
	"github.com/kasakh/irl-benchmark/utils/matutils"
)

func main() {
	var seed uint64 = 42
	nStates := 5

	// Chain environment with feature and reward layers. The initial
	// hypothesis is the environment's true tabular reward; MCEIRL
	// replaces it on its first iteration.
	starter, err := chainworld.NewSingleStart(0, nStates)
	if err != nil {
		log.Fatal(err)
	}
	task := chainworld.NewGoal(nStates, -0.1, 1.0)
	chain, _, err := chainworld.New(nStates, 0.1, task, 0.9, starter, seed)
	if err != nil {
		log.Fatal(err)
	}
	features := wrappers.NewOneHotFeatures(chain)

	trueRewards := matutils.OneHot(nStates-1, nStates)
	env := wrappers.NewRewardWrapper(features, reward.NewTabular(trueRewards))

	// Train a soft-optimal expert on the true reward and record its
	// behavior
	expert, err := softvi.New(env, softvi.NewConfig())
	if err != nil {
		log.Fatal(err)
	}
	if err := expert.Train(200); err != nil {
		log.Fatal(err)
	}
	expertTrajs, err := trajectory.Collect(env, expert.PolicyArray(), 100,
		seed, true)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("expert average return: %.3f\n",
		trajectory.AvgUndiscountedReturn(expertTrajs))

	// Recover reward parameters from the expert trajectories
	irl, err := mce.New(env, expertTrajs, softvi.NewConfig().Factory(),
		mce.NewConfig(), seed)
	if err != nil {
		log.Fatal(err)
	}
	metrics := tracker.NewMetrics()
	irl.Register(metrics)

	theta, err := irl.Train(50, 100, 0)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("estimated reward parameters: %v\n",
		matutils.Format(theta.T()))
	if err := metrics.Save("mceirl_metrics.json"); err != nil {
		log.Fatal(err)
	}
}
