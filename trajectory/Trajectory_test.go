package trajectory

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/kasakh/irl-benchmark/environment/chainworld"
)

func TestCollectDeterministicPolicy(t *testing.T) {
	starter, err := chainworld.NewSingleStart(0, 3)
	if err != nil {
		t.Fatal(err)
	}
	task := chainworld.NewGoal(3, -0.1, 1.0)
	chain, _, err := chainworld.New(3, 0, task, 0.9, starter, 1)
	if err != nil {
		t.Fatal(err)
	}

	// Always move right
	policy := mat.NewDense(3, 2, nil)
	for s := 0; s < 3; s++ {
		policy.Set(s, chainworld.Right, 1.0)
	}

	trajs, err := Collect(chain, policy, 5, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(trajs) != 5 {
		t.Fatalf("expected 5 trajectories, got %d", len(trajs))
	}

	for _, traj := range trajs {
		wantStates := []int{0, 1, 2}
		if len(traj.States) != len(wantStates) {
			t.Fatalf("expected states %v, got %v", wantStates, traj.States)
		}
		for i, s := range wantStates {
			if traj.States[i] != s {
				t.Errorf("states = %v, expected %v", traj.States, wantStates)
				break
			}
		}
		if traj.Len() != 2 {
			t.Errorf("expected 2 transitions, got %d", traj.Len())
		}
		for _, a := range traj.Actions {
			if a != chainworld.Right {
				t.Errorf("expected only Right actions, got %v", traj.Actions)
				break
			}
		}
	}
}

func TestCollectRejectsUndersizedPolicy(t *testing.T) {
	starter, err := chainworld.NewSingleStart(0, 3)
	if err != nil {
		t.Fatal(err)
	}
	task := chainworld.NewGoal(3, -0.1, 1.0)
	chain, _, err := chainworld.New(3, 0, task, 0.9, starter, 1)
	if err != nil {
		t.Fatal(err)
	}

	policy := mat.NewDense(2, 2, nil)
	if _, err := Collect(chain, policy, 1, 1, false); err == nil {
		t.Error("expected an error for a policy covering too few states")
	}
}

func TestAvgUndiscountedReturn(t *testing.T) {
	trajs := []Trajectory{
		{TrueRewards: []float64{1, 2}},
		{TrueRewards: []float64{3}},
	}
	if got := AvgUndiscountedReturn(trajs); got != 3 {
		t.Errorf("expected average true return 3, got %v", got)
	}

	// Fall back to observed rewards when no true rewards are recorded
	trajs = []Trajectory{
		{Rewards: []float64{2}},
		{Rewards: []float64{4}},
	}
	if got := AvgUndiscountedReturn(trajs); got != 3 {
		t.Errorf("expected fallback average 3, got %v", got)
	}

	if got := AvgUndiscountedReturn(nil); got != 0 {
		t.Errorf("expected 0 for an empty dataset, got %v", got)
	}
}
