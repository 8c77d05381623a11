package mce

import (
	"gonum.org/v1/gonum/mat"

	"github.com/kasakh/irl-benchmark/trajectory"
)

// Visitations computes the state-action visitation counts of a set of
// expert trajectories and the empirical probability of a trajectory
// starting in each state.
//
// The returned count matrix has shape nStates x nActions and holds raw
// counts; callers normalize as needed. The returned start distribution
// is normalized by the number of trajectories.
func Visitations(trajs []trajectory.Trajectory, nStates,
	nActions int) (*mat.Dense, *mat.VecDense) {
	counts := mat.NewDense(nStates, nActions, nil)
	p0 := mat.NewVecDense(nStates, nil)

	for _, traj := range trajs {
		first := traj.States[0]
		p0.SetVec(first, p0.AtVec(first)+1)

		for t := 0; t < traj.Len(); t++ {
			state := traj.States[t]
			action := traj.Actions[t]
			counts.Set(state, action, counts.At(state, action)+1)
		}
	}

	// Count into probability
	if len(trajs) > 0 {
		p0.ScaleVec(1/float64(len(trajs)), p0)
	}

	return counts, p0
}
