package mce

import (
	"gonum.org/v1/gonum/mat"

	"github.com/kasakh/irl-benchmark/mdp"
	"github.com/kasakh/irl-benchmark/utils/floatutils"
)

// OccupancyMeasure computes the expected discounted number of times
// that a policy visits each state, starting from the distribution p0,
// as in Algorithm 9.3 of Ziebart's thesis:
// http://www.cs.cmu.edu/~bziebart/publications/thesis-bziebart.pdf.
//
// Each sweep rebuilds the estimate from p0 and propagates the previous
// estimate one step through the transition tensor:
//
//	d[s'] = p0[s'] + gamma * sum_{s,a} dPrev[s] * policy[s,a] * T[s,a,s']
//
// The iteration stops when the sup-norm difference between consecutive
// sweeps is at most threshold. Convergence is not guaranteed in
// general, so maxSweeps bounds the number of sweeps when
// non-negative; the best estimate so far is returned either way. A
// negative maxSweeps iterates until convergence.
//
// A nil p0 defaults to the uniform distribution over states. Each row
// of policy must be a probability distribution over actions;
// violating this yields an undefined estimate, not an error.
func OccupancyMeasure(transitions *mdp.TransitionTensor, policy *mat.Dense,
	p0 *mat.VecDense, gamma, threshold float64, maxSweeps int) *mat.VecDense {
	nStates := transitions.NStates()
	nActions := transitions.NActions()

	if p0 == nil {
		uniform := make([]float64, nStates)
		for i := range uniform {
			uniform[i] = 1.0 / float64(nStates)
		}
		p0 = mat.NewVecDense(nStates, uniform)
	}

	dPrev := make([]float64, nStates)
	if maxSweeps == 0 {
		return mat.VecDenseCopyOf(p0)
	}

	// Sweep over successor rows through the dense tensor's own layout
	flat := transitions.Tensor()
	data := flat.Data().([]float64)
	strides := flat.Strides()

	sweeps := 0
	for {
		// Seed the sweep's accumulator from the start distribution
		d := make([]float64, nStates)
		for s := range d {
			d[s] = p0.AtVec(s)
		}

		for state := 0; state < nStates; state++ {
			if dPrev[state] == 0 {
				continue
			}
			for action := 0; action < nActions; action++ {
				weight := gamma * dPrev[state] * policy.At(state, action)
				if weight == 0 {
					continue
				}
				row := state*strides[0] + action*strides[1]
				for next := 0; next < nStates; next++ {
					d[next] += weight * data[row+next*strides[2]]
				}
			}
		}

		diff := floatutils.MaxAbsDiff(d, dPrev)
		dPrev = d
		sweeps++

		if diff <= threshold {
			break
		}
		if maxSweeps > 0 && sweeps >= maxSweeps {
			break
		}
	}

	return mat.NewVecDense(nStates, dPrev)
}
