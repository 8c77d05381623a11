package reward

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// FeatureBased is a reward function that is linear in a fixed feature
// mapping: r(s, a, s') = theta . phi(s, a, s'). The feature vector is
// computed by the caller (usually a feature-wrapping environment
// layer), so the function itself has no notion of states or actions.
type FeatureBased struct {
	parameters *mat.VecDense
}

// NewFeatureBased returns a feature-based reward function with the
// given parameter vector. The vector is shared, not copied, so that a
// caller optimizing the parameters in place sees its updates reflected
// in later evaluations.
func NewFeatureBased(parameters *mat.VecDense) *FeatureBased {
	return &FeatureBased{parameters}
}

// NewRandomFeatureBased returns a feature-based reward function over
// dim features with parameters drawn uniformly from [0, 1).
func NewRandomFeatureBased(dim int, seed uint64) *FeatureBased {
	rng := rand.New(rand.NewSource(seed))
	parameters := make([]float64, dim)
	for i := range parameters {
		parameters[i] = rng.Float64()
	}
	return &FeatureBased{mat.NewVecDense(dim, parameters)}
}

// Reward evaluates the linear reward on the input's feature vector
func (f *FeatureBased) Reward(in Input) (float64, error) {
	if in.Features == nil {
		return 0, fmt.Errorf("reward: feature-based function requires " +
			"a feature vector input")
	}
	if in.Features.Len() != f.parameters.Len() {
		return 0, fmt.Errorf("reward: feature length %d does not match "+
			"parameter length %d", in.Features.Len(), f.parameters.Len())
	}
	return mat.Dot(f.parameters, in.Features), nil
}

// Parameters returns the parameter vector of the reward function
func (f *FeatureBased) Parameters() *mat.VecDense {
	return f.parameters
}

// SetParameters replaces the parameter vector of the reward function
func (f *FeatureBased) SetParameters(p *mat.VecDense) error {
	if p.Len() != f.parameters.Len() {
		return fmt.Errorf("reward: cannot set parameters of length %d on "+
			"function of dimension %d", p.Len(), f.parameters.Len())
	}
	f.parameters = p
	return nil
}

// Kind returns the variant tag of the function
func (f *FeatureBased) Kind() Kind {
	return KindFeatureBased
}

// Domain is empty for feature-based functions: the feature mapping
// decides what parts of a transition are observable.
func (f *FeatureBased) Domain() Domain {
	return Domain{}
}
