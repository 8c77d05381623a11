// Package wrappers provides layers that wrap environments to add
// capabilities such as feature mappings and reward hypotheses
package wrappers

import (
	"gonum.org/v1/gonum/mat"

	"github.com/kasakh/irl-benchmark/environment"
	"github.com/kasakh/irl-benchmark/utils/matutils"
)

// OneHotFeatures wraps an environment and maps every transition to the
// one-hot encoding of the successor state. It registers itself as the
// environment's feature mapping capability.
//
// OneHotFeatures itself implements the environment.Environment
// interface, and is therefore itself an Environment.
type OneHotFeatures struct {
	environment.Environment
	nStates int
}

// NewOneHotFeatures creates and returns a new OneHotFeatures wrapper
// around env
func NewOneHotFeatures(env environment.Environment) *OneHotFeatures {
	f := &OneHotFeatures{env, env.ObservationSpec().N}
	env.Capabilities().Register(environment.FeatureCapability, f)
	return f
}

// Features returns the one-hot feature vector of nextState. The state
// and action arguments are part of the FeatureProvider contract but do
// not influence one-hot features.
func (f *OneHotFeatures) Features(state, action, nextState int) *mat.VecDense {
	return matutils.OneHot(nextState, f.nStates)
}

// FeatureLength returns the length of the feature vectors produced by
// the wrapper
func (f *OneHotFeatures) FeatureLength() int {
	return f.nStates
}
