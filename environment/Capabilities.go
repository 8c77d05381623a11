package environment

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/kasakh/irl-benchmark/reward"
)

// Capability names a facility that an environment layer can provide.
// Each layer registers the capabilities it provides at construction
// time, so lookup is a direct indexed query instead of pointer-chasing
// through a chain of wrapped environments.
type Capability string

const (
	// ModelCapability is provided by layers exposing an explicit
	// transition structure (a Model)
	ModelCapability Capability = "Model"

	// RewardFunctionCapability is provided by layers carrying a
	// swappable reward hypothesis (a RewardFunctionProvider)
	RewardFunctionCapability Capability = "RewardFunction"

	// FeatureCapability is provided by layers mapping transitions to
	// feature vectors (a FeatureProvider)
	FeatureCapability Capability = "Features"
)

// RewardFunctionProvider is implemented by environment layers that
// carry a reward hypothesis which IRL algorithms swap during training.
type RewardFunctionProvider interface {
	RewardFunction() reward.Function
	UpdateRewardFunction(reward.Function)
}

// FeatureProvider is implemented by environment layers that map a
// transition (s, a, s') to a fixed-length feature vector.
type FeatureProvider interface {
	Features(state, action, nextState int) *mat.VecDense
	FeatureLength() int
}

// Registry indexes the capabilities provided by an environment and the
// layers wrapped around it. A base environment creates the Registry;
// wrapping layers register into the same Registry so that every layer
// sees every capability.
type Registry struct {
	providers map[Capability]interface{}
}

// NewRegistry returns an empty capability Registry
func NewRegistry() *Registry {
	return &Registry{providers: make(map[Capability]interface{})}
}

// Register records provider as the implementation of capability c,
// replacing any previous provider of c.
func (r *Registry) Register(c Capability, provider interface{}) {
	r.providers[c] = provider
}

// Lookup returns the provider of capability c and whether one is
// registered
func (r *Registry) Lookup(c Capability) (interface{}, bool) {
	p, ok := r.providers[c]
	return p, ok
}

// GetModel returns the transition Model registered with env. A missing
// Model is a model-consistency error: the caller required an explicit
// transition structure that no layer provides.
func GetModel(env Environment) (Model, error) {
	p, ok := env.Capabilities().Lookup(ModelCapability)
	if !ok {
		return nil, fmt.Errorf("getModel: environment provides no " +
			"transition model")
	}
	return p.(Model), nil
}

// GetRewardFunctionProvider returns the layer carrying the
// environment's reward hypothesis, or an error if no layer provides
// one.
func GetRewardFunctionProvider(env Environment) (RewardFunctionProvider, error) {
	p, ok := env.Capabilities().Lookup(RewardFunctionCapability)
	if !ok {
		return nil, fmt.Errorf("getRewardFunctionProvider: environment " +
			"provides no reward function")
	}
	return p.(RewardFunctionProvider), nil
}

// GetFeatureProvider returns the layer mapping transitions to feature
// vectors, or an error if no layer provides one.
func GetFeatureProvider(env Environment) (FeatureProvider, error) {
	p, ok := env.Capabilities().Lookup(FeatureCapability)
	if !ok {
		return nil, fmt.Errorf("getFeatureProvider: environment provides " +
			"no feature mapping")
	}
	return p.(FeatureProvider), nil
}
