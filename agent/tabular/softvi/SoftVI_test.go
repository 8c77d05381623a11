package softvi

import (
	"math"
	"testing"

	"github.com/kasakh/irl-benchmark/environment"
	"github.com/kasakh/irl-benchmark/environment/chainworld"
)

func newChain(t *testing.T, nStates int) environment.Environment {
	t.Helper()

	starter, err := chainworld.NewSingleStart(0, nStates)
	if err != nil {
		t.Fatal(err)
	}
	task := chainworld.NewGoal(nStates, -0.1, 1.0)
	chain, _, err := chainworld.New(nStates, 0, task, 0.9, starter, 1)
	if err != nil {
		t.Fatal(err)
	}
	return chain
}

func TestPolicyRowsAreDistributions(t *testing.T) {
	solver, err := New(newChain(t, 4), NewConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := solver.Train(50); err != nil {
		t.Fatal(err)
	}

	policy := solver.PolicyArray()
	rows, cols := policy.Dims()
	if rows != 5 || cols != 2 {
		t.Fatalf("expected policy shape (5, 2), got (%d, %d)", rows, cols)
	}

	for s := 0; s < rows; s++ {
		sum := 0.0
		for a := 0; a < cols; a++ {
			p := policy.At(s, a)
			if p < 0 {
				t.Errorf("policy(%d, %d) = %v is negative", s, a, p)
			}
			sum += p
		}
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("policy row %d sums to %v, expected 1", s, sum)
		}
	}
}

func TestPolicyPrefersRewardingAction(t *testing.T) {
	solver, err := New(newChain(t, 3), NewConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := solver.Train(100); err != nil {
		t.Fatal(err)
	}

	// Moving right from the state next to the goal earns the goal
	// reward, so the Boltzmann policy must favor it
	policy := solver.PolicyArray()
	if policy.At(1, chainworld.Right) <= policy.At(1, chainworld.Left) {
		t.Errorf("expected Right to be preferred next to the goal, got "+
			"%v vs %v", policy.At(1, chainworld.Right),
			policy.At(1, chainworld.Left))
	}
}

func TestLowerTemperatureSharpensPolicy(t *testing.T) {
	soft, err := New(newChain(t, 3), Config{Gamma: 0.9, Temperature: 1.0})
	if err != nil {
		t.Fatal(err)
	}
	if err := soft.Train(100); err != nil {
		t.Fatal(err)
	}

	sharp, err := New(newChain(t, 3), Config{Gamma: 0.9, Temperature: 0.1})
	if err != nil {
		t.Fatal(err)
	}
	if err := sharp.Train(100); err != nil {
		t.Fatal(err)
	}

	softP := soft.PolicyArray().At(1, chainworld.Right)
	sharpP := sharp.PolicyArray().At(1, chainworld.Right)
	if sharpP <= softP {
		t.Errorf("expected a colder policy to be greedier: %v vs %v",
			sharpP, softP)
	}
}

func TestFactoryValidatesConfig(t *testing.T) {
	env := newChain(t, 3)

	solver, err := NewConfig().Factory()(env)
	if err != nil {
		t.Fatalf("valid config should create a solver: %v", err)
	}
	if solver == nil {
		t.Fatal("expected a solver, got nil")
	}

	badFactory := Config{Gamma: 0.9, Temperature: -1}.Factory()
	if _, err := badFactory(env); err == nil {
		t.Error("expected an error creating a solver from an invalid config")
	}
}

func TestConfigValidate(t *testing.T) {
	if err := NewConfig().Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}

	invalid := []Config{
		{Gamma: 0, Temperature: 1},
		{Gamma: 1.1, Temperature: 1},
		{Gamma: 0.9, Temperature: 0},
	}
	for i, config := range invalid {
		if err := config.Validate(); err == nil {
			t.Errorf("config %d should be invalid", i)
		}
	}
}
