package mdp

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/kasakh/irl-benchmark/environment"
	"github.com/kasakh/irl-benchmark/environment/chainworld"
	"github.com/kasakh/irl-benchmark/environment/wrappers"
	"github.com/kasakh/irl-benchmark/reward"
	"github.com/kasakh/irl-benchmark/utils/matutils"
)

const tolerance = 1e-9

// newChain returns a slippery 4-state chain wrapped with one-hot
// features, with -0.1 step reward and 1.0 goal reward
func newChain(t *testing.T) environment.Environment {
	t.Helper()

	starter, err := chainworld.NewSingleStart(0, 4)
	if err != nil {
		t.Fatal(err)
	}
	task := chainworld.NewGoal(4, -0.1, 1.0)
	chain, _, err := chainworld.New(4, 0.2, task, 0.9, starter, 1)
	if err != nil {
		t.Fatal(err)
	}
	return wrappers.NewOneHotFeatures(chain)
}

func TestTransitionTensorRowsSumToOne(t *testing.T) {
	env := newChain(t)
	model, err := environment.GetModel(env)
	if err != nil {
		t.Fatal(err)
	}

	tensor := NewTransitionTensor(model)
	if tensor.NStates() != model.NStates()+1 {
		t.Errorf("expected %d states with absorbing state, got %d",
			model.NStates()+1, tensor.NStates())
	}

	for s := 0; s < tensor.NStates(); s++ {
		for a := 0; a < tensor.NActions(); a++ {
			sum := 0.0
			for next := 0; next < tensor.NStates(); next++ {
				sum += tensor.At(s, a, next)
			}
			if math.Abs(sum-1.0) > tolerance {
				t.Errorf("row (%d, %d) sums to %v, expected 1", s, a, sum)
			}
		}
	}
}

func TestTransitionTensorAbsorbingState(t *testing.T) {
	env := newChain(t)
	model, err := environment.GetModel(env)
	if err != nil {
		t.Fatal(err)
	}

	tensor := NewTransitionTensor(model)
	absorbing := tensor.AbsorbingState()

	// The absorbing state only reaches itself under every action
	for a := 0; a < tensor.NActions(); a++ {
		if p := tensor.At(absorbing, a, absorbing); p != 1.0 {
			t.Errorf("absorbing self-loop under action %d is %v, expected 1",
				a, p)
		}
	}

	// The chain's terminal state is rewired to the absorbing state
	terminal := model.NStates() - 1
	for a := 0; a < tensor.NActions(); a++ {
		if p := tensor.At(terminal, a, absorbing); p != 1.0 {
			t.Errorf("terminal state should map to absorbing state with "+
				"probability 1 under action %d, got %v", a, p)
		}
		if p := tensor.At(terminal, a, terminal); p != 0.0 {
			t.Errorf("terminal self-loop should be rewired away, got %v", p)
		}
	}
}

func TestTransitionTensorDenseStorage(t *testing.T) {
	env := newChain(t)
	model, err := environment.GetModel(env)
	if err != nil {
		t.Fatal(err)
	}

	tr := NewTransitionTensor(model)
	flat := tr.Tensor()

	shape := flat.Shape()
	if len(shape) != 3 || shape[0] != tr.NStates() ||
		shape[1] != tr.NActions() || shape[2] != tr.NStates() {
		t.Fatalf("expected dense shape (%d, %d, %d), got %v",
			tr.NStates(), tr.NActions(), tr.NStates(), shape)
	}

	// The dense tensor is the live storage: reads through its own
	// indexing agree with At at every coordinate
	for s := 0; s < tr.NStates(); s++ {
		for a := 0; a < tr.NActions(); a++ {
			for next := 0; next < tr.NStates(); next++ {
				v, err := flat.At(s, a, next)
				if err != nil {
					t.Fatal(err)
				}
				if v.(float64) != tr.At(s, a, next) {
					t.Errorf("dense tensor reads %v at (%d, %d, %d), At "+
						"reads %v", v, s, a, next, tr.At(s, a, next))
				}
			}
		}
	}
}

func TestRewardMatrixNativeRewards(t *testing.T) {
	env := newChain(t)

	rewards, err := NewRewardMatrix(env)
	if err != nil {
		t.Fatal(err)
	}

	rows, cols := rewards.Dims()
	if rows != 5 || cols != 2 {
		t.Fatalf("expected shape (5, 2), got (%d, %d)", rows, cols)
	}

	// From state 2, moving right reaches the goal with probability 0.8
	// for reward 1 and slips for reward -0.1
	want := 0.8*1.0 + 0.2*(-0.1)
	if got := rewards.At(2, chainworld.Right); math.Abs(got-want) > tolerance {
		t.Errorf("expected reward %v for (2, Right), got %v", want, got)
	}

	// The terminal state's self-loop is rewired into the absorbing
	// state and must carry no reward
	for a := 0; a < cols; a++ {
		if got := rewards.At(3, a); got != 0 {
			t.Errorf("terminal state reward should be 0, got %v", got)
		}
		if got := rewards.At(4, a); got != 0 {
			t.Errorf("absorbing state reward should be 0, got %v", got)
		}
	}
}

func TestRewardMatrixFeatureBasedRederivation(t *testing.T) {
	env := newChain(t)

	// Hypothesis assigning reward i to state i
	theta := mat.NewVecDense(4, []float64{0, 1, 2, 3})
	wrapped := wrappers.NewRewardWrapper(env, reward.NewFeatureBased(theta))

	rewards, err := NewRewardMatrix(wrapped)
	if err != nil {
		t.Fatal(err)
	}

	// From state 0, moving right lands in state 1 (reward 1) with
	// probability 0.8 and stays in state 0 (reward 0) otherwise
	want := 0.8 * 1.0
	if got := rewards.At(0, chainworld.Right); math.Abs(got-want) > tolerance {
		t.Errorf("expected re-derived reward %v, got %v", want, got)
	}

	// The rewired terminal self-loop enters the absorbing state, which
	// must not leak the hypothesis's reward for state 3
	for a := 0; a < 2; a++ {
		if got := rewards.At(3, a); got != 0 {
			t.Errorf("transition into absorbing state should have reward "+
				"0, got %v", got)
		}
	}
}

func TestRewardMatrixTabularRederivation(t *testing.T) {
	env := newChain(t)

	table := matutils.OneHot(3, 4)
	wrapped := wrappers.NewRewardWrapper(env, reward.NewTabular(table))

	rewards, err := NewRewardMatrix(wrapped)
	if err != nil {
		t.Fatal(err)
	}

	// Only transitions into state 3 carry reward under the table
	want := 0.8 * 1.0
	if got := rewards.At(2, chainworld.Right); math.Abs(got-want) > tolerance {
		t.Errorf("expected re-derived reward %v, got %v", want, got)
	}
	if got := rewards.At(0, chainworld.Right); got != 0 {
		t.Errorf("expected reward 0 for transition into state 1, got %v", got)
	}
}

// bogusRewardFunction has a variant tag no consumer recognizes
type bogusRewardFunction struct {
	*reward.Tabular
}

func (b bogusRewardFunction) Kind() reward.Kind {
	return reward.Kind("Bogus")
}

func TestRewardMatrixUnrecognizedVariant(t *testing.T) {
	env := newChain(t)

	fn := bogusRewardFunction{reward.NewTabular(mat.NewVecDense(4, nil))}
	wrapped := wrappers.NewRewardWrapper(env, fn)

	if _, err := NewRewardMatrix(wrapped); err == nil {
		t.Error("expected an error for an unrecognized reward function " +
			"variant")
	}
}
