package reward

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestFeatureBasedReward(t *testing.T) {
	theta := mat.NewVecDense(3, []float64{1, 2, 3})
	fn := NewFeatureBased(theta)

	r, err := fn.Reward(Input{
		Features: mat.NewVecDense(3, []float64{0, 1, 0}),
	})
	if err != nil {
		t.Fatal(err)
	}
	if r != 2 {
		t.Errorf("expected reward 2, got %v", r)
	}

	if _, err := fn.Reward(Input{}); err == nil {
		t.Error("expected an error for a missing feature vector")
	}
	if _, err := fn.Reward(Input{
		Features: mat.NewVecDense(2, nil),
	}); err == nil {
		t.Error("expected an error for mismatched feature length")
	}
}

func TestFeatureBasedSharesParameters(t *testing.T) {
	theta := mat.NewVecDense(2, []float64{0, 0})
	fn := NewFeatureBased(theta)

	// In-place updates through the original vector must be visible
	theta.SetVec(0, 4)
	r, err := fn.Reward(Input{
		Features: mat.NewVecDense(2, []float64{1, 0}),
	})
	if err != nil {
		t.Fatal(err)
	}
	if r != 4 {
		t.Errorf("expected reward 4 after parameter update, got %v", r)
	}
}

func TestNewRandomFeatureBased(t *testing.T) {
	a := NewRandomFeatureBased(4, 11)
	b := NewRandomFeatureBased(4, 11)

	for i := 0; i < 4; i++ {
		v := a.Parameters().AtVec(i)
		if v < 0 || v >= 1 {
			t.Errorf("parameter %d = %v outside [0, 1)", i, v)
		}
		if v != b.Parameters().AtVec(i) {
			t.Errorf("same seed should give same parameters at %d", i)
		}
	}
}

func TestTabularReward(t *testing.T) {
	fn := NewTabular(mat.NewVecDense(3, []float64{0, 0, 7}))

	r, err := fn.Reward(Input{State: 2})
	if err != nil {
		t.Fatal(err)
	}
	if r != 7 {
		t.Errorf("expected reward 7, got %v", r)
	}

	if _, err := fn.Reward(Input{State: 3}); err == nil {
		t.Error("expected an error for a state outside the table")
	}
}

func TestKinds(t *testing.T) {
	if k := NewFeatureBased(mat.NewVecDense(1, nil)).Kind(); k != KindFeatureBased {
		t.Errorf("expected %q, got %q", KindFeatureBased, k)
	}
	if k := NewTabular(mat.NewVecDense(1, nil)).Kind(); k != KindTabular {
		t.Errorf("expected %q, got %q", KindTabular, k)
	}
}
