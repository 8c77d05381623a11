package reward

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Tabular is a reward function stored as an explicit table over its
// input domain. The default domain is the state only, in which case the
// table holds one entry per state.
type Tabular struct {
	parameters *mat.VecDense
	domain     Domain
}

// NewTabular returns a tabular reward function of the state only, with
// one table entry per state.
func NewTabular(values *mat.VecDense) *Tabular {
	return &Tabular{values, Domain{}}
}

// Reward looks up the reward of the input in the table. For a
// state-only domain the input's State field indexes the table.
func (t *Tabular) Reward(in Input) (float64, error) {
	if t.domain.ActionInDomain || t.domain.NextStateInDomain {
		return 0, fmt.Errorf("reward: tabular lookup over domains " +
			"including actions or next states is not supported")
	}
	if in.State < 0 || in.State >= t.parameters.Len() {
		return 0, fmt.Errorf("reward: state %d outside table of size %d",
			in.State, t.parameters.Len())
	}
	return t.parameters.AtVec(in.State), nil
}

// Parameters returns the reward table as a vector
func (t *Tabular) Parameters() *mat.VecDense {
	return t.parameters
}

// SetParameters replaces the reward table
func (t *Tabular) SetParameters(p *mat.VecDense) error {
	if p.Len() != t.parameters.Len() {
		return fmt.Errorf("reward: cannot set table of length %d on "+
			"function with table of length %d", p.Len(), t.parameters.Len())
	}
	t.parameters = p
	return nil
}

// Kind returns the variant tag of the function
func (t *Tabular) Kind() Kind {
	return KindTabular
}

// Domain declares which parts of a transition index the table
func (t *Tabular) Domain() Domain {
	return t.domain
}
