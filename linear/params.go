package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/tabreg/tabreg/pkg/errors"
)

// Params is the gob-friendly snapshot of a fitted Regression, used with
// core/model.Save and Load to reuse a model across runs.
type Params struct {
	Weights   []float64
	Intercept float64
	NFeatures int
}

// Params returns the fitted parameter snapshot.
func (r *Regression) Params() (Params, error) {
	if err := r.state.RequireFitted("Regression", "Params"); err != nil {
		return Params{}, err
	}
	return Params{
		Weights:   r.Weights(),
		Intercept: r.intercept,
		NFeatures: r.nFeatures,
	}, nil
}

// SetParams restores a Regression from a snapshot, marking it fitted.
func (r *Regression) SetParams(p Params) error {
	if p.NFeatures <= 0 || len(p.Weights) != p.NFeatures {
		return errors.NewValidationError("params", "weight count must equal NFeatures", p)
	}
	r.weights = mat.NewVecDense(p.NFeatures, append([]float64(nil), p.Weights...))
	r.intercept = p.Intercept
	r.nFeatures = p.NFeatures
	r.state.SetDimensions(p.NFeatures, 0)
	r.state.SetFitted()
	return nil
}
