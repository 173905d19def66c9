// Package linear implements ordinary-least-squares linear regression on
// gonum matrices.
package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/tabreg/tabreg/core/model"
	"github.com/tabreg/tabreg/pkg/errors"
)

// Regression is a linear model fit by ordinary least squares over the
// normal equations. A successful Fit produces an immutable parameter set
// (weights plus intercept); fitting again replaces the set wholesale rather
// than mutating it. All arithmetic is float64 with no intermediate rounding.
type Regression struct {
	state *model.StateManager

	weights   *mat.VecDense // one weight per feature
	intercept float64
	nFeatures int
}

// NewRegression creates an unfitted Regression.
func NewRegression() *Regression {
	return &Regression{state: model.NewStateManager()}
}

// Fit estimates weights and intercept minimizing the summed squared
// residuals over (X, y), where X is n×p and y is an n×1 column vector.
// A unique OLS solution needs at least p+1 samples; fewer rows are an
// UnderdeterminedError. A rank-deficient system surfaces as
// ErrSingularMatrix.
func (r *Regression) Fit(X, y mat.Matrix) error {
	n, p := X.Dims()
	ny, cy := y.Dims()

	if n == 0 || p == 0 {
		return errors.NewModelError("Regression.Fit", "empty data", errors.ErrEmptyData)
	}
	if ny != n {
		return errors.NewDimensionError("Regression.Fit", n, ny, 0)
	}
	if cy != 1 {
		return errors.NewValueError("Regression.Fit", "y must be a column vector")
	}
	if n < p+1 {
		return errors.NewUnderdeterminedError("Regression.Fit", n, p)
	}

	// Prepend an all-ones column for the intercept term.
	Xb := mat.NewDense(n, p+1, nil)
	for i := 0; i < n; i++ {
		Xb.Set(i, 0, 1.0)
		for j := 0; j < p; j++ {
			Xb.Set(i, j+1, X.At(i, j))
		}
	}

	// Solve the normal equations: theta = (X^T X)^-1 X^T y.
	var XT mat.Dense
	XT.CloneFrom(Xb.T())

	var XTX mat.Dense
	XTX.Mul(&XT, Xb)

	var XTXInv mat.Dense
	if err := XTXInv.Inverse(&XTX); err != nil {
		return errors.NewModelError("Regression.Fit", "singular matrix", errors.ErrSingularMatrix)
	}

	yVec := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}

	var XTy mat.VecDense
	XTy.MulVec(&XT, yVec)

	theta := mat.NewVecDense(p+1, nil)
	theta.MulVec(&XTXInv, &XTy)

	weights := mat.NewVecDense(p, nil)
	for j := 0; j < p; j++ {
		weights.SetVec(j, theta.AtVec(j+1))
	}

	r.intercept = theta.AtVec(0)
	r.weights = weights
	r.nFeatures = p
	r.state.SetDimensions(p, n)
	r.state.SetFitted()
	return nil
}

// Predict computes dot(weights, x) + intercept for each row of X.
func (r *Regression) Predict(X mat.Matrix) (*mat.VecDense, error) {
	if err := r.state.RequireFitted("Regression", "Predict"); err != nil {
		return nil, err
	}

	n, p := X.Dims()
	if p != r.nFeatures {
		return nil, errors.NewDimensionError("Regression.Predict", r.nFeatures, p, 1)
	}

	preds := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		pred := r.intercept
		for j := 0; j < p; j++ {
			pred += X.At(i, j) * r.weights.AtVec(j)
		}
		preds.SetVec(i, pred)
	}
	return preds, nil
}

// PredictOne predicts the target for a single feature vector.
func (r *Regression) PredictOne(features []float64) (float64, error) {
	if err := r.state.RequireFitted("Regression", "PredictOne"); err != nil {
		return 0, err
	}
	if len(features) != r.nFeatures {
		return 0, errors.NewDimensionError("Regression.PredictOne", r.nFeatures, len(features), 1)
	}
	pred := r.intercept
	for j, x := range features {
		pred += x * r.weights.AtVec(j)
	}
	return pred, nil
}

// Weights returns a copy of the learned coefficients, or nil before Fit.
func (r *Regression) Weights() []float64 {
	if r.weights == nil {
		return nil
	}
	out := make([]float64, r.weights.Len())
	for i := range out {
		out[i] = r.weights.AtVec(i)
	}
	return out
}

// Intercept returns the learned intercept.
func (r *Regression) Intercept() float64 {
	return r.intercept
}

// NFeatures returns the feature width the model was trained on.
func (r *Regression) NFeatures() int {
	return r.nFeatures
}

// IsFitted returns whether Fit has completed successfully.
func (r *Regression) IsFitted() bool {
	return r.state.IsFitted()
}

// Score computes the coefficient of determination R² on (X, y).
func (r *Regression) Score(X, y mat.Matrix) (float64, error) {
	if err := r.state.RequireFitted("Regression", "Score"); err != nil {
		return 0, err
	}

	preds, err := r.Predict(X)
	if err != nil {
		return 0, err
	}

	n, _ := y.Dims()
	var yMean float64
	for i := 0; i < n; i++ {
		yMean += y.At(i, 0)
	}
	yMean /= float64(n)

	var tss, rss float64
	for i := 0; i < n; i++ {
		yTrue := y.At(i, 0)
		diff := yTrue - preds.AtVec(i)
		dev := yTrue - yMean
		rss += diff * diff
		tss += dev * dev
	}
	if tss == 0 {
		return 0, errors.NewValueError("Regression.Score", "total sum of squares is zero (constant target)")
	}
	return 1 - rss/tss, nil
}
