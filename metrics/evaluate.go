package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/tabreg/tabreg/pkg/errors"
)

// EvaluationResult holds the error metrics of one fit. When the actual
// values are constant R² has no defined value: R2 is NaN and R2Defined is
// false rather than a divide-by-zero artifact.
type EvaluationResult struct {
	MSE       float64
	R2        float64
	R2Defined bool
}

// Evaluate compares predictions against held-out actual values. Both
// vectors must be non-empty and of equal length.
func Evaluate(yPred, yTrue *mat.VecDense) (EvaluationResult, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return EvaluationResult{}, err
	}

	r2, err := R2Score(yTrue, yPred)
	if err != nil {
		if errors.Is(err, ErrUndefinedR2) {
			errors.Warn(errors.NewUndefinedMetricWarning("r2_score", "zero variance in actual values", math.NaN()))
			return EvaluationResult{MSE: mse, R2: math.NaN(), R2Defined: false}, nil
		}
		return EvaluationResult{}, err
	}

	return EvaluationResult{MSE: mse, R2: r2, R2Defined: true}, nil
}
