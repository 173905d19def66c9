package linear

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/tabreg/tabreg/pkg/errors"
)

func TestFitExactLine(t *testing.T) {
	// y = 2x + 1 exactly.
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{3, 5, 7, 9})

	reg := NewRegression()
	if err := reg.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	weights := reg.Weights()
	if len(weights) != 1 {
		t.Fatalf("Weights() len = %d, want 1", len(weights))
	}
	if math.Abs(weights[0]-2.0) > 1e-8 {
		t.Errorf("weight = %v, want 2", weights[0])
	}
	if math.Abs(reg.Intercept()-1.0) > 1e-8 {
		t.Errorf("intercept = %v, want 1", reg.Intercept())
	}

	preds, err := reg.Predict(mat.NewDense(2, 1, []float64{5, 10}))
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if math.Abs(preds.AtVec(0)-11.0) > 1e-8 {
		t.Errorf("Predict(5) = %v, want 11", preds.AtVec(0))
	}
	if math.Abs(preds.AtVec(1)-21.0) > 1e-8 {
		t.Errorf("Predict(10) = %v, want 21", preds.AtVec(1))
	}
}

// The fitted weights must minimize the training sum of squared residuals:
// perturbing them in any direction cannot do better.
func TestFitMinimizesSquaredResiduals(t *testing.T) {
	X := mat.NewDense(5, 1, []float64{1.0, 2.0, 3.0, 4.0, 5.0})
	y := mat.NewDense(5, 1, []float64{45000, 50000, 60000, 65000, 70000})

	reg := NewRegression()
	if err := reg.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	rss := func(w, b float64) float64 {
		var sum float64
		for i := 0; i < 5; i++ {
			resid := y.At(i, 0) - (w*X.At(i, 0) + b)
			sum += resid * resid
		}
		return sum
	}

	w0 := reg.Weights()[0]
	b0 := reg.Intercept()
	best := rss(w0, b0)

	perturbations := []struct{ dw, db float64 }{
		{1.0, 0}, {-1.0, 0}, {0, 500}, {0, -500},
		{10, 100}, {-10, -100}, {0.5, -250},
	}
	for _, p := range perturbations {
		if got := rss(w0+p.dw, b0+p.db); got < best {
			t.Errorf("perturbed weights (dw=%v, db=%v) give rss %v < fitted rss %v", p.dw, p.db, got, best)
		}
	}
}

func TestPredictSalaryScenario(t *testing.T) {
	// Experience/salary pairs; the prediction at 5.0 years must fall
	// strictly inside the training target range and land nearer the top.
	X := mat.NewDense(5, 1, []float64{1.0, 2.0, 3.0, 4.0, 5.0})
	y := mat.NewDense(5, 1, []float64{45000, 50000, 60000, 65000, 70000})

	reg := NewRegression()
	if err := reg.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	pred, err := reg.PredictOne([]float64{5.0})
	if err != nil {
		t.Fatalf("PredictOne() error = %v", err)
	}
	if pred <= 45000 || pred >= 70000 {
		t.Fatalf("PredictOne(5.0) = %v, want strictly between 45000 and 70000", pred)
	}
	if math.Abs(pred-70000) >= math.Abs(pred-45000) {
		t.Errorf("PredictOne(5.0) = %v, want closer to 70000 than to 45000", pred)
	}
}

func TestFitUnderdetermined(t *testing.T) {
	// Two features but only two samples: fewer than nFeatures+1.
	X := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	y := mat.NewDense(2, 1, []float64{1, 2})

	err := NewRegression().Fit(X, y)
	if err == nil {
		t.Fatal("Fit() on underdetermined system: expected error, got nil")
	}
	var underdetermined *errors.UnderdeterminedError
	if !errors.As(err, &underdetermined) {
		t.Errorf("Fit() error = %v, want UnderdeterminedError", err)
	}
}

func TestFitDimensionMismatch(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewDense(2, 1, []float64{1, 2})

	err := NewRegression().Fit(X, y)
	if err == nil {
		t.Fatal("Fit() with mismatched rows: expected error, got nil")
	}
	var dim *errors.DimensionError
	if !errors.As(err, &dim) {
		t.Errorf("Fit() error = %v, want DimensionError", err)
	}
}

func TestPredictWidthMismatch(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewDense(3, 1, []float64{2, 4, 6})

	reg := NewRegression()
	if err := reg.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	_, err := reg.Predict(mat.NewDense(1, 2, []float64{1, 2}))
	if err == nil {
		t.Fatal("Predict() with wrong feature width: expected error, got nil")
	}
	var dim *errors.DimensionError
	if !errors.As(err, &dim) {
		t.Errorf("Predict() error = %v, want DimensionError", err)
	}
}

func TestPredictNotFitted(t *testing.T) {
	_, err := NewRegression().Predict(mat.NewDense(1, 1, []float64{1}))
	if err == nil {
		t.Fatal("Predict() before Fit(): expected error, got nil")
	}
	var notFitted *errors.NotFittedError
	if !errors.As(err, &notFitted) {
		t.Errorf("Predict() error = %v, want NotFittedError", err)
	}
}

func TestRefitReplacesParameters(t *testing.T) {
	reg := NewRegression()

	X1 := mat.NewDense(3, 1, []float64{1, 2, 3})
	y1 := mat.NewDense(3, 1, []float64{2, 4, 6})
	if err := reg.Fit(X1, y1); err != nil {
		t.Fatalf("first Fit() error = %v", err)
	}
	first := reg.Weights()[0]

	X2 := mat.NewDense(3, 1, []float64{1, 2, 3})
	y2 := mat.NewDense(3, 1, []float64{3, 6, 9})
	if err := reg.Fit(X2, y2); err != nil {
		t.Fatalf("second Fit() error = %v", err)
	}
	second := reg.Weights()[0]

	if math.Abs(first-2.0) > 1e-8 || math.Abs(second-3.0) > 1e-8 {
		t.Errorf("weights = %v then %v, want 2 then 3", first, second)
	}
}

func TestScore(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{3, 5, 7, 9})

	reg := NewRegression()
	if err := reg.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	r2, err := reg.Score(X, y)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if math.Abs(r2-1.0) > 1e-8 {
		t.Errorf("Score() = %v, want 1 on exact data", r2)
	}
}
