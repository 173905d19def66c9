// Package pipeline orchestrates the full regression flow: load, clean,
// encode categorical features, split, fit, evaluate, and serve single
// predictions through the same encoders used at training time.
package pipeline

import (
	"io"

	"gonum.org/v1/gonum/mat"

	"github.com/tabreg/tabreg/dataset"
	"github.com/tabreg/tabreg/linear"
	"github.com/tabreg/tabreg/metrics"
	"github.com/tabreg/tabreg/pkg/errors"
	"github.com/tabreg/tabreg/preprocessing"
)

// Config declares the dataset schema and the experiment parameters. The
// feature order in FeatureColumns is the feature order of every vector the
// model sees; it is fixed for the lifetime of the pipeline.
type Config struct {
	// Schema declares the columns expected in the data source.
	Schema dataset.Schema

	// FeatureColumns is the ordered list of columns used as features.
	// Categorical columns are label-encoded before reaching the model.
	FeatureColumns []string

	// TargetColumn is the numeric column being predicted.
	TargetColumn string

	// TestFraction is the share of rows held out for evaluation,
	// strictly between 0 and 1.
	TestFraction float64

	// Seed fixes the shuffle of the train/test split. Identical data,
	// seed and fraction always produce identical results.
	Seed int64
}

func (c Config) validate() error {
	if len(c.FeatureColumns) == 0 {
		return errors.NewValidationError("FeatureColumns", "at least one feature column is required", c.FeatureColumns)
	}
	for _, name := range c.FeatureColumns {
		if _, ok := c.Schema.Column(name); !ok {
			return errors.NewValidationError("FeatureColumns", "column not declared in schema", name)
		}
		if name == c.TargetColumn {
			return errors.NewValidationError("FeatureColumns", "target column cannot be a feature", name)
		}
	}
	target, ok := c.Schema.Column(c.TargetColumn)
	if !ok {
		return errors.NewValidationError("TargetColumn", "column not declared in schema", c.TargetColumn)
	}
	if target.Kind != dataset.Numeric {
		return errors.NewValidationError("TargetColumn", "target column must be numeric", c.TargetColumn)
	}
	if c.TestFraction <= 0 || c.TestFraction >= 1 {
		return errors.NewValidationError("TestFraction", "must be strictly between 0 and 1", c.TestFraction)
	}
	return nil
}

// Pipeline owns one table, one encoder per categorical feature, and one
// fitted model at a time. Instances are not safe for concurrent use; run
// parallel experiments on independent Pipeline values.
type Pipeline struct {
	cfg Config

	table    *dataset.Table
	encoders map[string]*preprocessing.LabelEncoder
	model    *linear.Regression
	result   metrics.EvaluationResult
	fitted   bool
}

// New validates cfg and creates a Pipeline.
func New(cfg Config) (*Pipeline, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Pipeline{cfg: cfg}, nil
}

// Run reads CSV data from r and executes the full flow. See RunTable.
func (p *Pipeline) Run(r io.Reader) (metrics.EvaluationResult, error) {
	t, err := dataset.Load(r, p.cfg.Schema)
	if err != nil {
		return metrics.EvaluationResult{}, err
	}
	return p.RunTable(t)
}

// RunFile reads a CSV file and executes the full flow. See RunTable.
func (p *Pipeline) RunFile(path string) (metrics.EvaluationResult, error) {
	t, err := dataset.LoadFile(path, p.cfg.Schema)
	if err != nil {
		return metrics.EvaluationResult{}, err
	}
	return p.RunTable(t)
}

// RunTable executes clean → fit encoders → split → fit → predict →
// evaluate on the given table, retaining the cleaned table, the encoders
// and the fitted model for later PredictOne calls. A failed run leaves the
// pipeline in its previous state.
func (p *Pipeline) RunTable(t *dataset.Table) (metrics.EvaluationResult, error) {
	clean, err := t.DropMissing()
	if err != nil {
		return metrics.EvaluationResult{}, err
	}

	encoders, err := fitEncoders(p.cfg, clean)
	if err != nil {
		return metrics.EvaluationResult{}, err
	}

	train, test, err := clean.Split(p.cfg.TestFraction, p.cfg.Seed)
	if err != nil {
		return metrics.EvaluationResult{}, err
	}

	XTrain, err := featureMatrix(p.cfg, train, encoders)
	if err != nil {
		return metrics.EvaluationResult{}, err
	}
	yTrain, err := targetVector(p.cfg, train)
	if err != nil {
		return metrics.EvaluationResult{}, err
	}

	reg := linear.NewRegression()
	if err := reg.Fit(XTrain, yTrain); err != nil {
		return metrics.EvaluationResult{}, err
	}

	XTest, err := featureMatrix(p.cfg, test, encoders)
	if err != nil {
		return metrics.EvaluationResult{}, err
	}
	yTest, err := targetVector(p.cfg, test)
	if err != nil {
		return metrics.EvaluationResult{}, err
	}

	preds, err := reg.Predict(XTest)
	if err != nil {
		return metrics.EvaluationResult{}, err
	}

	result, err := metrics.Evaluate(preds, yTest)
	if err != nil {
		return metrics.EvaluationResult{}, err
	}

	p.table = clean
	p.encoders = encoders
	p.model = reg
	p.result = result
	p.fitted = true
	return result, nil
}

// PredictOne predicts the target for one raw input row, a map from feature
// column name to value: float64 (or int) for numeric columns, string for
// categorical ones. The encoders fitted during the run are applied; an
// unseen category fails with UnknownCategoryError and mutates nothing.
func (p *Pipeline) PredictOne(input map[string]interface{}) (float64, error) {
	if !p.fitted {
		return 0, errors.NewNotFittedError("Pipeline", "PredictOne")
	}

	features := make([]float64, len(p.cfg.FeatureColumns))
	for i, name := range p.cfg.FeatureColumns {
		raw, ok := input[name]
		if !ok {
			return 0, errors.NewValueError("Pipeline.PredictOne", "missing input for feature column "+name)
		}

		spec, _ := p.cfg.Schema.Column(name)
		switch spec.Kind {
		case dataset.Numeric:
			switch v := raw.(type) {
			case float64:
				features[i] = v
			case int:
				features[i] = float64(v)
			default:
				return 0, errors.NewValueError("Pipeline.PredictOne", "feature column "+name+" expects a number")
			}
		case dataset.Categorical:
			s, ok := raw.(string)
			if !ok {
				return 0, errors.NewValueError("Pipeline.PredictOne", "feature column "+name+" expects a string")
			}
			code, err := p.encoders[name].Encode(s)
			if err != nil {
				return 0, err
			}
			features[i] = float64(code)
		}
	}

	return p.model.PredictOne(features)
}

// Model returns the fitted regression model, or nil before a successful run.
func (p *Pipeline) Model() *linear.Regression {
	return p.model
}

// Encoder returns the fitted encoder for a categorical feature column.
func (p *Pipeline) Encoder(column string) (*preprocessing.LabelEncoder, bool) {
	enc, ok := p.encoders[column]
	return enc, ok
}

// Result returns the evaluation of the last successful run.
func (p *Pipeline) Result() (metrics.EvaluationResult, bool) {
	return p.result, p.fitted
}

// Table returns the cleaned table of the last successful run.
func (p *Pipeline) Table() *dataset.Table {
	return p.table
}

func fitEncoders(cfg Config, t *dataset.Table) (map[string]*preprocessing.LabelEncoder, error) {
	encoders := make(map[string]*preprocessing.LabelEncoder)
	for _, name := range cfg.FeatureColumns {
		spec, _ := cfg.Schema.Column(name)
		if spec.Kind != dataset.Categorical {
			continue
		}
		values, err := t.StringColumn(name)
		if err != nil {
			return nil, err
		}
		enc := preprocessing.NewLabelEncoder(name)
		if err := enc.Fit(values); err != nil {
			return nil, err
		}
		encoders[name] = enc
	}
	return encoders, nil
}

func featureMatrix(cfg Config, t *dataset.Table, encoders map[string]*preprocessing.LabelEncoder) (*mat.Dense, error) {
	n := t.Len()
	cols := make([][]float64, len(cfg.FeatureColumns))
	for i, name := range cfg.FeatureColumns {
		spec, _ := cfg.Schema.Column(name)
		switch spec.Kind {
		case dataset.Numeric:
			vals, err := t.NumericColumn(name)
			if err != nil {
				return nil, err
			}
			cols[i] = vals
		case dataset.Categorical:
			raw, err := t.StringColumn(name)
			if err != nil {
				return nil, err
			}
			vals, err := encoders[name].Transform(raw)
			if err != nil {
				return nil, err
			}
			cols[i] = vals
		}
	}

	X := mat.NewDense(n, len(cols), nil)
	for j, col := range cols {
		for i, v := range col {
			X.Set(i, j, v)
		}
	}
	return X, nil
}

func targetVector(cfg Config, t *dataset.Table) (*mat.VecDense, error) {
	vals, err := t.NumericColumn(cfg.TargetColumn)
	if err != nil {
		return nil, err
	}
	return mat.NewVecDense(len(vals), vals), nil
}
