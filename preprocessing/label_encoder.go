// Package preprocessing provides feature transformers applied between the
// raw table and the regression model.
package preprocessing

import (
	"github.com/tabreg/tabreg/core/model"
	"github.com/tabreg/tabreg/pkg/errors"
)

// LabelEncoder maps categorical string values to stable integer codes and
// back. Codes are assigned in order of first appearance during Fit and never
// change afterwards: the encoder is fitted once on training data and reused
// unchanged at prediction time, so a trained model's feature semantics stay
// intact. Values unseen at fit time are an error, never a silent new code.
type LabelEncoder struct {
	state *model.StateManager

	// Column is an optional column name, included in errors for context.
	Column string

	classes []string       // code -> label, in first-appearance order
	index   map[string]int // label -> code
}

// NewLabelEncoder creates an unfitted LabelEncoder. column may be empty; it
// is only used to annotate errors.
func NewLabelEncoder(column string) *LabelEncoder {
	return &LabelEncoder{
		state:  model.NewStateManager(),
		Column: column,
	}
}

// Fit assigns each distinct value in values a code in order of first
// appearance. Deterministic for a given input order. Fitting again discards
// the previous assignment entirely.
func (le *LabelEncoder) Fit(values []string) error {
	if len(values) == 0 {
		return errors.NewValueError("LabelEncoder.Fit", "no values to fit")
	}

	classes := make([]string, 0)
	index := make(map[string]int)
	for _, v := range values {
		if _, seen := index[v]; !seen {
			index[v] = len(classes)
			classes = append(classes, v)
		}
	}

	le.classes = classes
	le.index = index
	le.state.SetDimensions(1, len(values))
	le.state.SetFitted()
	return nil
}

// Encode returns the code assigned to value at fit time. An unseen value is
// an UnknownCategoryError; the encoder's assignment is left untouched.
func (le *LabelEncoder) Encode(value string) (int, error) {
	if err := le.state.RequireFitted("LabelEncoder", "Encode"); err != nil {
		return 0, err
	}
	code, ok := le.index[value]
	if !ok {
		return 0, errors.NewUnknownCategoryError(le.Column, value)
	}
	return code, nil
}

// Decode returns the original string for a code assigned at fit time.
func (le *LabelEncoder) Decode(code int) (string, error) {
	if err := le.state.RequireFitted("LabelEncoder", "Decode"); err != nil {
		return "", err
	}
	if code < 0 || code >= len(le.classes) {
		return "", errors.NewUnknownCodeError(le.Column, code, len(le.classes))
	}
	return le.classes[code], nil
}

// Transform encodes a whole column into float64 codes suitable for a
// feature matrix. Fails on the first unseen value.
func (le *LabelEncoder) Transform(values []string) ([]float64, error) {
	if err := le.state.RequireFitted("LabelEncoder", "Transform"); err != nil {
		return nil, err
	}
	out := make([]float64, len(values))
	for i, v := range values {
		code, err := le.Encode(v)
		if err != nil {
			return nil, err
		}
		out[i] = float64(code)
	}
	return out, nil
}

// Classes returns the fitted labels in code order. The returned slice is a
// copy.
func (le *LabelEncoder) Classes() []string {
	out := make([]string, len(le.classes))
	copy(out, le.classes)
	return out
}

// IsFitted returns whether Fit has been called.
func (le *LabelEncoder) IsFitted() bool {
	return le.state.IsFitted()
}
