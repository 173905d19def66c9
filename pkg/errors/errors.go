// Package errors provides the error and warning types used across tabreg.
// Every failure mode of the pipeline (unreadable data, encoder misuse,
// underdetermined fits, shape mismatches) has a dedicated type so callers
// can branch with errors.As instead of string matching. Constructors attach
// stack traces via cockroachdb/errors.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Warning handling
//
// ===========================================================================

var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("tabreg warning: %v\n", w)
	}
	// zerolog sink, installed lazily by pkg/log to avoid an import cycle.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler replaces the library-wide warning handler.
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc routes warnings to a zerolog-backed sink. When set it
// takes precedence over the plain handler.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a non-fatal warning, e.g. an undefined metric.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}
	if warningHandler != nil {
		warningHandler(w)
	}
}

// UndefinedMetricWarning is raised when a metric cannot be computed for the
// given inputs, e.g. R² over a constant target.
type UndefinedMetricWarning struct {
	Metric    string
	Condition string
	Result    float64 // the value reported in place of the metric
}

func (w *UndefinedMetricWarning) Error() string {
	return fmt.Sprintf("'%s' is ill-defined and being set to %f due to %s", w.Metric, w.Result, w.Condition)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *UndefinedMetricWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("metric", w.Metric).
		Str("condition", w.Condition).
		Float64("result", w.Result).
		Str("type", "UndefinedMetricWarning")
}

// NewUndefinedMetricWarning creates a new UndefinedMetricWarning.
func NewUndefinedMetricWarning(metric, condition string, result float64) *UndefinedMetricWarning {
	return &UndefinedMetricWarning{Metric: metric, Condition: condition, Result: result}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// LoadError reports an unreadable or malformed data source: a missing file,
// a header that does not satisfy the declared schema, inconsistent column
// counts, or unparseable numeric text.
type LoadError struct {
	Source string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tabreg: load %s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("tabreg: load %s: %s", e.Source, e.Reason)
}

func (e *LoadError) Unwrap() error { return e.Err }

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *LoadError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("source", e.Source).
		Str("reason", e.Reason).
		Str("type", "LoadError")
}

// NewLoadError creates a new LoadError with a stack trace.
func NewLoadError(source, reason string, err error) error {
	return errors.WithStack(&LoadError{Source: source, Reason: reason, Err: err})
}

// DataInsufficientError reports that no usable rows remain for an operation,
// e.g. cleaning removed every row, or a split left a partition empty.
type DataInsufficientError struct {
	Op      string
	Rows    int
	Needed  int
	Message string
}

func (e *DataInsufficientError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("tabreg: %s: insufficient data: %s (have %d rows, need %d)", e.Op, e.Message, e.Rows, e.Needed)
	}
	return fmt.Sprintf("tabreg: %s: insufficient data (have %d rows, need %d)", e.Op, e.Rows, e.Needed)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *DataInsufficientError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("rows", e.Rows).
		Int("needed", e.Needed).
		Str("type", "DataInsufficientError")
}

// NewDataInsufficientError creates a new DataInsufficientError with a stack trace.
func NewDataInsufficientError(op string, rows, needed int, message string) error {
	return errors.WithStack(&DataInsufficientError{Op: op, Rows: rows, Needed: needed, Message: message})
}

// UnknownCategoryError reports a categorical value that was not seen when
// the encoder was fitted.
type UnknownCategoryError struct {
	Column string
	Value  string
}

func (e *UnknownCategoryError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("tabreg: column %q: unknown category %q (not present at fit time)", e.Column, e.Value)
	}
	return fmt.Sprintf("tabreg: unknown category %q (not present at fit time)", e.Value)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *UnknownCategoryError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("column", e.Column).
		Str("value", e.Value).
		Str("type", "UnknownCategoryError")
}

// NewUnknownCategoryError creates a new UnknownCategoryError with a stack trace.
func NewUnknownCategoryError(column, value string) error {
	return errors.WithStack(&UnknownCategoryError{Column: column, Value: value})
}

// UnknownCodeError reports an integer code outside the range assigned by the
// encoder at fit time.
type UnknownCodeError struct {
	Column   string
	Code     int
	NumKnown int
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("tabreg: unknown code %d (encoder knows %d categories)", e.Code, e.NumKnown)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *UnknownCodeError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("column", e.Column).
		Int("code", e.Code).
		Int("num_known", e.NumKnown).
		Str("type", "UnknownCodeError")
}

// NewUnknownCodeError creates a new UnknownCodeError with a stack trace.
func NewUnknownCodeError(column string, code, numKnown int) error {
	return errors.WithStack(&UnknownCodeError{Column: column, Code: code, NumKnown: numKnown})
}

// UnderdeterminedError reports a fit attempted with fewer samples than the
// number of parameters to estimate. OLS needs at least nFeatures+1 rows for
// a unique solution.
type UnderdeterminedError struct {
	Op        string
	Samples   int
	NFeatures int
}

func (e *UnderdeterminedError) Error() string {
	return fmt.Sprintf("tabreg: %s: underdetermined system: %d samples for %d features (need at least %d)",
		e.Op, e.Samples, e.NFeatures, e.NFeatures+1)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *UnderdeterminedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("samples", e.Samples).
		Int("n_features", e.NFeatures).
		Str("type", "UnderdeterminedError")
}

// NewUnderdeterminedError creates a new UnderdeterminedError with a stack trace.
func NewUnderdeterminedError(op string, samples, nFeatures int) error {
	return errors.WithStack(&UnderdeterminedError{Op: op, Samples: samples, NFeatures: nFeatures})
}

// DimensionError reports an input whose dimensions differ from what the
// operation expects.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("tabreg: %s: dimension mismatch on axis %d (%s): expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("type", "DimensionError")
}

// NewDimensionError creates a new DimensionError with a stack trace.
func NewDimensionError(op string, expected, got, axis int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got, Axis: axis})
}

// NotFittedError reports Predict, Transform or similar called before Fit.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("tabreg: %s: not fitted yet, call Fit() before %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a new NotFittedError with a stack trace.
func NewNotFittedError(modelName, method string) error {
	return errors.WithStack(&NotFittedError{ModelName: modelName, Method: method})
}

// ValueError reports an argument whose value is unusable for the operation.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("tabreg: %s: %s", e.Op, e.Message)
}

// NewValueError creates a new ValueError with a stack trace.
func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

// ValidationError reports a configuration parameter that failed validation.
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("tabreg: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError creates a new ValidationError with a stack trace.
func NewValidationError(param, reason string, value interface{}) error {
	return errors.WithStack(&ValidationError{ParamName: param, Reason: reason, Value: value})
}

// ModelError is a general model failure wrapping an underlying cause.
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tabreg: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("tabreg: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error { return e.Err }

// NewModelError creates a new ModelError with a stack trace.
func NewModelError(op, kind string, err error) error {
	return errors.WithStack(&ModelError{Op: op, Kind: kind, Err: err})
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates err with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Sentinel errors
//
// ===========================================================================

var (
	// ErrEmptyData is returned when an operation receives no data at all.
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix is returned when the normal equations cannot be
	// solved because X^T X is singular.
	ErrSingularMatrix = New("singular matrix")
)
