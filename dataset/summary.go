package dataset

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/tabreg/tabreg/pkg/errors"
)

// Summary holds descriptive statistics for one numeric column.
type Summary struct {
	N      int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Describe computes descriptive statistics for a numeric column. The column
// must be free of missing values.
func (t *Table) Describe(column string) (Summary, error) {
	vals, err := t.NumericColumn(column)
	if err != nil {
		return Summary{}, err
	}
	if len(vals) == 0 {
		return Summary{}, errors.NewValueError("Table.Describe", "column "+column+" has no rows")
	}
	return Summary{
		N:      len(vals),
		Mean:   stat.Mean(vals, nil),
		StdDev: stat.StdDev(vals, nil),
		Min:    floats.Min(vals),
		Max:    floats.Max(vals),
	}, nil
}
