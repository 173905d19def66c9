// Package dataset provides the in-memory Table that feeds the regression
// pipeline: schema-validated CSV loading, missing-value removal, and
// deterministic train/test splitting.
package dataset

import (
	"github.com/tabreg/tabreg/pkg/errors"
)

// Kind classifies a column as numeric or categorical.
type Kind int

const (
	// Numeric columns hold float64 values.
	Numeric Kind = iota
	// Categorical columns hold string labels.
	Categorical
)

// ColumnSpec declares a column's name and kind.
type ColumnSpec struct {
	Name string
	Kind Kind
}

// Schema declares the columns a table must provide, in order.
type Schema struct {
	Columns []ColumnSpec
}

// Index returns the position of the named column.
func (s Schema) Index(name string) (int, bool) {
	for i, c := range s.Columns {
		if c.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Column returns the spec of the named column.
func (s Schema) Column(name string) (ColumnSpec, bool) {
	if i, ok := s.Index(name); ok {
		return s.Columns[i], true
	}
	return ColumnSpec{}, false
}

func (s Schema) validate() error {
	if len(s.Columns) == 0 {
		return errors.NewValidationError("schema", "must declare at least one column", s)
	}
	seen := make(map[string]struct{}, len(s.Columns))
	for _, c := range s.Columns {
		if c.Name == "" {
			return errors.NewValidationError("schema", "column name must not be empty", s)
		}
		if _, dup := seen[c.Name]; dup {
			return errors.NewValidationError("schema", "duplicate column name", c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	return nil
}

// Value is a single cell. A missing cell has Missing set and both payload
// fields zero.
type Value struct {
	Num     float64
	Str     string
	Missing bool
}

// NumValue returns a numeric cell.
func NumValue(v float64) Value { return Value{Num: v} }

// StrValue returns a categorical cell.
func StrValue(s string) Value { return Value{Str: s} }

// MissingValue returns a missing cell.
func MissingValue() Value { return Value{Missing: true} }

// Table is an ordered sequence of rows sharing one schema. Tables are
// treated as immutable once built: operations that change row membership
// return a new Table.
type Table struct {
	schema Schema
	rows   [][]Value
}

// New builds a table from rows already matching the schema's column order.
// Every row must have exactly one value per schema column.
func New(schema Schema, rows [][]Value) (*Table, error) {
	if err := schema.validate(); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if len(row) != len(schema.Columns) {
			return nil, errors.NewDimensionError("dataset.New", len(schema.Columns), len(row), 1)
		}
	}
	return &Table{schema: schema, rows: rows}, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Schema returns the table's schema.
func (t *Table) Schema() Schema { return t.schema }

// Value returns the cell at row i in the named column.
func (t *Table) Value(i int, column string) (Value, error) {
	if i < 0 || i >= len(t.rows) {
		return Value{}, errors.NewValueError("Table.Value", "row index out of range")
	}
	j, ok := t.schema.Index(column)
	if !ok {
		return Value{}, errors.NewValueError("Table.Value", "unknown column "+column)
	}
	return t.rows[i][j], nil
}

// NumericColumn extracts a numeric column as a float64 slice. It fails on a
// categorical column or on any missing cell; clean the table first.
func (t *Table) NumericColumn(name string) ([]float64, error) {
	j, ok := t.schema.Index(name)
	if !ok {
		return nil, errors.NewValueError("Table.NumericColumn", "unknown column "+name)
	}
	if t.schema.Columns[j].Kind != Numeric {
		return nil, errors.NewValueError("Table.NumericColumn", "column "+name+" is not numeric")
	}
	out := make([]float64, len(t.rows))
	for i, row := range t.rows {
		if row[j].Missing {
			return nil, errors.NewValueError("Table.NumericColumn", "column "+name+" has missing values; call DropMissing first")
		}
		out[i] = row[j].Num
	}
	return out, nil
}

// StringColumn extracts a categorical column as a string slice. It fails on
// a numeric column or on any missing cell.
func (t *Table) StringColumn(name string) ([]string, error) {
	j, ok := t.schema.Index(name)
	if !ok {
		return nil, errors.NewValueError("Table.StringColumn", "unknown column "+name)
	}
	if t.schema.Columns[j].Kind != Categorical {
		return nil, errors.NewValueError("Table.StringColumn", "column "+name+" is not categorical")
	}
	out := make([]string, len(t.rows))
	for i, row := range t.rows {
		if row[j].Missing {
			return nil, errors.NewValueError("Table.StringColumn", "column "+name+" has missing values; call DropMissing first")
		}
		out[i] = row[j].Str
	}
	return out, nil
}

// DropMissing returns a new table containing only the rows where every cell
// is present, preserving row order. The receiver is not modified. If no
// complete row remains the result is a DataInsufficientError rather than a
// silently empty table.
func (t *Table) DropMissing() (*Table, error) {
	kept := make([][]Value, 0, len(t.rows))
	for _, row := range t.rows {
		complete := true
		for _, v := range row {
			if v.Missing {
				complete = false
				break
			}
		}
		if complete {
			kept = append(kept, row)
		}
	}
	if len(kept) == 0 {
		return nil, errors.NewDataInsufficientError("Table.DropMissing", 0, 1, "no complete rows after removing missing values")
	}
	return &Table{schema: t.schema, rows: kept}, nil
}

// subset returns a new table over the rows at the given indices.
func (t *Table) subset(indices []int) *Table {
	rows := make([][]Value, len(indices))
	for i, idx := range indices {
		rows[i] = t.rows[idx]
	}
	return &Table{schema: t.schema, rows: rows}
}
