package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tabreg/tabreg/pkg/errors"
)

// Cell text treated as a missing value rather than data.
var missingMarkers = map[string]struct{}{
	"":    {},
	"NA":  {},
	"N/A": {},
	"NaN": {},
	"nan": {},
}

// LoadFile reads a CSV file into a Table validated against schema.
func LoadFile(path string, schema Schema) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewLoadError(path, "cannot open source", err)
	}
	defer f.Close()

	return load(f, path, schema)
}

// Load reads CSV data from r into a Table validated against schema. The CSV
// header must contain every schema column; extra columns in the source are
// ignored. Any malformed record or unparseable numeric cell is a LoadError.
func Load(r io.Reader, schema Schema) (*Table, error) {
	return load(r, "reader", schema)
}

func load(r io.Reader, source string, schema Schema) (*Table, error) {
	if err := schema.validate(); err != nil {
		return nil, err
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.NewLoadError(source, "empty source, no header row", nil)
	}
	if err != nil {
		return nil, errors.NewLoadError(source, "cannot read header", err)
	}

	// Map each schema column to its position in the source header.
	colIdx := make([]int, len(schema.Columns))
	for i, spec := range schema.Columns {
		found := -1
		for j, name := range header {
			if strings.TrimSpace(name) == spec.Name {
				found = j
				break
			}
		}
		if found < 0 {
			return nil, errors.NewLoadError(source, "header is missing declared column "+strconv.Quote(spec.Name), nil)
		}
		colIdx[i] = found
	}

	var rows [][]Value
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			// csv.Reader reports inconsistent field counts here.
			return nil, errors.NewLoadError(source, "malformed record at line "+strconv.Itoa(line), err)
		}

		row := make([]Value, len(schema.Columns))
		for i, spec := range schema.Columns {
			cell := strings.TrimSpace(record[colIdx[i]])
			if _, missing := missingMarkers[cell]; missing {
				row[i] = MissingValue()
				continue
			}
			switch spec.Kind {
			case Numeric:
				num, perr := strconv.ParseFloat(cell, 64)
				if perr != nil {
					return nil, errors.NewLoadError(source,
						"column "+strconv.Quote(spec.Name)+" at line "+strconv.Itoa(line)+" is not numeric: "+strconv.Quote(cell), perr)
				}
				row[i] = NumValue(num)
			case Categorical:
				row[i] = StrValue(cell)
			}
		}
		rows = append(rows, row)
	}

	return New(schema, rows)
}
