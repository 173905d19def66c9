package model

import (
	"encoding/gob"
	"io"
	"os"

	"github.com/tabreg/tabreg/pkg/errors"
)

// Save gob-encodes params to a file so a fitted model can be reused across
// runs. params must be a gob-encodable value, typically an exported
// parameter struct such as linear.Params.
func Save(params interface{}, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", filename)
	}
	defer file.Close()

	return SaveTo(params, file)
}

// Load gob-decodes params from a file written by Save.
func Load(params interface{}, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", filename)
	}
	defer file.Close()

	return LoadFrom(params, file)
}

// SaveTo gob-encodes params to a writer.
func SaveTo(params interface{}, w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(params); err != nil {
		return errors.Wrap(err, "failed to encode model parameters")
	}
	return nil
}

// LoadFrom gob-decodes params from a reader. params must be a pointer.
func LoadFrom(params interface{}, r io.Reader) error {
	if err := gob.NewDecoder(r).Decode(params); err != nil {
		return errors.Wrap(err, "failed to decode model parameters")
	}
	return nil
}
