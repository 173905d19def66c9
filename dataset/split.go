package dataset

import (
	"math/rand"

	"github.com/tabreg/tabreg/pkg/errors"
)

// Split shuffles the rows with the given seed and partitions them into a
// training and a test table. testFraction is the share of rows held out for
// evaluation and must lie strictly between 0 and 1. The same table, seed and
// fraction always yield the same partition. Both partitions must end up
// non-empty, otherwise the split is a DataInsufficientError.
func (t *Table) Split(testFraction float64, seed int64) (train, test *Table, err error) {
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, errors.NewValidationError("testFraction", "must be strictly between 0 and 1", testFraction)
	}

	n := t.Len()
	nTest := int(float64(n) * testFraction)
	if nTest == 0 || nTest == n {
		return nil, nil, errors.NewDataInsufficientError("Table.Split", n, 2,
			"split leaves an empty partition")
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	test = t.subset(perm[:nTest])
	train = t.subset(perm[nTest:])
	return train, test, nil
}
