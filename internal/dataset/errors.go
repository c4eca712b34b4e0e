package dataset

import "errors"

// Sentinel error kinds for this package.
var (
	ErrDatasetFormat = errors.New("invalid dataset")
	ErrDuplicateID   = errors.New("duplicate car id")
)
