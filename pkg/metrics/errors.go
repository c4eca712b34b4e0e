package metrics

import "errors"

// ErrWriteTextfile is returned when metrics cannot be written to disk.
var ErrWriteTextfile = errors.New("write metrics textfile failed")
