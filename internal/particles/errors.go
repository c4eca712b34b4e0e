package particles

import "errors"

var (
	ErrClosed       = errors.New("particle field closed")
	ErrInvalidColor = errors.New("invalid particle color")
)
