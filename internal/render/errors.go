package render

import "errors"

var (
	ErrUnknownEvent = errors.New("unknown event")
	ErrRender       = errors.New("failed to render page")
)
