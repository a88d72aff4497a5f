package hexgrid

import "errors"

var (
	// ErrInvalidCoordinate indicates a coordinate violating q+r+s = 0.
	ErrInvalidCoordinate = errors.New("hexgrid: coordinate must satisfy q+r+s = 0")
	// ErrMalformedID indicates a string that is not a canonical hex id.
	ErrMalformedID = errors.New("hexgrid: malformed hex id")
	// ErrEmptyViewport indicates a viewport with no corner points.
	ErrEmptyViewport = errors.New("hexgrid: viewport must have at least one corner")
)
