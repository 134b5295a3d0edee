package model

import "errors"

// Loading and validation failures surfaced to the host. Wrap these with
// fmt.Errorf("%w: ...") so callers can classify with errors.Is while still
// seeing the offending field or id.
var (
	// ErrInvalidShapeKind reports an unrecognized shape type tag.
	ErrInvalidShapeKind = errors.New("invalid shape kind")
	// ErrInvalidParameter reports a missing or non-positive numeric field.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrUnknownShapeReference reports a counts or pieces entry whose shape
	// id is absent from the catalog.
	ErrUnknownShapeReference = errors.New("unknown shape reference")
	// ErrInvalidBoardKind reports an unrecognized board type tag.
	ErrInvalidBoardKind = errors.New("invalid board kind")
	// ErrEmptyPuzzle reports a blueprint request for a puzzle with no pieces.
	ErrEmptyPuzzle = errors.New("empty puzzle")
	// ErrMalformedDefinition reports structurally invalid JSON input.
	ErrMalformedDefinition = errors.New("malformed definition")
)
