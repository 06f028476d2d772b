package engine

import "errors"

var (
	// ErrMalformedRecord marks a raw row that could not be turned into a draw
	ErrMalformedRecord = errors.New("malformed draw record")

	// ErrInvalidWeights is returned when a weight vector is shorter than 45
	// or holds a non-positive weight for a number still in the pool
	ErrInvalidWeights = errors.New("invalid weight vector")

	// ErrPoolTooSmall is returned when a candidate pool has fewer than 6 numbers
	ErrPoolTooSmall = errors.New("candidate pool has fewer than 6 numbers")

	// ErrUnknownMode is returned by ParseMode
	ErrUnknownMode = errors.New("unknown generation mode")
)
