package framework

import "errors"

var (
	// ErrInvalidConfiguration is returned for unusable boards, pin sets or GA parameters.
	ErrInvalidConfiguration = errors.New("steiner: invalid configuration")

	// ErrSelection is returned when roulette-wheel selection faces a non-positive fitness sum.
	ErrSelection = errors.New("steiner: selection failed")
)
