package models

import "errors"

// ErrDataSourceUnavailable is returned when a city's trip data cannot be read.
// The session reports it and abandons the current iteration.
var ErrDataSourceUnavailable = errors.New("data source unavailable")

// ErrInvalidInput is returned by the parsers for answers outside the accepted set.
// The prompter recovers from it by asking again.
var ErrInvalidInput = errors.New("invalid input")

// ErrUnknownCity is returned for a city outside the supported set.
var ErrUnknownCity = errors.New("unknown city")
