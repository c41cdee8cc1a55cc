package core

import "errors"

// ErrInvalidArgument is the single error kind reported by the decomposition
// packages. Every parameter, range or input violation wraps it.
var ErrInvalidArgument = errors.New("invalid argument")
