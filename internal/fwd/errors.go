package fwd

import "errors"

var errLengthMismatch = errors.New("fwd: point and direction lengths differ")
