package backend

import "errors"

// ErrUnavailable marks a sink compiled out of this binary or unusable on
// this host. Callers pick a different backend; there is no retry.
var ErrUnavailable = errors.New("backend unavailable")
