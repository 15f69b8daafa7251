package model

import "errors"

// ErrNotFound is returned by providers when a requested record does not exist.
var ErrNotFound = errors.New("not found")
