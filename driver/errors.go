package driver

import "errors"

// ErrNoLayout indicates Step or Run was called with a nil layout.
var ErrNoLayout = errors.New("driver: layout is nil")
