package quadtree

import "errors"

// ErrEmptyTree is returned by operations that require at least one item to
// have been inserted (or built from a non-empty Point slice).
var ErrEmptyTree = errors.New("quadtree: tree has no root")
