package paper

import "errors"

// ErrNotSorted indicates a []*Paper handed to a building routine was not
// sorted ascending by ID, which later layout.Layout.NodeByID binary search
// requires.
var ErrNotSorted = errors.New("paper: papers must be sorted by id")
