package layout

import "errors"

// ErrNotSorted indicates BuildFromPapers received papers not sorted by id,
// breaking the finest layout's binary-search lookup contract.
var ErrNotSorted = errors.New("layout: papers must be sorted by id")
