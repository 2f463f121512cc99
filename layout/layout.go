// Package layout implements the multi-level layout hierarchy: the finest
// level binds one Node per paper.Paper, coarser levels are built by greedy
// heavy-edge matching over that level's Links, and positions propagate back
// down from a converged coarse solution to seed its children.
package layout

import (
	"math"

	"github.com/vseledkin/paperlayout/paper"
)

// Flag bits on Node.Flags.
const (
	// IsFinest marks a node bound directly to a paper.Paper (Child1 and
	// Child2 are both nil).
	IsFinest uint8 = 1 << iota
	// PosValid marks a node whose (X,Y) has been set by either
	// ComputeBestStartPosition or PropagatePositionsToChildren, as
	// opposed to its zero value.
	PosValid
)

// exportScale is the fixed-point factor spec.md §4.D/§6 uses to serialise
// positions and radii as 32-bit integers.
const exportScale = 20

// Link is a symmetrised, undirected edge at one layout level.
type Link struct {
	Node   *Node
	Weight float64
}

// Node is one entry in a layout level. A finest node is bound to a
// paper.Paper; a coarse node aggregates one or two finer children.
type Node struct {
	Mass, Radius float64
	X, Y         float64
	FX, FY       float64
	Flags        uint8

	Parent         *Node // in the coarser level above, nil until coarsened
	Child1, Child2 *Node // in the finer level below; Child2 may be nil

	Paper *paper.Paper // non-nil only when Flags&IsFinest != 0

	Links []Link
}

// IsFinestNode reports whether n is bound to a paper (has no children).
func (n *Node) IsFinestNode() bool {
	return n.Flags&IsFinest != 0
}

// HasValidPosition reports whether n's (X,Y) has been set.
func (n *Node) HasValidPosition() bool {
	return n.Flags&PosValid != 0
}

// Layout is one level of the hierarchy: an ordered, id-sorted (for the
// finest level) slice of Nodes, plus links to the coarser level above and
// the finer level below.
type Layout struct {
	Nodes []*Node

	ParentLayout *Layout // coarser, nil at the top
	ChildLayout  *Layout // finer, nil at the finest level
}

// NodeByID returns the finest-level node bound to the paper with the given
// id via binary search, assuming l is the finest layout and its Nodes are
// sorted by paper id (guaranteed by BuildFromPapers iterating sorted
// input). Returns nil if not found.
func (l *Layout) NodeByID(id uint32) *Node {
	lo, hi := 0, len(l.Nodes)
	for lo < hi {
		mid := (lo + hi) / 2
		n := l.Nodes[mid]
		switch {
		case n.Paper.ID == id:
			return n
		case n.Paper.ID < id:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return nil
}

// NodeAt returns any node whose disc (centred at (X,Y), radius Radius)
// contains (x,y), or nil if none does. Linear scan, per spec.md §4.D.
func (l *Layout) NodeAt(x, y float64) *Node {
	for _, n := range l.Nodes {
		dx, dy := n.X-x, n.Y-y
		if dx*dx+dy*dy <= n.Radius*n.Radius {
			return n
		}
	}
	return nil
}

// RotateAll applies a rigid rotation by angle radians to every node
// position at this level. Restored from the C source's layout_rotate_all;
// useful for renderer-side orientation stability.
func (l *Layout) RotateAll(angle float64) {
	sin, cos := math.Sincos(angle)
	for _, n := range l.Nodes {
		x, y := n.X, n.Y
		n.X = x*cos - y*sin
		n.Y = x*sin + y*cos
	}
}

// Stats summarises one layout level, in place of the C source's
// layout_print debug dump.
type Stats struct {
	NumNodes         int
	TotalMass        float64
	TotalRadius      float64
	NumLinks         int
	FinestFraction   float64 // fraction of nodes with IsFinest set
	AvgChildrenRatio float64 // average children-per-coarse-node, 0 at finest
}

// Stats computes summary statistics for this level.
func (l *Layout) Stats() Stats {
	var s Stats
	s.NumNodes = len(l.Nodes)
	if s.NumNodes == 0 {
		return s
	}

	var finestCount, coarseCount, childSum int
	for _, n := range l.Nodes {
		s.TotalMass += n.Mass
		s.TotalRadius += n.Radius
		s.NumLinks += len(n.Links)
		if n.IsFinestNode() {
			finestCount++
			continue
		}
		coarseCount++
		if n.Child1 != nil {
			childSum++
		}
		if n.Child2 != nil {
			childSum++
		}
	}
	s.FinestFraction = float64(finestCount) / float64(s.NumNodes)
	if coarseCount > 0 {
		s.AvgChildrenRatio = float64(childSum) / float64(coarseCount)
	}
	return s
}

// ExportPosition converts a world-space coordinate to the integer units the
// renderer contract (spec.md §6) expects.
func ExportPosition(v float64) int32 {
	return int32(math.Round(v * exportScale))
}

// ImportPosition is the inverse of ExportPosition. Radius is never
// imported, per spec.md §4.D.
func ImportPosition(v int32) float64 {
	return float64(v) / exportScale
}
