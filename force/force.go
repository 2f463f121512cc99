// Package force implements the per-iteration attractive and repulsive
// force accumulation driving the layout's n-body simulation: a spring term
// along layout.Links and a Barnes-Hut-approximated anti-gravity term over
// the quadtree, with an optional close-range collision term.
package force

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/vseledkin/paperlayout/layout"
	"github.com/vseledkin/paperlayout/quadtree"
)

// barnesHutTheta is the multipole acceptance criterion from spec.md §4.E /
// GLOSSARY: a distant cell's mass is treated as a single centroid once
// cell_side^2 < theta * distance^2.
const barnesHutTheta = 0.45

// minRsq and minLinkDist clamp the numerical degeneracies spec.md §7 calls
// out: coincident positions never divide by zero.
const (
	minRsq      = 1e-6
	minLinkDist = 1e-2
)

// Params is the complete recognised parameter set from spec.md §4.E.
type Params struct {
	LinkStrength float64
	UseRefFreq   bool

	AntiGravityFalloffRsq    float64
	AntiGravityFalloffRsqInv float64

	DoCloseRepulsion bool
	CloseRepulsionA  float64
	CloseRepulsionB  float64
	CloseRepulsionC  float64
	CloseRepulsionD  float64
}

// ApplyAttractive runs the attractive spring pass over every link at l,
// accumulating into each endpoint's (FX, FY). Per spec.md invariant 9, the
// pass imparts zero total momentum: the force applied to n1 is always the
// exact negation of the force applied to n2.
func ApplyAttractive(l *layout.Layout, p Params) {
	for _, n1 := range l.Nodes {
		for _, lk := range n1.Links {
			n2 := lk.Node
			dx := n1.X - n2.X
			dy := n1.Y - n2.Y
			r := math.Hypot(dx, dy)
			if r <= minLinkDist {
				continue
			}

			restLen := 1.5 * (n1.Radius + n2.Radius)
			fac := p.LinkStrength
			if p.UseRefFreq {
				fac *= 0.65 * lk.Weight
			}
			fac *= (r - restLen) / r

			fx, fy := dx*fac, dy*fac
			n1.FX -= fx
			n1.FY -= fy
			n2.FX += fx
			n2.FY += fy
		}
	}
}

// ApplyRepulsive runs the Barnes-Hut repulsive pass over every leaf of
// tree, fanning the root's four quadrant subtrees out across an
// errgroup.Group. Each goroutine only mutates leaves within its own
// subtree, so no synchronization is needed beyond the final Wait (spec.md
// §5).
func ApplyRepulsive(ctx context.Context, tree *quadtree.Tree, p Params) error {
	return applyRepulsive(ctx, tree, p, nil)
}

// ApplyIf re-runs the repulsive pass, but only applies the computed force
// to leaves for which pred returns true — e.g. nodes just promoted from a
// coarser level, without rebuilding the quadtree. Grounded on the C
// source's Force_quad_tree_apply_if (Force.c:234-247).
func ApplyIf(ctx context.Context, tree *quadtree.Tree, p Params, pred func(*layout.Node) bool) error {
	return applyRepulsive(ctx, tree, p, pred)
}

func applyRepulsive(ctx context.Context, tree *quadtree.Tree, p Params, pred func(*layout.Node) bool) error {
	if tree.Root == nil {
		return nil
	}

	root := tree.Root
	if root.NumItems == 1 {
		// a single-item tree has no quadrants to fan out over.
		applySubtree(root, root, p, pred)
		return nil
	}

	g, _ := errgroup.WithContext(ctx)
	for _, quadrant := range root.Children {
		quadrant := quadrant
		if quadrant == nil {
			continue
		}
		g.Go(func() error {
			applySubtree(quadrant, root, p, pred)
			return nil
		})
	}
	return g.Wait()
}

// applySubtree visits every leaf q1 under sub and descends root, summing
// the repulsive force contribution of every other node onto q1.
func applySubtree(sub, root *quadtree.Node, p Params, pred func(*layout.Node) bool) {
	sub.Leaves(func(q1 *quadtree.Node) {
		n1 := q1.Item.(*layout.Node)
		if pred != nil && !pred(n1) {
			return
		}
		descendAndApply(q1, root, p)
	})
}

// descendAndApply walks the tree top-down for one leaf q1: from q2 = root,
// either treat q2 as a single centroid (if it's a leaf or passes the
// multipole criterion) or recurse into its four children. Each leaf starts
// its own walk from the root; there is no re-ascent from the leaf summing
// sibling subtrees.
func descendAndApply(q1, q2 *quadtree.Node, p Params) {
	if q2 == nil || q2.NumItems == 0 || q2 == q1 {
		return
	}

	dx := q1.X - q2.X
	dy := q1.Y - q2.Y
	rsq := dx*dx + dy*dy
	if rsq < minRsq {
		rsq = minRsq
	}

	if q2.NumItems == 1 || q2.SideLength*q2.SideLength < barnesHutTheta*rsq {
		fac := forceMagnitude(q1, q2, rsq, p)
		n1 := q1.Item.(*layout.Node)
		n1.FX += dx * fac
		n1.FY += dy * fac
		return
	}

	for _, c := range q2.Children {
		descendAndApply(q1, c, p)
	}
}

// forceMagnitude computes the scalar factor applied to (dx,dy) for one
// q1/q2 pair, per spec.md §4.E.
func forceMagnitude(q1, q2 *quadtree.Node, rsq float64, p Params) float64 {
	if p.DoCloseRepulsion && q2.NumItems == 1 {
		sum := p.CloseRepulsionD + q1.Radius + q2.Radius
		radSumSq := p.CloseRepulsionC * sum * sum
		if rsq < radSumSq {
			expTerm := math.Exp(4*(radSumSq-rsq)) - 1
			if expTerm > p.CloseRepulsionB {
				expTerm = p.CloseRepulsionB
			}
			return p.CloseRepulsionA*expTerm/rsq + q1.Mass*q2.Mass/radSumSq
		}
	}
	return q1.Mass * q2.Mass / falloff(rsq, p)
}

// falloff applies the anti-gravity 1/r^4 tail beyond AntiGravityFalloffRsq.
func falloff(rsq float64, p Params) float64 {
	if rsq > p.AntiGravityFalloffRsq {
		return rsq * rsq * p.AntiGravityFalloffRsqInv
	}
	return rsq
}

// BuildTree constructs a fresh quadtree over l's current node positions,
// binding each leaf's Item to its *layout.Node so the force passes above
// can recover it.
func BuildTree(pool *quadtree.Pool, l *layout.Layout) *quadtree.Tree {
	points := make([]quadtree.Point, len(l.Nodes))
	for i, n := range l.Nodes {
		points[i] = quadtree.Point{X: n.X, Y: n.Y, Mass: n.Mass, Radius: n.Radius, Item: n}
	}
	return quadtree.Build(pool, points)
}

// ZeroForces resets (FX, FY) on every node at l, called at the start of
// each iteration before the attractive and repulsive passes accumulate.
func ZeroForces(l *layout.Layout) {
	for _, n := range l.Nodes {
		n.FX, n.FY = 0, 0
	}
}
