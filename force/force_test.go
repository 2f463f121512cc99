package force

import (
	"context"
	"math"
	"testing"

	"github.com/vseledkin/paperlayout/layout"
	"github.com/vseledkin/paperlayout/quadtree"
)

// TestApplyAttractiveMomentumConservation is invariant 9 from spec.md §8:
// the attractive pass imparts zero total momentum.
func TestApplyAttractiveMomentumConservation(t *testing.T) {
	n1 := &layout.Node{X: 0, Y: 0, Radius: 0.1, Mass: 1}
	n2 := &layout.Node{X: 5, Y: 2, Radius: 0.1, Mass: 1}
	n1.Links = []layout.Link{{Node: n2, Weight: 1}}

	l := &layout.Layout{Nodes: []*layout.Node{n1, n2}}
	ApplyAttractive(l, Params{LinkStrength: 1})

	sumFX := n1.FX + n2.FX
	sumFY := n1.FY + n2.FY
	if math.Abs(sumFX) > 1e-9 || math.Abs(sumFY) > 1e-9 {
		t.Fatalf("total momentum = (%v,%v), want (0,0)", sumFX, sumFY)
	}
	if n1.FX == 0 && n1.FY == 0 {
		t.Fatalf("expected a nonzero attractive force to be applied")
	}
}

func TestApplyAttractiveSkipsNearCoincidentNodes(t *testing.T) {
	n1 := &layout.Node{X: 0, Y: 0}
	n2 := &layout.Node{X: 1e-4, Y: 0}
	n1.Links = []layout.Link{{Node: n2, Weight: 1}}
	l := &layout.Layout{Nodes: []*layout.Node{n1, n2}}

	ApplyAttractive(l, Params{LinkStrength: 1})

	if n1.FX != 0 || n1.FY != 0 || n2.FX != 0 || n2.FY != 0 {
		t.Fatalf("expected no force applied below the minimum link distance")
	}
}

func TestApplyRepulsivePushesApart(t *testing.T) {
	n1 := &layout.Node{X: 0, Y: 0, Mass: 1, Radius: 0.1}
	n2 := &layout.Node{X: 1, Y: 0, Mass: 1, Radius: 0.1}
	l := &layout.Layout{Nodes: []*layout.Node{n1, n2}}

	pool := quadtree.NewPool(0)
	tree := BuildTree(pool, l)
	ZeroForces(l)

	params := Params{AntiGravityFalloffRsq: 1e9, AntiGravityFalloffRsqInv: 1}
	if err := ApplyRepulsive(context.Background(), tree, params); err != nil {
		t.Fatalf("ApplyRepulsive: %v", err)
	}

	if n1.FX >= 0 {
		t.Fatalf("expected n1 pushed in the negative x direction, got FX=%v", n1.FX)
	}
	if n2.FX <= 0 {
		t.Fatalf("expected n2 pushed in the positive x direction, got FX=%v", n2.FX)
	}
}

func TestApplyIfHonoursPredicate(t *testing.T) {
	n1 := &layout.Node{X: 0, Y: 0, Mass: 1, Radius: 0.1}
	n2 := &layout.Node{X: 1, Y: 0, Mass: 1, Radius: 0.1}
	l := &layout.Layout{Nodes: []*layout.Node{n1, n2}}

	pool := quadtree.NewPool(0)
	tree := BuildTree(pool, l)
	ZeroForces(l)

	params := Params{AntiGravityFalloffRsq: 1e9, AntiGravityFalloffRsqInv: 1}
	err := ApplyIf(context.Background(), tree, params, func(n *layout.Node) bool {
		return n == n1
	})
	if err != nil {
		t.Fatalf("ApplyIf: %v", err)
	}
	if n1.FX == 0 {
		t.Fatalf("expected force applied to the predicate-selected node")
	}
	if n2.FX != 0 {
		t.Fatalf("expected no force applied to the node excluded by the predicate")
	}
}
