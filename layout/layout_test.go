package layout

import (
	"math"
	"testing"

	"github.com/vseledkin/paperlayout/paper"
)

func TestNodeByID(t *testing.T) {
	a := paper.New(paper.DateToID(2000, 1, 1))
	b := paper.New(paper.DateToID(2000, 1, 2))
	c := paper.New(paper.DateToID(2000, 1, 3))
	l, err := BuildFromPapers([]*paper.Paper{a, b, c}, BuildParams{})
	if err != nil {
		t.Fatalf("BuildFromPapers: %v", err)
	}

	if got := l.NodeByID(b.ID); got != l.Nodes[1] {
		t.Fatalf("NodeByID(b) did not return B's node")
	}
	if got := l.NodeByID(paper.DateToID(1999, 1, 1)); got != nil {
		t.Fatalf("NodeByID(missing) = %v, want nil", got)
	}
}

func TestNodeAt(t *testing.T) {
	l := &Layout{Nodes: []*Node{
		{X: 0, Y: 0, Radius: 1},
		{X: 10, Y: 10, Radius: 0.5},
	}}
	if got := l.NodeAt(0.4, 0); got != l.Nodes[0] {
		t.Fatalf("expected to hit first node's disc")
	}
	if got := l.NodeAt(100, 100); got != nil {
		t.Fatalf("expected no hit far from any node")
	}
}

func TestRotateAllPreservesDistanceFromOrigin(t *testing.T) {
	l := &Layout{Nodes: []*Node{{X: 3, Y: 4}}}
	before := math.Hypot(l.Nodes[0].X, l.Nodes[0].Y)
	l.RotateAll(math.Pi / 3)
	after := math.Hypot(l.Nodes[0].X, l.Nodes[0].Y)
	if math.Abs(before-after) > 1e-9 {
		t.Fatalf("rotation changed distance from origin: %v -> %v", before, after)
	}
}

func TestStats(t *testing.T) {
	fine := &Layout{Nodes: []*Node{
		{Mass: 1, Radius: 1, Flags: IsFinest},
		{Mass: 2, Radius: 1, Flags: IsFinest},
	}}
	s := fine.Stats()
	if s.NumNodes != 2 {
		t.Fatalf("NumNodes = %d, want 2", s.NumNodes)
	}
	if s.TotalMass != 3 {
		t.Fatalf("TotalMass = %v, want 3", s.TotalMass)
	}
	if s.FinestFraction != 1 {
		t.Fatalf("FinestFraction = %v, want 1", s.FinestFraction)
	}
}
