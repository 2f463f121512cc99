package layout

import (
	"math"
	"sort"

	"github.com/vseledkin/paperlayout/paper"
)

// fakeLinkWeight is the constant weight spec.md §4.D assigns to a paper's
// FakeLinks, regardless of BuildParams.
const fakeLinkWeight = 0.25

// ageWeakenScale matches the C source's 1e-7 id-distance scale factor used
// when BuildParams.AgeWeaken is set.
const ageWeakenScale = 1e-7

// BuildParams configures link-weight computation in BuildFromPapers, per
// spec.md §4.D.
type BuildParams struct {
	FactorRefLink   float64
	FactorOtherLink float64
	AgeWeaken       bool
}

// BuildFromPapers builds the finest layout: one Node per paper, bound via
// Node.Paper, in the same (id-sorted) order as papers. Returns ErrNotSorted
// if the input isn't sorted ascending by id, since NodeByID depends on it.
func BuildFromPapers(papers []*paper.Paper, params BuildParams) (*Layout, error) {
	for i := 1; i < len(papers); i++ {
		if papers[i].ID < papers[i-1].ID {
			return nil, ErrNotSorted
		}
	}

	l := &Layout{Nodes: make([]*Node, len(papers))}
	for i, p := range papers {
		n := &Node{
			Mass:   p.Mass,
			Radius: p.Radius,
			Flags:  IsFinest,
			Paper:  p,
		}
		l.Nodes[i] = n
		p.FinestNodeIndex = i
	}

	// count outgoing links per node so each node's slice can be allocated
	// once, up front, mirroring the C source's single contiguous link
	// block per level.
	counts := make([]int, len(papers))
	for i, p := range papers {
		for _, ref := range p.Refs {
			if ref.FinestNodeIndex < 0 {
				continue
			}
			counts[i]++
		}
		for _, fl := range p.FakeLinks {
			if fl.FinestNodeIndex >= 0 {
				counts[i]++
			}
		}
	}

	for i, p := range papers {
		if counts[i] == 0 {
			continue
		}
		n := l.Nodes[i]
		n.Links = make([]Link, 0, counts[i])
		for j, ref := range p.Refs {
			if ref.FinestNodeIndex < 0 {
				continue
			}
			refFreq := 0
			if len(p.RefsRefFreq) > j {
				refFreq = p.RefsRefFreq[j]
			}
			w := params.FactorRefLink * float64(refFreq) * float64(refFreq)
			if params.AgeWeaken {
				d := ageWeakenScale * float64(int64(p.ID)-int64(ref.ID))
				w *= 0.4 + 0.6*math.Exp(-(d * d))
			}
			if len(p.RefsOtherWeight) > j {
				w += params.FactorOtherLink * p.RefsOtherWeight[j]
			}
			n.Links = append(n.Links, Link{Node: l.Nodes[ref.FinestNodeIndex], Weight: w})
		}
		for _, fl := range p.FakeLinks {
			if fl.FinestNodeIndex < 0 {
				continue
			}
			n.Links = append(n.Links, Link{Node: l.Nodes[fl.FinestNodeIndex], Weight: fakeLinkWeight})
		}
	}

	symmetriseLinks(l)
	return l, nil
}

// symmetriseLinks merges any pair of opposing links a->b and b->a into a
// single link on one side (weights summed), per spec.md §4.D and invariant
// 5 (no pair of nodes has both directions represented after this runs). The
// surviving entry is always the scanning node's own — n absorbs n2's
// back-link weight and n2's entry is deleted — matching layout.c:11-34.
func symmetriseLinks(l *Layout) {
	for _, n := range l.Nodes {
		for i := range n.Links {
			n2 := n.Links[i].Node
			if idx := findBackLink(n2, n); idx >= 0 {
				n.Links[i].Weight += n2.Links[idx].Weight
				n2.Links = append(n2.Links[:idx], n2.Links[idx+1:]...)
			}
		}
	}
}

func findBackLink(from, to *Node) int {
	for i, lk := range from.Links {
		if lk.Node == to {
			return i
		}
	}
	return -1
}

// ComputeBestStartPosition seeds n's position: the weighted average of its
// linked neighbours' already-valid positions plus uniform jitter in
// [-0.5,0.5], or a uniform random point in [-50,50]^2 if no neighbour has a
// valid position yet. jitter and uniform are caller-supplied random sources,
// each returning values in [-0.5,0.5]; uniform's value is scaled by 100
// (spec.md's Non-goals exclude deterministic output, so callers decide the
// source: math/rand for production, a fixed seed for tests).
func ComputeBestStartPosition(n *Node, jitter func() float64, uniform func() float64) {
	var sumX, sumY, sumW float64
	for _, lk := range n.Links {
		if !lk.Node.HasValidPosition() {
			continue
		}
		sumX += lk.Node.X * lk.Weight
		sumY += lk.Node.Y * lk.Weight
		sumW += lk.Weight
	}

	if sumW > 0 {
		n.X = sumX/sumW + jitter()
		n.Y = sumY/sumW + jitter()
	} else {
		n.X = uniform() * 100
		n.Y = uniform() * 100
	}
	n.Flags |= PosValid
}

// PropagatePositionsToChildren copies each node's (X,Y) down into its
// Child1/Child2 at the next finer level, recursively through the whole
// chain below l. Used to seed a finer level with a converged coarser
// solution.
func PropagatePositionsToChildren(l *Layout) {
	if l.ChildLayout == nil {
		return
	}
	for _, n := range l.Nodes {
		if n.Child1 != nil {
			n.Child1.X, n.Child1.Y = n.X, n.Y
			n.Child1.Flags |= PosValid
		}
		if n.Child2 != nil {
			n.Child2.X, n.Child2.Y = n.X, n.Y
			n.Child2.Flags |= PosValid
		}
	}
	PropagatePositionsToChildren(l.ChildLayout)
}

// RecomputeMassRadius walks from finest to coarsest, copying mass/radius
// from the bound paper at finest nodes and summing children otherwise, per
// spec.md §4.D / invariant 7.
func RecomputeMassRadius(finest *Layout) {
	for l := finest; l != nil; l = l.ParentLayout {
		for _, n := range l.Nodes {
			if n.IsFinestNode() {
				n.Mass = n.Paper.Mass
				n.Radius = n.Paper.Radius
				continue
			}
			var mass, radSq float64
			if n.Child1 != nil {
				mass += n.Child1.Mass
				radSq += n.Child1.Radius * n.Child1.Radius
			}
			if n.Child2 != nil {
				mass += n.Child2.Mass
				radSq += n.Child2.Radius * n.Child2.Radius
			}
			n.Mass = mass
			n.Radius = math.Sqrt(radSq)
		}
	}
}

// BuildReducedFromLayout coarsens fine by greedy heavy-edge matching:
// nodes are sorted by descending max-link-weight (ties by ascending mass),
// then each still-unmatched node is paired with its highest-weight
// still-unmatched neighbour. Unmatched nodes promote to singleton coarse
// nodes. Returns the new coarse Layout, linked above fine
// (coarse.ChildLayout = fine, fine.ParentLayout = coarse).
func BuildReducedFromLayout(fine *Layout) *Layout {
	candidates := make([]*Node, 0, len(fine.Nodes))
	for _, n := range fine.Nodes {
		if len(n.Links) > 0 {
			candidates = append(candidates, n)
		}
	}

	maxWeight := make(map[*Node]float64, len(candidates))
	for _, n := range candidates {
		m := 0.0
		for _, lk := range n.Links {
			if lk.Weight > m {
				m = lk.Weight
			}
		}
		maxWeight[n] = m
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if maxWeight[a] != maxWeight[b] {
			return maxWeight[a] > maxWeight[b]
		}
		return a.Mass < b.Mass
	})

	matched := make(map[*Node]bool, len(fine.Nodes))
	coarse := &Layout{ChildLayout: fine}
	fine.ParentLayout = coarse

	newCoarseNode := func(c1, c2 *Node) *Node {
		n := &Node{Child1: c1, Child2: c2}
		c1.Parent = n
		if c2 != nil {
			c2.Parent = n
		}
		coarse.Nodes = append(coarse.Nodes, n)
		return n
	}

	for _, n := range candidates {
		if matched[n] {
			continue
		}
		var best *Node
		var bestW float64
		for _, lk := range n.Links {
			if matched[lk.Node] || lk.Node == n {
				continue
			}
			if best == nil || lk.Weight > bestW {
				best, bestW = lk.Node, lk.Weight
			}
		}
		if best != nil {
			matched[n] = true
			matched[best] = true
			newCoarseNode(n, best)
		}
	}

	for _, n := range fine.Nodes {
		if n.Parent == nil {
			newCoarseNode(n, nil)
		}
	}

	rebuildCoarseLinks(coarse)
	return coarse
}

// rebuildCoarseLinks unions each coarse node's children's link lists,
// dropping self-loops (a link whose target's parent is the coarse node
// itself) and summing duplicate targets.
func rebuildCoarseLinks(coarse *Layout) {
	for _, n := range coarse.Nodes {
		byTarget := make(map[*Node]float64)
		var order []*Node
		addChildLinks := func(child *Node) {
			if child == nil {
				return
			}
			for _, lk := range child.Links {
				target := lk.Node.Parent
				if target == nil || target == n {
					continue
				}
				if _, seen := byTarget[target]; !seen {
					order = append(order, target)
				}
				byTarget[target] += lk.Weight
			}
		}
		addChildLinks(n.Child1)
		addChildLinks(n.Child2)

		n.Links = n.Links[:0]
		for _, target := range order {
			n.Links = append(n.Links, Link{Node: target, Weight: byTarget[target]})
		}
	}
}
