// Package quadtree implements a Barnes-Hut spatial index: a quadtree over
// node positions that caches a mass-weighted centroid at every internal
// node, supporting the force package's long-range repulsion approximation.
package quadtree

// maxDepth bounds recursive subdivision so near-coincident points can't
// recurse forever; past this depth new items are folded into the existing
// leaf's centroid instead of forcing another split.
const maxDepth = 48

// Item is an opaque payload carried by a leaf node — the force package
// stores a *layout.Node here without this package needing to know its type.
type Item interface{}

// Node is one quadtree cell. A leaf (NumItems == 1) holds a single Item at
// its own position; an internal node (NumItems > 1) holds the mass-weighted
// centroid of everything beneath it and up to four Children. Children slots
// are nil for empty quadrants, never placeholder leaves of mass zero.
type Node struct {
	X, Y       float64 // mass centroid
	Mass       float64
	Radius     float64 // meaningful only when NumItems == 1 (the leaf's item radius)
	SideLength float64
	NumItems   int
	Item       Item // valid only when NumItems == 1
	Parent     *Node
	Children   [4]*Node

	centerX, centerY float64 // geometric quadrant center, used only for subdivision
}

// Tree is a quadtree built fresh from a node set each force iteration.
type Tree struct {
	Root *Node
	pool *Pool
}

// Point is one item to insert, carrying its position, mass and collision
// radius alongside the opaque Item it indexes.
type Point struct {
	X, Y, Mass, Radius float64
	Item               Item
}

// Build computes a bounding box over points (expanded by a margin so no
// point sits exactly on the root's boundary) and inserts every point into a
// fresh tree allocated from pool. Returns a Tree with a nil Root if points
// is empty.
func Build(pool *Pool, points []Point) *Tree {
	pool.Reset()
	t := &Tree{pool: pool}
	if len(points) == 0 {
		return t
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	const margin = 1.1
	side := (maxX - minX)
	if h := maxY - minY; h > side {
		side = h
	}
	if side <= 0 {
		side = 1
	}
	side *= margin

	root := pool.alloc()
	root.centerX = (minX + maxX) / 2
	root.centerY = (minY + maxY) / 2
	root.SideLength = side
	t.Root = root

	for _, p := range points {
		t.Insert(p.X, p.Y, p.Mass, p.Radius, p.Item)
	}
	return t
}

// Centroid returns the whole tree's aggregate mass centroid and total mass,
// or ErrEmptyTree if no item has been inserted.
func (t *Tree) Centroid() (x, y, mass float64, err error) {
	if t.Root == nil {
		return 0, 0, 0, ErrEmptyTree
	}
	return t.Root.X, t.Root.Y, t.Root.Mass, nil
}

// Insert adds one item to the tree, subdividing leaves on collision and
// incrementally updating every ancestor's mass centroid along the descent
// path.
func (t *Tree) Insert(x, y, mass, radius float64, item Item) {
	t.Root.insert(t.pool, x, y, mass, radius, item, 0)
}

func (n *Node) insert(pool *Pool, x, y, mass, radius float64, item Item, depth int) {
	switch {
	case n.NumItems == 0:
		n.NumItems = 1
		n.X, n.Y, n.Mass, n.Radius = x, y, mass, radius
		n.Item = item

	case n.NumItems == 1:
		if depth >= maxDepth {
			n.accumulate(x, y, mass)
			if radius > n.Radius {
				n.Radius = radius
			}
			return
		}
		// split this leaf: push its item into a child, then fall
		// through to the internal-node insertion path below for the
		// new item.
		oldX, oldY, oldMass, oldRadius, oldItem := n.X, n.Y, n.Mass, n.Radius, n.Item
		n.Item = nil
		n.NumItems = 0
		n.insertIntoChild(pool, oldX, oldY, oldMass, oldRadius, oldItem, depth)
		n.NumItems = 1
		n.insertIntoChild(pool, x, y, mass, radius, item, depth)
		n.NumItems = 2
		n.recomputeCentroidFromChildren()

	default:
		n.insertIntoChild(pool, x, y, mass, radius, item, depth)
		n.NumItems++
		n.accumulate(x, y, mass)
	}
}

// accumulate folds one more (x,y,mass) point into this node's running
// mass-weighted centroid.
func (n *Node) accumulate(x, y, mass float64) {
	newMass := n.Mass + mass
	if newMass == 0 {
		return
	}
	n.X = (n.X*n.Mass + x*mass) / newMass
	n.Y = (n.Y*n.Mass + y*mass) / newMass
	n.Mass = newMass
}

// recomputeCentroidFromChildren rebuilds (X,Y,Mass) from scratch across
// Children; used once, right after a leaf splits into its first two
// children, since at that point no running centroid has accumulated yet.
func (n *Node) recomputeCentroidFromChildren() {
	var x, y, mass float64
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		x += c.X * c.Mass
		y += c.Y * c.Mass
		mass += c.Mass
	}
	n.X, n.Y, n.Mass = 0, 0, mass
	if mass != 0 {
		n.X, n.Y = x/mass, y/mass
	}
}

// Leaves calls f for every leaf (NumItems == 1) in the subtree rooted at n,
// in depth-first order. n may itself be a leaf.
func (n *Node) Leaves(f func(*Node)) {
	if n == nil || n.NumItems == 0 {
		return
	}
	if n.NumItems == 1 {
		f(n)
		return
	}
	for _, c := range n.Children {
		c.Leaves(f)
	}
}

// quadrantOf returns which of n's four children (x,y) falls into.
func (n *Node) quadrantOf(x, y float64) int {
	idx := 0
	if x >= n.centerX {
		idx |= 1
	}
	if y >= n.centerY {
		idx |= 2
	}
	return idx
}

// insertIntoChild routes (x,y,...) into the appropriate child of n,
// allocating that child (with its own quadrant geometry) if it doesn't
// exist yet.
func (n *Node) insertIntoChild(pool *Pool, x, y, mass, radius float64, item Item, depth int) {
	idx := n.quadrantOf(x, y)
	child := n.Children[idx]
	if child == nil {
		child = pool.alloc()
		child.Parent = n
		child.SideLength = n.SideLength / 2
		half := child.SideLength / 2
		if idx&1 != 0 {
			child.centerX = n.centerX + half
		} else {
			child.centerX = n.centerX - half
		}
		if idx&2 != 0 {
			child.centerY = n.centerY + half
		} else {
			child.centerY = n.centerY - half
		}
		n.Children[idx] = child
	}
	child.insert(pool, x, y, mass, radius, item, depth+1)
}
