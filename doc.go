// Package paperlayout lays out a scholarly citation graph as a two-dimensional
// physical embedding, using a force-directed n-body simulation.
//
// 🚀 What is paperlayout?
//
//	A compute-only core that turns a snapshot of papers and references into
//	node positions, built around:
//
//	  • paper/     — paper records, date-encoded ids, keyword interning
//	  • analysis/  — connected-component colouring, transitive reduction
//	  • quadtree/  — Barnes-Hut spatial index over node positions
//	  • layout/    — multi-level coarsening hierarchy and link construction
//	  • force/     — attractive spring + repulsive anti-gravity forces
//	  • driver/    — the per-iteration integrator that ties it together
//
// ✨ Design
//
//   - Reference-connected papers attract, all papers repel, close contact is
//     damped so clusters don't collapse into singularities.
//   - Parsing paper metadata, category/colour lookup for rendering, drawing,
//     the interactive UI, and persistence of final coordinates are all
//     external collaborators — this module only produces positions.
//
// Under the hood, a layout.Layout chain is built from a []*paper.Paper, and
// a driver.Driver steps force.ApplyAttractive/ApplyRepulsive each iteration
// against a rebuilt quadtree.Tree, handing back exported integer
// coordinates for a renderer.
//
// The config, logging, and cmd/layoutctl packages are the ambient layer
// around that core: a viper-backed Config, a leveled Logger, and a cobra
// CLI that loads a snapshot and drives a run end to end.
//
//	go get github.com/vseledkin/paperlayout
package paperlayout
