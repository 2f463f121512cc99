// Package analysis implements the two graph-wide passes run once after a
// paper.Paper snapshot is loaded: connected-component colouring and
// transitive reduction of the citation DAG.
package analysis

import (
	"fmt"
	"sort"

	"github.com/vseledkin/paperlayout/paper"
)

// Logger is the minimal surface RecomputeColours needs for its verbose
// histogram. logging.DefaultLogger satisfies it structurally.
type Logger interface {
	Info(msg string, args ...interface{})
}

// ColourOptions configures RecomputeColours.
type ColourOptions struct {
	// Verbose, when true, logs a histogram of component sizes through
	// Logger (if non-nil) once colouring completes.
	Verbose bool
	Logger  Logger
}

// RecomputeColours assigns a connected-component colour to every included
// paper by flood-filling across both Refs and Cites edges, restricted to
// included neighbours. Non-included papers are left at colour 0.
// NumWithMyColour is populated for every paper (0 for the non-included).
func RecomputeColours(papers []*paper.Paper, opts ColourOptions) {
	for _, p := range papers {
		p.Colour = 0
	}

	curColour := 1
	stack := make([]*paper.Paper, 0, 1024)
	for _, p := range papers {
		if p.Included && p.Colour == 0 {
			paint(p, curColour, &stack)
			curColour++
		}
	}

	numWithColour := make([]int, curColour)
	for _, p := range papers {
		if p.Colour != 0 {
			numWithColour[p.Colour]++
		}
	}
	for _, p := range papers {
		p.NumWithMyColour = numWithColour[p.Colour]
	}

	if opts.Verbose && opts.Logger != nil {
		logHistogram(opts.Logger, numWithColour[1:])
	}
}

// paint floods colour out from p across included neighbours, using an
// explicit LIFO stack so pathological graphs can't blow the call stack.
func paint(p *paper.Paper, colour int, stack *[]*paper.Paper) {
	if p.Colour != 0 {
		panic("analysis: paint called on a paper that is already coloured")
	}
	p.Colour = colour
	*stack = append(*stack, p)

	for len(*stack) > 0 {
		n := len(*stack) - 1
		cur := (*stack)[n]
		*stack = (*stack)[:n]

		for _, p2 := range cur.Refs {
			if p2.Included && p2.Colour == 0 {
				p2.Colour = colour
				*stack = append(*stack, p2)
			}
		}
		for _, p2 := range cur.Cites {
			if p2.Included && p2.Colour == 0 {
				p2.Colour = colour
				*stack = append(*stack, p2)
			}
		}
	}
}

// logHistogram logs how many components share each distinct size.
func logHistogram(l Logger, sizes []int) {
	bySize := make(map[int]int)
	for _, n := range sizes {
		bySize[n]++
	}
	distinct := make([]int, 0, len(bySize))
	for n := range bySize {
		distinct = append(distinct, n)
	}
	sort.Ints(distinct)

	l.Info(fmt.Sprintf("%d colours, %d unique sizes", len(sizes), len(distinct)))
	for _, n := range distinct {
		l.Info(fmt.Sprintf("size %d occurred %d times", n, bySize[n]))
	}
}
