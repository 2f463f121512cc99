package analysis

import "github.com/vseledkin/paperlayout/paper"

// Tred transitively reduces the citation DAG in place. For each paper p, a
// reference to an older paper (ref.Index < p.Index) is kept
// (RefsTredComputed[j] = 1) unless an already-kept, older reference from p
// reaches the same paper through some other path — in which case the direct
// edge is suppressed and the surviving path's edges each have
// RefsTredComputed incremented once per hit. That running integer is an
// edge-multiplicity hint for a renderer (thicker lines), never a boolean.
//
// References to the non-past (ref.Index >= p.Index) are always marked kept
// and skipped; they can't participate in a transitive shortcut since they
// don't precede p.
func Tred(papers []*paper.Paper) {
	for _, p := range papers {
		p.TredVisitIndex = 0
		p.TredFollowBackPaper = nil
		p.TredFollowBackRef = 0
		if p.RefsTredComputed == nil && len(p.Refs) > 0 {
			p.RefsTredComputed = make([]int, len(p.Refs))
		}
		for j := range p.RefsTredComputed {
			p.RefsTredComputed[j] = 0
		}
	}

	for _, p := range papers {
		p.TredFollowBackPaper = nil
		p.TredFollowBackRef = 0

		// newest to oldest
		for j := len(p.Refs) - 1; j >= 0; j-- {
			past := p.Refs[j]

			if past.Index >= p.Index {
				p.RefsTredComputed[j] = 1
				continue
			}

			if past.TredVisitIndex == p.Index {
				// already reached past in this outer iteration via
				// some other, longer route; thicken that path instead
				// of keeping the direct edge.
				p2 := past.TredFollowBackPaper
				ref := past.TredFollowBackRef
				for p2 != nil {
					p2.RefsTredComputed[ref]++
					ref = p2.TredFollowBackRef
					p2 = p2.TredFollowBackPaper
				}
				continue
			}

			p.RefsTredComputed[j] = 1
			markReachable(p.Index, past, p, j)
		}
	}
}

// markReachable DFSes from cur following only past, already-kept edges,
// recording for each newly visited paper how to follow back to p (via
// followBackPaper/followBackRef) so a later hit in the same outer iteration
// can walk the surviving path.
func markReachable(topIndex int, cur, followBackPaper *paper.Paper, followBackRef int) {
	if cur.TredVisitIndex == topIndex {
		return
	}
	cur.TredVisitIndex = topIndex
	cur.TredFollowBackPaper = followBackPaper
	cur.TredFollowBackRef = followBackRef

	for i, ref := range cur.Refs {
		if cur.RefsTredComputed[i] != 0 && ref.Index < cur.Index {
			markReachable(topIndex, ref, cur, i)
		}
	}
}
