package paper

// BuildCitationLinks derives every paper's back-pointer Cites slice from the
// forward Refs links, and assigns Index to each paper's position in papers
// (papers must already be sorted by ID; see ErrNotSorted and Layout's binary
// search contract). Two passes: first count incoming edges per paper and
// allocate, then fill. After this call len(p.Cites) equals the number of
// refs across all papers that name p.
//
// Go has no allocation-failure contract to propagate (unlike the C source,
// which returns false on out-of-memory) so this never fails.
func BuildCitationLinks(papers []*Paper) {
	for i, p := range papers {
		p.Index = i
	}

	counts := make([]int, len(papers))
	for _, p := range papers {
		for _, ref := range p.Refs {
			counts[ref.Index]++
		}
	}

	for i, p := range papers {
		if counts[i] > 0 {
			p.Cites = make([]*Paper, counts[i])
		} else {
			p.Cites = nil
		}
	}

	fillPos := make([]int, len(papers))
	for _, p := range papers {
		for _, ref := range p.Refs {
			j := ref.Index
			ref.Cites[fillPos[j]] = p
			fillPos[j]++
		}
	}
}

// RecomputeNumIncludedCites zeroes and rebuilds NumIncludedCites for every
// paper: a reference only counts if the citing paper is Included, the
// reference has a positive ref-frequency weight, and the cited paper is
// Included.
func RecomputeNumIncludedCites(papers []*Paper) {
	for _, p := range papers {
		p.NumIncludedCites = 0
	}
	for _, p := range papers {
		if !p.Included {
			continue
		}
		for j, ref := range p.Refs {
			if p.RefsRefFreq[j] > 0 && ref.Included {
				ref.NumIncludedCites++
			}
		}
	}
}
