package paper

import "testing"

func TestBuildCitationLinksSymmetry(t *testing.T) {
	a := New(DateToID(2000, 1, 1))
	b := New(DateToID(2000, 1, 2))
	c := New(DateToID(2000, 1, 3))
	// b cites a, c cites a and b
	b.Refs = []*Paper{a}
	b.RefsRefFreq = []int{1}
	c.Refs = []*Paper{a, b}
	c.RefsRefFreq = []int{1, 1}

	papers := []*Paper{a, b, c}
	BuildCitationLinks(papers)

	if len(a.Cites) != 2 {
		t.Fatalf("a.Cites = %v, want 2 entries", a.Cites)
	}
	if len(b.Cites) != 1 {
		t.Fatalf("b.Cites = %v, want 1 entry", b.Cites)
	}
	if len(c.Cites) != 0 {
		t.Fatalf("c.Cites = %v, want 0 entries", c.Cites)
	}

	contains := func(ps []*Paper, target *Paper) bool {
		for _, p := range ps {
			if p == target {
				return true
			}
		}
		return false
	}
	if !contains(a.Cites, b) || !contains(a.Cites, c) {
		t.Fatalf("a.Cites missing expected citers: %v", a.Cites)
	}
	if !contains(b.Cites, c) {
		t.Fatalf("b.Cites missing c: %v", b.Cites)
	}
}

func TestRecomputeNumIncludedCites(t *testing.T) {
	a := New(DateToID(2000, 1, 1))
	b := New(DateToID(2000, 1, 2))
	a.Included = true
	b.Included = true
	b.Refs = []*Paper{a}
	b.RefsRefFreq = []int{1}

	papers := []*Paper{a, b}
	BuildCitationLinks(papers)
	RecomputeNumIncludedCites(papers)

	if a.NumIncludedCites != 1 {
		t.Fatalf("a.NumIncludedCites = %d, want 1", a.NumIncludedCites)
	}
	if b.NumIncludedCites != 0 {
		t.Fatalf("b.NumIncludedCites = %d, want 0", b.NumIncludedCites)
	}

	// a non-included citer doesn't count
	a.NumIncludedCites = 0
	b.Included = false
	RecomputeNumIncludedCites(papers)
	if a.NumIncludedCites != 0 {
		t.Fatalf("a.NumIncludedCites = %d, want 0 when citer excluded", a.NumIncludedCites)
	}
}
