// Package snapshot loads the JSON test-fixture format layoutctl's run and
// inspect subcommands read. This is explicitly not a parser for a real
// paperscape corpus (spec.md §1 puts input parsing out of scope) — it
// exists only so the CLI has something concrete to build a layout from in
// this repo's own tests and examples.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/vseledkin/paperlayout/paper"
)

// Ref is one reference entry in the fixture format.
type Ref struct {
	ID          uint32  `json:"id"`
	RefFreq     int     `json:"ref_freq"`
	OtherWeight float64 `json:"other_weight,omitempty"`
}

// PaperRecord is one paper entry in the fixture format, mirroring the
// paper input contract of spec.md §6.
type PaperRecord struct {
	ID       uint32  `json:"id"`
	Category string  `json:"category"`
	Included bool    `json:"included"`
	Mass     float64 `json:"mass"`
	Radius   float64 `json:"radius"`
	Age      float64 `json:"age"`
	Refs     []Ref   `json:"refs"`
}

// Document is the top-level fixture shape: a flat list of papers.
type Document struct {
	Papers []PaperRecord `json:"papers"`
}

// Load parses r as a Document and returns the papers it describes, sorted
// by id (required by layout.BuildFromPapers) with citation back-links
// already built.
func Load(r io.Reader) ([]*paper.Paper, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}

	byID := make(map[uint32]*paper.Paper, len(doc.Papers))
	papers := make([]*paper.Paper, len(doc.Papers))
	for i, rec := range doc.Papers {
		p := paper.New(rec.ID)
		p.Category = paper.ParseCategory(rec.Category)
		p.Included = rec.Included
		p.Mass = rec.Mass
		p.Radius = rec.Radius
		p.Age = rec.Age
		papers[i] = p
		byID[rec.ID] = p
	}

	for i, rec := range doc.Papers {
		p := papers[i]
		for _, ref := range rec.Refs {
			target, ok := byID[ref.ID]
			if !ok {
				return nil, fmt.Errorf("snapshot: paper %d references unknown paper %d", rec.ID, ref.ID)
			}
			p.Refs = append(p.Refs, target)
			p.RefsRefFreq = append(p.RefsRefFreq, ref.RefFreq)
			p.RefsOtherWeight = append(p.RefsOtherWeight, ref.OtherWeight)
		}
	}

	sort.Slice(papers, func(i, j int) bool { return papers[i].ID < papers[j].ID })
	paper.BuildCitationLinks(papers)
	return papers, nil
}
