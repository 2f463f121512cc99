package snapshot

import (
	"strings"
	"testing"
)

const fixture = `{
  "papers": [
    {"id": 1, "category": "physics", "included": true, "mass": 1, "radius": 0.5, "age": 0.1, "refs": []},
    {"id": 2, "category": "physics", "included": true, "mass": 1, "radius": 0.5, "age": 0.2,
     "refs": [{"id": 1, "ref_freq": 1}]}
  ]
}`

func TestLoadBuildsCitationLinks(t *testing.T) {
	papers, err := Load(strings.NewReader(fixture))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(papers) != 2 {
		t.Fatalf("expected 2 papers, got %d", len(papers))
	}
	if papers[0].ID != 1 || papers[1].ID != 2 {
		t.Fatalf("expected papers sorted by id, got %d, %d", papers[0].ID, papers[1].ID)
	}
	if len(papers[0].Cites) != 1 || papers[0].Cites[0] != papers[1] {
		t.Fatalf("expected paper 1's Cites to include paper 2")
	}
}

func TestLoadRejectsUnknownReference(t *testing.T) {
	doc := `{"papers": [{"id": 1, "refs": [{"id": 99, "ref_freq": 1}]}]}`
	if _, err := Load(strings.NewReader(doc)); err == nil {
		t.Fatalf("expected error for reference to unknown paper")
	}
}
