package paper

import "testing"

func TestDateRoundTrip(t *testing.T) {
	for year := 1800; year <= 2030; year += 7 {
		for month := 1; month <= 12; month++ {
			for day := 1; day <= 28; day += 9 {
				id := DateToID(year, month, day)
				gy, gm, gd := IDToDate(id)
				if gy != year || gm != month || gd != day {
					t.Fatalf("round trip (%d,%d,%d) -> id %d -> (%d,%d,%d)", year, month, day, id, gy, gm, gd)
				}
			}
		}
	}
}

func TestNewClearsFinestNodeIndex(t *testing.T) {
	p := New(DateToID(2000, 1, 1))
	if p.FinestNodeIndex != -1 {
		t.Fatalf("expected FinestNodeIndex -1, got %d", p.FinestNodeIndex)
	}
	if p.ID != DateToID(2000, 1, 1) {
		t.Fatalf("id not set")
	}
}

func TestCategoryRegistrationAndUnknown(t *testing.T) {
	c := RegisterCategory("hep-th-test")
	if c == CatUnknown {
		t.Fatalf("registered category collided with CatUnknown")
	}
	if got := ParseCategory("hep-th-test"); got != c {
		t.Fatalf("ParseCategory = %v, want %v", got, c)
	}
	if got := ParseCategory("never-registered-xyz"); got != CatUnknown {
		t.Fatalf("ParseCategory of unknown name = %v, want CatUnknown", got)
	}
	if CatUnknown.String() != "unknown" {
		t.Fatalf("CatUnknown.String() = %q", CatUnknown.String())
	}
}
