package paper

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
)

// doublingPrimes are approximately-doubling prime table sizes used to grow
// the keyword chain without ever rehashing existing entries (so returned
// *Entry pointers stay valid for the lifetime of the Set).
var doublingPrimes = []int{
	647, 1229, 2297, 4243, 7829, 14347, 26017, 47149, 84947,
	152443, 273253, 488399, 869927, 1547173, 2745121, 4861607,
}

// Entry is one interned keyword. Its address is stable: once returned by
// Set.LookupOrInsert, it never moves or is reallocated.
type Entry struct {
	Keyword []byte
}

type keywordPool struct {
	size  int
	table []Entry
	used  int
	full  bool
}

// Set is a chain of open-addressed hash tables of geometrically increasing
// size. Each table becomes read-only (full) at 80% occupancy; lookup probes
// every table in chain order (most recently grown table first); insertion
// uses the first non-full table with room, or grows a new one at the head.
// This gives O(1) amortised insertion without rehashing existing entries.
type Set struct {
	pools []*keywordPool // pools[0] is the most recently grown table
}

// NewSet returns an empty keyword set.
func NewSet() *Set {
	return &Set{}
}

// Total returns the number of distinct keywords interned so far.
func (s *Set) Total() int {
	n := 0
	for _, p := range s.pools {
		n += p.used
	}
	return n
}

// LookupOrInsert returns the interned *Entry for kw, copying kw into owned
// storage on first insertion. Returns nil for an empty kw.
func (s *Set) LookupOrInsert(kw []byte) *Entry {
	if len(kw) == 0 {
		return nil
	}

	h := xxhash.Sum64(kw)

	var availPool *keywordPool
	availPos := 0

	for _, p := range s.pools {
		pos := int(h % uint64(p.size))
		for {
			e := &p.table[pos]
			if e.Keyword == nil {
				if !p.full {
					availPool = p
					availPos = pos
				}
				break
			}
			if bytes.Equal(e.Keyword, kw) {
				return e
			}
			pos = (pos + 1) % p.size
		}
	}

	if availPool != nil {
		availPool.table[availPos].Keyword = append([]byte(nil), kw...)
		availPool.used++
		if 10*availPool.used > 8*availPool.size {
			availPool.full = true
		}
		return &availPool.table[availPos]
	}

	p := s.growPool()
	pos := int(h % uint64(p.size))
	p.table[pos].Keyword = append([]byte(nil), kw...)
	p.used = 1
	return &p.table[pos]
}

// growPool allocates a new table at the chain head, sized to the next
// doubling prime larger than the current head's size (or the first prime,
// for the very first table).
func (s *Set) growPool() *keywordPool {
	size := doublingPrimes[0]
	if len(s.pools) > 0 {
		head := s.pools[0]
		size = doublingPrimes[len(doublingPrimes)-1]
		for _, prime := range doublingPrimes {
			if prime > head.size {
				size = prime
				break
			}
		}
	}
	p := &keywordPool{size: size, table: make([]Entry, size)}
	s.pools = append([]*keywordPool{p}, s.pools...)
	return p
}
