package engine

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/ArowuTest/lotto645-backend/internal/models"
)

// DrawStore holds the historical draws, ordered ascending by draw number.
//
// Readers work on an immutable snapshot and never block. Load and Replace
// build a new snapshot and swap it in, so a reader sees either the old or
// the new dataset, never a mix.
type DrawStore struct {
	mu   sync.Mutex // serializes writers
	snap atomic.Pointer[[]models.Draw]
}

// NewDrawStore creates an empty store
func NewDrawStore() *DrawStore {
	s := &DrawStore{}
	empty := []models.Draw{}
	s.snap.Store(&empty)
	return s
}

// Load parses raw rows and replaces the store contents. Malformed rows are
// dropped and listed in the report.
func (s *DrawStore) Load(raw []RawRecord) LoadReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := LoadReport{Rejected: []RejectedRecord{}}
	draws := make([]models.Draw, 0, len(raw))
	indexes := make([]int, 0, len(raw))

	for i, r := range raw {
		d, err := ParseRecord(r)
		if err != nil {
			report.Rejected = append(report.Rejected, rejected(i, r.DrawNumber, err))
			continue
		}
		draws = append(draws, d)
		indexes = append(indexes, i)
	}

	kept, dups := dedupe(draws, indexes)
	report.Rejected = append(report.Rejected, dups...)
	sort.SliceStable(report.Rejected, func(a, b int) bool {
		return report.Rejected[a].Index < report.Rejected[b].Index
	})

	s.snap.Store(&kept)
	report.Loaded = len(kept)
	return report
}

// Replace swaps in already-typed draws, e.g. rows read back from the database
func (s *DrawStore) Replace(draws []models.Draw) LoadReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]models.Draw, len(draws))
	copy(cp, draws)
	indexes := make([]int, len(cp))
	for i := range indexes {
		indexes[i] = i
	}

	kept, dups := dedupe(cp, indexes)
	s.snap.Store(&kept)
	if dups == nil {
		dups = []RejectedRecord{}
	}
	return LoadReport{Loaded: len(kept), Rejected: dups}
}

// dedupe sorts by draw number and keeps the last row seen for a number
func dedupe(draws []models.Draw, indexes []int) ([]models.Draw, []RejectedRecord) {
	order := make([]int, len(draws))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return draws[order[a]].DrawNumber < draws[order[b]].DrawNumber
	})

	var dups []RejectedRecord
	kept := make([]models.Draw, 0, len(draws))
	for i, idx := range order {
		if i+1 < len(order) && draws[order[i+1]].DrawNumber == draws[idx].DrawNumber {
			err := fmt.Errorf("%w: duplicate draw number %d", ErrMalformedRecord, draws[idx].DrawNumber)
			dups = append(dups, rejected(indexes[idx], fmt.Sprint(draws[idx].DrawNumber), err))
			continue
		}
		kept = append(kept, draws[idx])
	}
	return kept, dups
}

func rejected(index int, drawNumber string, err error) RejectedRecord {
	r := RejectedRecord{Index: index, DrawNumber: drawNumber, Reason: err.Error(), err: err}
	if !errors.Is(err, ErrMalformedRecord) {
		r.err = fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	return r
}

func (s *DrawStore) current() []models.Draw {
	return *s.snap.Load()
}

// Len returns the number of draws held
func (s *DrawStore) Len() int {
	return len(s.current())
}

// All returns a copy of every draw, ascending
func (s *DrawStore) All() []models.Draw {
	draws := s.current()
	out := make([]models.Draw, len(draws))
	copy(out, draws)
	return out
}

// Latest returns the draw with the greatest draw number.
// ok is false when the store is empty.
func (s *DrawStore) Latest() (models.Draw, bool) {
	draws := s.current()
	if len(draws) == 0 {
		return models.Draw{}, false
	}
	return draws[len(draws)-1], true
}

// Get returns the draw with the given number
func (s *DrawStore) Get(drawNumber int) (models.Draw, bool) {
	draws := s.current()
	i := sort.Search(len(draws), func(i int) bool { return draws[i].DrawNumber >= drawNumber })
	if i < len(draws) && draws[i].DrawNumber == drawNumber {
		return draws[i], true
	}
	return models.Draw{}, false
}

// Window returns up to count of the most recent draws whose number is at or
// before endDrawNumber, ascending. The right edge is the nearest draw at or
// before endDrawNumber, so gaps in numbering are tolerated.
func (s *DrawStore) Window(endDrawNumber, count int) []models.Draw {
	draws := s.current()
	if count <= 0 || len(draws) == 0 {
		return []models.Draw{}
	}

	// first index past the right edge
	end := sort.Search(len(draws), func(i int) bool { return draws[i].DrawNumber > endDrawNumber })
	if end == 0 {
		return []models.Draw{}
	}
	start := end - count
	if start < 0 {
		start = 0
	}

	out := make([]models.Draw, end-start)
	copy(out, draws[start:end])
	return out
}

// Between returns draws with start <= number <= end, ascending.
// A zero bound is open.
func (s *DrawStore) Between(start, end int) []models.Draw {
	draws := s.current()
	lo := 0
	if start > 0 {
		lo = sort.Search(len(draws), func(i int) bool { return draws[i].DrawNumber >= start })
	}
	hi := len(draws)
	if end > 0 {
		hi = sort.Search(len(draws), func(i int) bool { return draws[i].DrawNumber > end })
	}
	if lo >= hi {
		return []models.Draw{}
	}
	out := make([]models.Draw, hi-lo)
	copy(out, draws[lo:hi])
	return out
}
