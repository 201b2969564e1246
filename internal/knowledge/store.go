// Package knowledge holds the read-only lookup tables the server is started
// with: the relic knowledge base and the video alias table.
//
// Both tables are built once and never mutated, so they are safe for
// concurrent reads without locking.
package knowledge

import (
	"fmt"

	"github.com/cloo-solutions/relicguide/internal/domain"
)

// Store is an immutable, ordered mapping from relic id to relic record.
type Store struct {
	order  []string
	relics map[string]domain.Relic
}

// NewStore builds a Store preserving the order of relics.
func NewStore(relics []domain.Relic) (*Store, error) {
	s := &Store{
		order:  make([]string, 0, len(relics)),
		relics: make(map[string]domain.Relic, len(relics)),
	}

	for i := range relics {
		r := relics[i]
		if err := domain.ValidateRelic(&r); err != nil {
			return nil, err
		}
		if _, exists := s.relics[r.ID]; exists {
			return nil, fmt.Errorf("duplicate relic id %q", r.ID)
		}
		s.order = append(s.order, r.ID)
		s.relics[r.ID] = r
	}

	return s, nil
}

// Get returns the relic with the given id.
func (s *Store) Get(id string) (domain.Relic, bool) {
	r, ok := s.relics[id]
	return r, ok
}

// Lookup returns the relic with the given id or domain.ErrRelicNotFound.
func (s *Store) Lookup(id string) (domain.Relic, error) {
	r, ok := s.relics[id]
	if !ok {
		return domain.Relic{}, domain.ErrRelicNotFound
	}
	return r, nil
}

// Summaries returns the list projection of every relic in load order.
func (s *Store) Summaries() []domain.RelicSummary {
	out := make([]domain.RelicSummary, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.relics[id].Listing())
	}
	return out
}

// Len returns the number of relics.
func (s *Store) Len() int {
	return len(s.order)
}
