package catalog

import "sync/atomic"

// Bundle pairs the two catalogs that must stay consistent with each other
// during an evaluation.
type Bundle struct {
	Rules *RuleCatalog
	Drugs *DrugCatalog
}

// Store holds the current catalog bundle behind an atomic pointer. Reload
// swaps in a complete new bundle in one step, so an in-flight evaluation
// that loaded the pointer keeps seeing a single consistent catalog state,
// never a partially updated one.
type Store struct {
	current atomic.Pointer[Bundle]
}

// NewStore creates a store seeded with the given bundle.
func NewStore(rules *RuleCatalog, drugs *DrugCatalog) *Store {
	s := &Store{}
	s.current.Store(&Bundle{Rules: rules, Drugs: drugs})
	return s
}

// Current returns the catalog bundle as of this instant. Callers hold on to
// the returned bundle for the duration of one evaluation.
func (s *Store) Current() *Bundle {
	return s.current.Load()
}

// Swap atomically replaces the bundle. The old bundle stays valid for
// evaluations that already loaded it.
func (s *Store) Swap(rules *RuleCatalog, drugs *DrugCatalog) {
	s.current.Store(&Bundle{Rules: rules, Drugs: drugs})
}
