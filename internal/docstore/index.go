package docstore

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Index describes a provisioned composite index: equality fields followed by
// the ordered field.
type Index struct {
	Collection string
	Equality   []string
	OrderBy    string
}

// ParseIndex reads the "collection:eqField,eqField:orderField" form used in configuration.
func ParseIndex(s string) (Index, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return Index{}, fmt.Errorf("invalid index %q: want collection:eqField[,eqField]:orderField", s)
	}
	var eq []string
	for _, f := range strings.Split(parts[1], ",") {
		if f = strings.TrimSpace(f); f != "" {
			eq = append(eq, f)
		}
	}
	return Index{Collection: parts[0], Equality: eq, OrderBy: parts[2]}, nil
}

func (ix Index) key() string {
	eq := append([]string(nil), ix.Equality...)
	sort.Strings(eq)
	return ix.Collection + ":" + strings.Join(eq, ",") + ":" + ix.OrderBy
}

// RequiredIndex returns the composite index q needs, if any. Queries that
// combine an equality filter with an order-by on a different field need one.
func RequiredIndex(q Query) (Index, bool) {
	if len(q.OrderBy) == 0 || len(q.Filters) == 0 {
		return Index{}, false
	}
	orderField := q.OrderBy[0].Field
	var eq []string
	needs := false
	for _, f := range q.Filters {
		eq = append(eq, f.Field)
		if f.Field != orderField {
			needs = true
		}
	}
	if !needs {
		return Index{}, false
	}
	return Index{Collection: q.Collection, Equality: eq, OrderBy: orderField}, true
}

// IndexSet is the registry of provisioned indexes.
type IndexSet struct {
	mu      sync.RWMutex
	indexes map[string]Index
}

func NewIndexSet(indexes ...Index) *IndexSet {
	s := &IndexSet{indexes: map[string]Index{}}
	for _, ix := range indexes {
		s.Add(ix)
	}
	return s
}

// Add provisions ix.
func (s *IndexSet) Add(ix Index) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.indexes[ix.key()] = ix
}

// Check returns ErrIndexUnavailable when q needs an index that is missing.
func (s *IndexSet) Check(q Query) error {
	need, ok := RequiredIndex(q)
	if !ok {
		return nil
	}
	if s != nil {
		s.mu.RLock()
		_, have := s.indexes[need.key()]
		s.mu.RUnlock()
		if have {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrIndexUnavailable, need.key())
}
