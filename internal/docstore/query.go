package docstore

import (
	"encoding/json"
	"reflect"
	"sort"
	"strings"
	"time"
)

// Filter is an equality constraint on a top-level or dotted field path.
type Filter struct {
	Field string
	Value any
}

// Order sorts results by a field.
type Order struct {
	Field      string
	Descending bool
}

// Query selects documents of one collection.
type Query struct {
	Collection string
	Filters    []Filter
	OrderBy    []Order
	// Limit of zero means no limit.
	Limit int
}

// NewQuery starts a query on collection.
func NewQuery(collection string) Query {
	return Query{Collection: collection}
}

// Where adds an equality filter.
func (q Query) Where(field string, value any) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), Filter{Field: field, Value: value})
	return q
}

// OrderByField adds a sort key.
func (q Query) OrderByField(field string, descending bool) Query {
	q.OrderBy = append(append([]Order(nil), q.OrderBy...), Order{Field: field, Descending: descending})
	return q
}

// WithLimit caps the number of results.
func (q Query) WithLimit(n int) Query {
	q.Limit = n
	return q
}

// Unordered drops ordering and limit, leaving only the filters.
func (q Query) Unordered() Query {
	q.OrderBy = nil
	q.Limit = 0
	return q
}

// Matches reports whether a decoded document satisfies every filter.
func (q Query) Matches(fields map[string]any) bool {
	for _, f := range q.Filters {
		got, ok := lookup(fields, f.Field)
		if !ok {
			return false
		}
		if !reflect.DeepEqual(got, normalize(f.Value)) {
			return false
		}
	}
	return true
}

// FilterMap returns the filters as a nested JSON object, suitable for
// containment matching.
func (q Query) FilterMap() map[string]any {
	out := map[string]any{}
	for _, f := range q.Filters {
		parts := strings.Split(f.Field, ".")
		cur := out
		for _, p := range parts[:len(parts)-1] {
			next, ok := cur[p].(map[string]any)
			if !ok {
				next = map[string]any{}
				cur[p] = next
			}
			cur = next
		}
		cur[parts[len(parts)-1]] = normalize(f.Value)
	}
	return out
}

// Apply filters, sorts and limits docs in memory.
func (q Query) Apply(docs []*Document) []*Document {
	out := make([]*Document, 0, len(docs))
	decoded := make(map[*Document]map[string]any, len(docs))
	for _, d := range docs {
		if d.Collection != "" && d.Collection != q.Collection {
			continue
		}
		fields, err := d.Fields()
		if err != nil {
			continue
		}
		if !q.Matches(fields) {
			continue
		}
		decoded[d] = fields
		out = append(out, d)
	}
	sortDocuments(out, q.OrderBy, decoded)
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

// SortDocuments orders docs by the given keys, breaking ties by id.
func SortDocuments(docs []*Document, orders []Order) {
	decoded := make(map[*Document]map[string]any, len(docs))
	for _, d := range docs {
		fields, err := d.Fields()
		if err != nil {
			fields = map[string]any{}
		}
		decoded[d] = fields
	}
	sortDocuments(docs, orders, decoded)
}

func sortDocuments(docs []*Document, orders []Order, decoded map[*Document]map[string]any) {
	sort.SliceStable(docs, func(i, j int) bool {
		a, b := decoded[docs[i]], decoded[docs[j]]
		for _, o := range orders {
			av, _ := lookup(a, o.Field)
			bv, _ := lookup(b, o.Field)
			c := CompareValues(av, bv)
			if c == 0 {
				continue
			}
			if o.Descending {
				return c > 0
			}
			return c < 0
		}
		return docs[i].ID < docs[j].ID
	})
}

// CompareValues orders decoded JSON values. Missing values sort first,
// RFC 3339 strings compare as instants.
func CompareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	switch av := a.(type) {
	case float64:
		if bv, ok := b.(float64); ok {
			return cmpOrdered(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			default:
				return 1
			}
		}
	case string:
		if bv, ok := b.(string); ok {
			at, aerr := time.Parse(time.RFC3339Nano, av)
			bt, berr := time.Parse(time.RFC3339Nano, bv)
			if aerr == nil && berr == nil {
				return at.Compare(bt)
			}
			return strings.Compare(av, bv)
		}
	}
	return strings.Compare(typeRank(a), typeRank(b))
}

func cmpOrdered(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func typeRank(v any) string {
	switch v.(type) {
	case bool:
		return "1"
	case float64:
		return "2"
	case string:
		return "3"
	default:
		return "4"
	}
}

func lookup(fields map[string]any, path string) (any, bool) {
	var cur any = fields
	for _, p := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// normalize converts a Go value to the shape encoding/json decodes it into,
// so typed constants compare equal to stored fields.
func normalize(v any) any {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}
