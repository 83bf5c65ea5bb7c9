// Package index groups dataset rows by their canonical key.
package index

import (
	"github.com/sells-group/match-cli/internal/model"
	"github.com/sells-group/match-cli/internal/normalize"
)

// Index maps canonical keys to the rows that produced them, preserving
// original row order both within a key's bucket and across keys. It is
// immutable once built and safe for concurrent reads.
type Index struct {
	keys           []string                   // distinct keys in first-occurrence order
	buckets        map[string][]model.RawRow  // key -> rows in input order
	unnormalizable []model.RawRow             // rows with no extractable key
	total          int
}

// Build normalizes every row with the given kind and groups rows by key.
// Rows whose key is empty are recorded as unnormalizable instead of indexed.
func Build(rows []model.RawRow, kind normalize.Kind) *Index {
	idx := &Index{
		buckets: make(map[string][]model.RawRow, len(rows)),
		total:   len(rows),
	}
	for _, row := range rows {
		key := normalize.Normalize(row.URL, kind)
		if key == "" {
			idx.unnormalizable = append(idx.unnormalizable, row)
			continue
		}
		if _, seen := idx.buckets[key]; !seen {
			idx.keys = append(idx.keys, key)
		}
		idx.buckets[key] = append(idx.buckets[key], row)
	}
	return idx
}

// Keys returns the distinct canonical keys in first-occurrence order.
func (i *Index) Keys() []string { return i.keys }

// Rows returns the rows bucketed under key, in original dataset order.
func (i *Index) Rows(key string) []model.RawRow { return i.buckets[key] }

// Has reports whether key is present in the index.
func (i *Index) Has(key string) bool {
	_, ok := i.buckets[key]
	return ok
}

// Unnormalizable returns the rows that produced no canonical key.
func (i *Index) Unnormalizable() []model.RawRow { return i.unnormalizable }

// Len returns the number of distinct keys.
func (i *Index) Len() int { return len(i.keys) }

// Total returns the number of input rows, indexed or not.
func (i *Index) Total() int { return i.total }
