package model

// RawRow is one record from a source dataset: an opaque identifier plus the
// raw URL-bearing field value. Rows are owned by the dataset loader and never
// mutated by the matching core.
type RawRow struct {
	ID  string `json:"id" csv:"id"`
	URL string `json:"url" csv:"url"`
}

// Table is an ordered collection of rows loaded from one dataset. Order is
// significant: first-occurrence-wins policies downstream depend on it.
type Table struct {
	Name string   `json:"name"`
	Rows []RawRow `json:"rows"`
}
