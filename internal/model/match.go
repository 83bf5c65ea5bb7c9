package model

// MatchKind distinguishes how a pair of rows was matched.
type MatchKind string

const (
	MatchExact MatchKind = "exact"
	MatchFuzzy MatchKind = "fuzzy"
)

// MatchPair links one base row to one candidate row via their canonical keys.
// Score is 1.0 for exact matches and 1 - distance/max(len) for fuzzy ones.
type MatchPair struct {
	BaseID       string    `json:"base_id" csv:"base_id"`
	CandidateID  string    `json:"candidate_id" csv:"candidate_id"`
	BaseKey      string    `json:"base_key" csv:"base_key"`
	CandidateKey string    `json:"candidate_key" csv:"candidate_key"`
	Kind         MatchKind `json:"kind" csv:"kind"`
	Score        float64   `json:"score" csv:"score"`
}

// MatchResult partitions the base dataset's rows after a matching run.
// Every base row appears either in at least one pair or in Unmatched;
// Unnormalizable rows (no extractable key) are always unmatched and are
// reported separately so callers can distinguish "no counterpart" from
// "no usable URL".
type MatchResult struct {
	Pairs          []MatchPair `json:"pairs"`
	Unmatched      []RawRow    `json:"unmatched"`
	Unnormalizable []RawRow    `json:"unnormalizable"`
}

// ExactCount returns the number of exact pairs.
func (r *MatchResult) ExactCount() int {
	n := 0
	for _, p := range r.Pairs {
		if p.Kind == MatchExact {
			n++
		}
	}
	return n
}

// FuzzyCount returns the number of fuzzy pairs.
func (r *MatchResult) FuzzyCount() int {
	return len(r.Pairs) - r.ExactCount()
}
