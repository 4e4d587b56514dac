package models

// BrandRank is the best rank of one canonical brand label in a keyword's
// results. Rank 0 means the brand did not appear.
type BrandRank struct {
	Label    string
	Category Category
	Rank     int
}

// Placement records where tracked brands rank for one keyword across the
// whole result list, not only up to the reported row.
type Placement struct {
	Keyword     string
	TopMerchant string
	OwnBest     int
	Brands      []BrandRank
}

// Rank returns the best rank recorded for label, or 0.
func (p Placement) Rank(label string) int {
	for _, b := range p.Brands {
		if b.Label == label {
			return b.Rank
		}
	}
	return 0
}
