package models

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Category labels why a row was reported.
type Category string

const (
	CategoryOwn        Category = "OWN"
	CategoryCompetitor Category = "COMPETITOR"
	CategoryTopRank    Category = "TOP_RANK"
	CategoryNone       Category = "NONE"
)

// Placeholder is written in place of rank, merchant, title and link when a
// keyword had no qualifying listing.
const Placeholder = "-"

// KeywordMetrics is the monthly search demand for one keyword.
type KeywordMetrics struct {
	SearchVolume int64
	AvgClicks    float64
	CTR          float64
}

// NewKeywordMetrics derives CTR (percent, 2 decimals) from volume and clicks.
func NewKeywordMetrics(volume int64, clicks float64) KeywordMetrics {
	if volume < 0 {
		volume = 0
	}
	if clicks < 0 {
		clicks = 0
	}
	m := KeywordMetrics{SearchVolume: volume, AvgClicks: clicks}
	if volume > 0 {
		m.CTR = decimal.NewFromFloat(clicks).
			Div(decimal.NewFromInt(volume)).
			Mul(decimal.NewFromInt(100)).
			Round(2).
			InexactFloat64()
	}
	return m
}

// ClassifiedRow is one labeled output record. Rank 0 means "not found".
type ClassifiedRow struct {
	Date         string
	Keyword      string
	SearchVolume int64
	AvgClicks    float64
	CTR          float64
	Rank         int
	MerchantName string
	Title        string
	Price        int64
	Link         string
	Category     Category
}

// RankLabel renders the rank column, using the placeholder when not found.
func (r ClassifiedRow) RankLabel() string {
	if r.Rank <= 0 {
		return Placeholder
	}
	return strconv.Itoa(r.Rank)
}
