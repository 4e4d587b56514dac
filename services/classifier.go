package services

import (
	"nshopping-manager/models"
)

// topRankCutoff is the last rank reported regardless of merchant.
const topRankCutoff = 3

// Classifier picks the single listing worth reporting for a keyword.
type Classifier struct {
	matcher *NameMatcher
	canon   *Canonicalizer
}

// NewClassifier wires a classifier from a brand configuration.
func NewClassifier(cfg models.BrandConfig) *Classifier {
	return &Classifier{
		matcher: NewNameMatcher(cfg),
		canon:   NewCanonicalizer(cfg.Rules),
	}
}

// Classify scans listings in rank order and returns a row for the first one
// that is an own brand, a competitor or in the top three. Scanning stops
// there, so a later brand match is never looked at. When nothing qualifies
// a NONE placeholder row is returned if alwaysRecord is set; otherwise ok
// is false.
func (c *Classifier) Classify(date, keyword string, metrics models.KeywordMetrics,
	listings []models.Listing, alwaysRecord bool) (row models.ClassifiedRow, ok bool) {

	for _, l := range listings {
		normalized, category := c.matcher.Match(l.MerchantName)
		if category == "" {
			if l.Rank > topRankCutoff {
				continue
			}
			category = models.CategoryTopRank
		}

		return models.ClassifiedRow{
			Date:         date,
			Keyword:      keyword,
			SearchVolume: metrics.SearchVolume,
			AvgClicks:    metrics.AvgClicks,
			CTR:          metrics.CTR,
			Rank:         l.Rank,
			MerchantName: c.canon.Canonicalize(l.MerchantName, normalized, category),
			Title:        l.Title,
			Price:        l.Price,
			Link:         l.Link,
			Category:     category,
		}, true
	}

	if !alwaysRecord {
		return models.ClassifiedRow{}, false
	}
	return models.ClassifiedRow{
		Date:         date,
		Keyword:      keyword,
		SearchVolume: metrics.SearchVolume,
		AvgClicks:    metrics.AvgClicks,
		CTR:          metrics.CTR,
		MerchantName: models.Placeholder,
		Title:        models.Placeholder,
		Link:         models.Placeholder,
		Category:     models.CategoryNone,
	}, true
}
