package services

import (
	"strings"

	"nshopping-manager/models"
)

// PlacementScanner walks every listing of a keyword and keeps the best rank
// of each canonical brand and of the own brands overall.
type PlacementScanner struct {
	matcher    *NameMatcher
	rules      []models.CanonicalRule
	categories []models.Category
}

// NewPlacementScanner tracks one brand per canonical rule. A label's
// category comes from matching the label itself against the brand lists.
func NewPlacementScanner(cfg models.BrandConfig) *PlacementScanner {
	s := &PlacementScanner{
		matcher: NewNameMatcher(cfg),
		rules:   NewCanonicalizer(cfg.Rules).rules,
	}
	s.categories = make([]models.Category, len(s.rules))
	for i, r := range s.rules {
		_, s.categories[i] = s.matcher.Match(r.Label)
	}
	return s
}

// Scan returns the placement of keyword over listings. An empty list gives
// no ranks and a placeholder top merchant.
func (s *PlacementScanner) Scan(keyword string, listings []models.Listing) models.Placement {
	p := models.Placement{
		Keyword:     keyword,
		TopMerchant: models.Placeholder,
		Brands:      make([]models.BrandRank, len(s.rules)),
	}
	for i, r := range s.rules {
		p.Brands[i] = models.BrandRank{Label: r.Label, Category: s.categories[i]}
	}
	if len(listings) > 0 {
		p.TopMerchant = listings[0].MerchantName
	}

	for _, l := range listings {
		if l.Rank <= 0 {
			continue
		}
		normalized, category := s.matcher.Match(l.MerchantName)
		if category == models.CategoryOwn {
			p.OwnBest = better(p.OwnBest, l.Rank)
		}
		for i, r := range s.rules {
			for _, tok := range r.Tokens {
				if strings.Contains(normalized, tok) {
					p.Brands[i].Rank = better(p.Brands[i].Rank, l.Rank)
					break
				}
			}
		}
	}
	return p
}

// better picks the lower of two ranks where 0 means unset.
func better(cur, rank int) int {
	if cur == 0 || rank < cur {
		return rank
	}
	return cur
}
