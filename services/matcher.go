package services

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"nshopping-manager/models"
)

// Normalize strips every whitespace rune and case-folds the remainder, so
// "DJI 정품판매점 드론박스" and "dji정품판매점드론박스" compare equal.
func Normalize(name string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, name)
	return cases.Fold().String(stripped)
}

// NewBrandList normalizes variants, dropping blanks and duplicates while
// keeping the configured order.
func NewBrandList(name string, variants []string) models.BrandList {
	list := models.BrandList{Name: name, Variants: make([]string, 0, len(variants))}
	seen := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		n := Normalize(v)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		list.Variants = append(list.Variants, n)
	}
	return list
}

// Matches reports whether any variant of list occurs inside the normalized
// candidate.
func Matches(normalizedCandidate string, list models.BrandList) bool {
	for _, v := range list.Variants {
		if v != "" && strings.Contains(normalizedCandidate, v) {
			return true
		}
	}
	return false
}

// NameMatcher labels merchant names as own brand or competitor.
type NameMatcher struct {
	own         []models.BrandList
	competitors models.BrandList
}

// NewNameMatcher builds a matcher from the brand lists in cfg.
func NewNameMatcher(cfg models.BrandConfig) *NameMatcher {
	return &NameMatcher{own: cfg.Own, competitors: cfg.Competitors}
}

// Match normalizes raw and returns the brand category it belongs to, or ""
// when it is neither. Own brands are tested first and win over competitors.
func (m *NameMatcher) Match(raw string) (string, models.Category) {
	normalized := Normalize(raw)
	for _, list := range m.own {
		if Matches(normalized, list) {
			return normalized, models.CategoryOwn
		}
	}
	if Matches(normalized, m.competitors) {
		return normalized, models.CategoryCompetitor
	}
	return normalized, ""
}
