package services

import (
	"strings"

	"nshopping-manager/models"
)

// Canonicalizer collapses verbose merchant names into a fixed vocabulary of
// short labels so that reports keyed on merchant name stay stable.
type Canonicalizer struct {
	rules []models.CanonicalRule
}

// NewCanonicalizer normalizes every rule token. Rules keep their order;
// rules left without tokens are dropped.
func NewCanonicalizer(rules []models.CanonicalRule) *Canonicalizer {
	c := &Canonicalizer{rules: make([]models.CanonicalRule, 0, len(rules))}
	for _, r := range rules {
		label := strings.TrimSpace(r.Label)
		if label == "" {
			continue
		}
		tokens := NewBrandList(label, r.Tokens).Variants
		if len(tokens) == 0 {
			continue
		}
		c.rules = append(c.rules, models.CanonicalRule{Label: label, Tokens: tokens})
	}
	return c
}

// Canonicalize returns the label of the first rule with a token inside
// normalizedName. Only brand matches are rewritten; anything else, and
// brand matches no rule recognises, keep rawName.
func (c *Canonicalizer) Canonicalize(rawName, normalizedName string, category models.Category) string {
	if category != models.CategoryOwn && category != models.CategoryCompetitor {
		return rawName
	}
	for _, r := range c.rules {
		for _, tok := range r.Tokens {
			if strings.Contains(normalizedName, tok) {
				return r.Label
			}
		}
	}
	return rawName
}

// Labels lists the canonical vocabulary in priority order.
func (c *Canonicalizer) Labels() []string {
	out := make([]string, 0, len(c.rules))
	for _, r := range c.rules {
		out = append(out, r.Label)
	}
	return out
}
