package models

// BrandList is an ordered set of name variants for one storefront or group
// of storefronts. Variants are kept in normalized form.
type BrandList struct {
	Name     string
	Variants []string
}

// CanonicalRule maps any of its normalized tokens to a short display label.
type CanonicalRule struct {
	Label  string
	Tokens []string
}

// BrandConfig is everything the classifier needs to label merchants.
type BrandConfig struct {
	Own         []BrandList
	Competitors BrandList
	Rules       []CanonicalRule
}
