package services

import (
	"html"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"nshopping-manager/models"
	"nshopping-manager/utils"
)

// MaxListings is the largest result window the ranking source returns.
const MaxListings = 100

var (
	// markupRegexp matches inline tags such as the <b> keyword highlight
	markupRegexp = regexp.MustCompile(`<[^>]*>`)
	// priceRegexp captures the first run of digits, with thousands separators
	priceRegexp = regexp.MustCompile(`\d[\d,]*`)
)

// Cleaner turns raw search items into ranked Listings.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean converts raw items in response order. Ranks are assigned 1..N and
// nothing is dropped, since a gap would shift every later rank.
func (c *Cleaner) Clean(raw []models.RawItem) []models.Listing {
	if len(raw) > MaxListings {
		c.logger.Warn("[cleaner] Truncating %d items to the first %d", len(raw), MaxListings)
		raw = raw[:MaxListings]
	}

	result := make([]models.Listing, 0, len(raw))
	for i, r := range raw {
		result = append(result, models.Listing{
			Rank:         i + 1,
			MerchantName: normaliseText(r.MallName),
			Title:        stripMarkup(r.Title),
			Price:        c.parsePrice(r.LPrice),
			Link:         strings.TrimSpace(r.Link),
		})
	}

	c.logger.Debug("[cleaner] Cleaned %d listings", len(result))
	return result
}

// parsePrice reads an integer amount such as "12900" or "1,290,000".
func (c *Cleaner) parsePrice(raw string) int64 {
	match := priceRegexp.FindString(raw)
	if match == "" {
		return 0
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(match, ",", ""), 10, 64)
	if err != nil {
		c.logger.Debug("[cleaner] Unparseable price %q: %v", raw, err)
		return 0
	}
	return n
}

// stripMarkup removes inline tags and decodes entities like &amp;.
func stripMarkup(s string) string {
	return normaliseText(html.UnescapeString(markupRegexp.ReplaceAllString(s, "")))
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.Join(fields, " ")
}
