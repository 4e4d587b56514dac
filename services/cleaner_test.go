package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nshopping-manager/models"
)

func TestCleanerParsePrice(t *testing.T) {
	c := NewCleaner(newTestLogger())

	tests := []struct {
		raw  string
		want int64
	}{
		{"12900", 12900},
		{"1,290,000", 1290000},
		{" 990 ", 990},
		{"", 0},
		{"문의", 0},
	}

	for _, tt := range tests {
		got := c.parsePrice(tt.raw)
		if got != tt.want {
			t.Errorf("parsePrice(%q) = %d; want %d", tt.raw, got, tt.want)
		}
	}
}

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"DJI <b>매빅3</b> 프로", "DJI 매빅3 프로"},
		{"<b>에어3</b>  콤보 &amp; 케이스", "에어3 콤보 & 케이스"},
		{"plain title", "plain title"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, stripMarkup(tt.raw))
	}
}

func TestCleanerAssignsContiguousRanks(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []models.RawItem{
		{Title: "<b>A</b>", MallName: " 드론박스 ", LPrice: "100", Link: "https://a"},
		{Title: "B", MallName: "", LPrice: "", Link: ""},
		{Title: "C", MallName: "효로로  공식스토어", LPrice: "300", Link: "https://c"},
	}

	listings := c.Clean(raw)
	require.Len(t, listings, 3)
	for i, l := range listings {
		assert.Equal(t, i+1, l.Rank)
	}
	assert.Equal(t, models.Listing{Rank: 1, MerchantName: "드론박스", Title: "A", Price: 100, Link: "https://a"}, listings[0])
	assert.Equal(t, "효로로 공식스토어", listings[2].MerchantName)
}

func TestCleanerCapsAtMaxListings(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := make([]models.RawItem, MaxListings+20)
	for i := range raw {
		raw[i] = models.RawItem{MallName: fmt.Sprintf("mall-%d", i)}
	}

	listings := c.Clean(raw)
	require.Len(t, listings, MaxListings)
	assert.Equal(t, MaxListings, listings[len(listings)-1].Rank)
}

func TestCleanerEmptyInput(t *testing.T) {
	c := NewCleaner(newTestLogger())
	assert.Empty(t, c.Clean(nil))
}
