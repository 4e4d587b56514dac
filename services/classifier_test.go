package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nshopping-manager/models"
)

var testMetrics = models.NewKeywordMetrics(1000, 50)

func TestClassifyOwnBrandOutsideTopThree(t *testing.T) {
	c := NewClassifier(testBrandConfig())
	listings := rankedListings("a", "b", "c", "d", "DJI 정품판매점 드론박스", "효로로")
	listings = listings[3:]

	row, ok := c.Classify("2026-10-15", "매빅3", testMetrics, listings, false)
	require.True(t, ok)
	assert.Equal(t, 5, row.Rank)
	assert.Equal(t, models.CategoryOwn, row.Category)
	assert.Equal(t, "드론박스", row.MerchantName)
	assert.Equal(t, "상품 DJI 정품판매점 드론박스", row.Title)
	assert.Equal(t, int64(50000), row.Price)
	assert.Equal(t, "2026-10-15", row.Date)
	assert.Equal(t, int64(1000), row.SearchVolume)
	assert.Equal(t, 5.0, row.CTR)
}

func TestClassifyOwnPriorityOverCompetitor(t *testing.T) {
	cfg := testBrandConfig()
	cfg.Competitors = NewBrandList("comp", []string{"드론박스", "효로로"})
	c := NewClassifier(cfg)

	listings := rankedListings("x", "y", "z", "드론박스 스토어")[3:]
	row, ok := c.Classify("2026-10-15", "kw", testMetrics, listings, false)
	require.True(t, ok)
	assert.Equal(t, models.CategoryOwn, row.Category)
}

func TestClassifyTopRankFallback(t *testing.T) {
	c := NewClassifier(testBrandConfig())
	listings := rankedListings("상점1", "상점2", "상점3", "상점4")[1:]

	row, ok := c.Classify("2026-10-15", "kw", testMetrics, listings, false)
	require.True(t, ok)
	assert.Equal(t, 2, row.Rank)
	assert.Equal(t, models.CategoryTopRank, row.Category)
	assert.Equal(t, "상점2", row.MerchantName)
}

func TestClassifyTopRankKeepsRawName(t *testing.T) {
	cfg := testBrandConfig()
	cfg.Own = nil
	c := NewClassifier(cfg)

	row, ok := c.Classify("d", "kw", testMetrics, rankedListings("DJI 정품판매점 드론박스"), false)
	require.True(t, ok)
	assert.Equal(t, models.CategoryTopRank, row.Category)
	assert.Equal(t, "DJI 정품판매점 드론박스", row.MerchantName)
}

func TestClassifyNoQualifierPolicies(t *testing.T) {
	c := NewClassifier(testBrandConfig())
	listings := rankedListings("a", "b", "c", "d", "e", "f")[3:]

	_, ok := c.Classify("2026-10-15", "kw", testMetrics, listings, false)
	assert.False(t, ok, "skip policy must not emit a row")

	row, ok := c.Classify("2026-10-15", "kw", testMetrics, listings, true)
	require.True(t, ok)
	assert.Equal(t, models.ClassifiedRow{
		Date:         "2026-10-15",
		Keyword:      "kw",
		SearchVolume: 1000,
		AvgClicks:    50,
		CTR:          5,
		Rank:         0,
		MerchantName: "-",
		Title:        "-",
		Price:        0,
		Link:         "-",
		Category:     models.CategoryNone,
	}, row)
	assert.Equal(t, "-", row.RankLabel())
}

func TestClassifyEmptyListings(t *testing.T) {
	c := NewClassifier(testBrandConfig())

	_, ok := c.Classify("d", "kw", models.KeywordMetrics{}, nil, false)
	assert.False(t, ok)

	row, ok := c.Classify("d", "kw", models.KeywordMetrics{}, nil, true)
	require.True(t, ok)
	assert.Equal(t, models.CategoryNone, row.Category)
}

func TestClassifyReturnsMinimumQualifyingRank(t *testing.T) {
	c := NewClassifier(testBrandConfig())
	cases := [][]models.Listing{
		rankedListings("a", "b", "c", "d", "빛드론", "다다사"),
		rankedListings("a", "b", "c", "d", "e", "다다사", "드론박스")[4:],
		rankedListings("a", "b", "c", "효로로", "드론뷰")[3:],
		rankedListings("a", "b", "c", "d", "e")[3:],
	}

	for i, listings := range cases {
		want := 0
		for _, l := range listings {
			_, cat := NewNameMatcher(testBrandConfig()).Match(l.MerchantName)
			if cat != "" || l.Rank <= 3 {
				want = l.Rank
				break
			}
		}

		row, ok := c.Classify("d", "kw", testMetrics, listings, false)
		if want == 0 {
			assert.False(t, ok, "case %d", i)
			continue
		}
		require.True(t, ok, "case %d", i)
		assert.Equal(t, want, row.Rank, "case %d", i)
	}
}

func TestClassifyStopsAtFirstQualifier(t *testing.T) {
	c := NewClassifier(testBrandConfig())
	listings := rankedListings("상점A", "상점B", "상점C", "효로로 공식스토어", "상점E")

	row, ok := c.Classify("d", "키워드A", testMetrics, listings, true)
	require.True(t, ok)
	assert.Equal(t, 1, row.Rank)
	assert.Equal(t, models.CategoryTopRank, row.Category)
	assert.Equal(t, "상점A", row.MerchantName)
}
