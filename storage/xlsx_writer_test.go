package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"nshopping-manager/models"
)

func TestXLSXWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Rank_2026-10-15.xlsx")

	w, err := NewXLSXWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(sampleRows()))
	require.NoError(t, w.Close())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(XLSXSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, rowHeader, rows[0])
	assert.Equal(t, "DJI 드론", rows[1][1])
	assert.Equal(t, "4", rows[1][5])
	assert.Equal(t, "드론박스", rows[1][6])
	assert.Equal(t, "-", rows[2][5])
	assert.Equal(t, "NONE", rows[2][10])
}

func TestXLSXWriterPlacementSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Rank_2026-10-15.xlsx")

	w, err := NewXLSXWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(sampleRows()))
	require.NoError(t, w.WritePlacements([]models.Placement{
		{Keyword: "매빅3", TopMerchant: "쿠팡", OwnBest: 4, Brands: []models.BrandRank{
			{Label: "드론박스", Category: models.CategoryOwn, Rank: 4},
			{Label: "다다사", Category: models.CategoryCompetitor},
		}},
	}))
	require.NoError(t, w.Close())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(XLSXPlacementSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"keyword", "top_mall", "own_best", "드론박스", "다다사"}, rows[0])
	assert.Equal(t, []string{"매빅3", "쿠팡", "4", "4", "-"}, rows[1])
}
