package storage

import "nshopping-manager/models"

func sampleRows() []models.ClassifiedRow {
	return []models.ClassifiedRow{
		{
			Date: "2026-10-15", Keyword: "DJI 드론", SearchVolume: 1000, AvgClicks: 50.1, CTR: 5.01,
			Rank: 4, MerchantName: "드론박스", Title: "DJI 미니4 프로, 정품", Price: 1090000,
			Link: "https://s/1", Category: models.CategoryOwn,
		},
		{
			Date: "2026-10-15", Keyword: "에어3", Rank: 0, MerchantName: "-", Title: "-",
			Link: "-", Category: models.CategoryNone,
		},
	}
}
