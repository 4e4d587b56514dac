package services

import (
	"nshopping-manager/models"
	"nshopping-manager/utils"
)

func newTestLogger() *utils.Logger { return utils.NewNopLogger() }

func testBrandConfig() models.BrandConfig {
	return models.BrandConfig{
		Own: []models.BrandList{
			NewBrandList("dronebox", []string{"드론박스", "DroneBox", "DJI 정품판매점 드론박스"}),
			NewBrandList("bitdrone", []string{"빛드론", "Bit-Drone", "Bit Drone", "BITDRONE"}),
		},
		Competitors: NewBrandList("competitors", []string{"다다사", "dadasa", "효로로", "Hyororo", "드론뷰", "DroneView"}),
		Rules: []models.CanonicalRule{
			{Label: "드론박스", Tokens: []string{"드론박스", "dronebox"}},
			{Label: "빛드론", Tokens: []string{"빛드론", "bitdrone", "bit-drone"}},
			{Label: "다다사", Tokens: []string{"다다사", "dadasa"}},
			{Label: "효로로", Tokens: []string{"효로로", "hyororo"}},
			{Label: "드론뷰", Tokens: []string{"드론뷰", "droneview"}},
		},
	}
}

// rankedListings builds listings ranked 1..N from merchant names.
func rankedListings(merchants ...string) []models.Listing {
	out := make([]models.Listing, len(merchants))
	for i, m := range merchants {
		out[i] = models.Listing{
			Rank:         i + 1,
			MerchantName: m,
			Title:        "상품 " + m,
			Price:        int64(10000 * (i + 1)),
			Link:         "https://search.shopping.example/p/" + m,
		}
	}
	return out
}
