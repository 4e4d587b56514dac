package models

// RawItem holds one unprocessed shopping search result exactly as the
// ranking API returns it. Titles still carry <b> highlight markup.
type RawItem struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Image     string `json:"image"`
	LPrice    string `json:"lprice"`
	HPrice    string `json:"hprice"`
	MallName  string `json:"mallName"`
	ProductID string `json:"productId"`
	Brand     string `json:"brand"`
	Maker     string `json:"maker"`
}

// Listing is one cleaned search result. Rank is 1-based and contiguous
// within a keyword's result set.
type Listing struct {
	Rank         int
	MerchantName string
	Title        string
	Price        int64
	Link         string
}
