package storage

import (
	"strconv"

	"nshopping-manager/models"
)

// RowWriter is the interface any local sink for classified rows satisfies.
type RowWriter interface {
	Write(rows []models.ClassifiedRow) error
	Close() error
}

// rowHeader names the columns shared by every tabular export. The
// spreadsheet side keys on these names.
var rowHeader = []string{
	"date", "keyword", "vol", "click", "ctr", "rank", "mall", "title", "price", "link", "type",
}

func rowRecord(r models.ClassifiedRow) []string {
	return []string{
		r.Date,
		r.Keyword,
		strconv.FormatInt(r.SearchVolume, 10),
		strconv.FormatFloat(r.AvgClicks, 'f', -1, 64),
		strconv.FormatFloat(r.CTR, 'f', -1, 64),
		r.RankLabel(),
		r.MerchantName,
		r.Title,
		strconv.FormatInt(r.Price, 10),
		r.Link,
		string(r.Category),
	}
}
