package services

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"nshopping-manager/models"
	"nshopping-manager/utils"
)

// Digest summarises one run's rows.
type Digest struct {
	Date          string
	TotalKeywords int
	ByCategory    map[models.Category]int
	OwnRanks      []KeywordRank
	Competitors   []KeywordRank
	NotFound      []string
	AverageCTR    float64
	BusiestRow    *models.ClassifiedRow
}

// KeywordRank is a keyword reported at a rank under a merchant label.
type KeywordRank struct {
	Keyword  string
	Rank     int
	Merchant string
}

// NotRanked marks a keyword where no own brand listing appeared.
const NotRanked = "순위밖"

type DigestService struct {
	logger *utils.Logger
}

func NewDigestService(logger *utils.Logger) *DigestService {
	return &DigestService{logger: logger}
}

// Generate summarises rows. When placements are given, the own and
// competitor sections list every tracked brand's best rank per keyword;
// without them they fall back to the reported rows.
func (s *DigestService) Generate(rows []models.ClassifiedRow, placements []models.Placement) *Digest {
	d := &Digest{ByCategory: make(map[models.Category]int)}
	if len(rows) == 0 {
		return d
	}

	d.Date = rows[0].Date
	keywords := make(map[string]struct{}, len(rows))
	var ctrTotal float64
	var ctrCount int

	for i := range rows {
		r := &rows[i]
		keywords[r.Keyword] = struct{}{}
		d.ByCategory[r.Category]++

		switch r.Category {
		case models.CategoryOwn:
			if placements == nil {
				d.OwnRanks = append(d.OwnRanks, KeywordRank{r.Keyword, r.Rank, r.MerchantName})
			}
		case models.CategoryCompetitor:
			if placements == nil {
				d.Competitors = append(d.Competitors, KeywordRank{r.Keyword, r.Rank, r.MerchantName})
			}
		case models.CategoryNone:
			d.NotFound = append(d.NotFound, r.Keyword)
		}

		if r.SearchVolume > 0 {
			ctrTotal += r.CTR
			ctrCount++
		}
		if d.BusiestRow == nil || r.SearchVolume > d.BusiestRow.SearchVolume {
			d.BusiestRow = r
		}
	}

	for _, p := range placements {
		for _, b := range p.Brands {
			if b.Rank <= 0 {
				continue
			}
			switch b.Category {
			case models.CategoryOwn:
				d.OwnRanks = append(d.OwnRanks, KeywordRank{p.Keyword, b.Rank, b.Label})
			case models.CategoryCompetitor:
				d.Competitors = append(d.Competitors, KeywordRank{p.Keyword, b.Rank, b.Label})
			}
		}
	}

	d.TotalKeywords = len(keywords)
	if ctrCount > 0 {
		d.AverageCTR = round2(ctrTotal / float64(ctrCount))
	}

	byRank := func(ks []KeywordRank) {
		sort.SliceStable(ks, func(i, j int) bool { return ks[i].Rank < ks[j].Rank })
	}
	byRank(d.OwnRanks)
	byRank(d.Competitors)

	return d
}

// SummaryText renders one "keyword,own rank,top merchant" line per
// keyword. The rank is the best own brand rank over the full result list.
func (s *DigestService) SummaryText(placements []models.Placement) string {
	var b strings.Builder
	for _, p := range placements {
		rank := NotRanked
		if p.OwnBest > 0 {
			rank = strconv.Itoa(p.OwnBest)
		}
		fmt.Fprintf(&b, "%s,%s,%s\n", p.Keyword, rank, p.TopMerchant)
	}
	return b.String()
}

func (s *DigestService) Print(w io.Writer, d *Digest) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n%s\n", sep)
	fmt.Fprintf(w, "  RANKING DIGEST %s\n", d.Date)
	fmt.Fprintf(w, "%s\n\n", sep)

	fmt.Fprintf(w, "  Overview\n  %s\n", thin)
	fmt.Fprintf(w, "  Keywords        : %d\n", d.TotalKeywords)
	for _, c := range []models.Category{
		models.CategoryOwn, models.CategoryCompetitor, models.CategoryTopRank, models.CategoryNone,
	} {
		fmt.Fprintf(w, "  %-15s : %d\n", c, d.ByCategory[c])
	}
	fmt.Fprintf(w, "  Average CTR     : %.2f%%\n\n", d.AverageCTR)

	printRanks := func(title string, ks []KeywordRank) {
		fmt.Fprintf(w, "  %s\n  %s\n", title, thin)
		if len(ks) == 0 {
			fmt.Fprintf(w, "  (none)\n\n")
			return
		}
		for _, k := range ks {
			fmt.Fprintf(w, "  %3d. %-30s %s\n", k.Rank, truncate(k.Keyword, 30), k.Merchant)
		}
		fmt.Fprintln(w)
	}
	printRanks("Own brand placements", d.OwnRanks)
	printRanks("Competitor placements", d.Competitors)

	if len(d.NotFound) > 0 {
		fmt.Fprintf(w, "  Not found\n  %s\n", thin)
		for _, kw := range d.NotFound {
			fmt.Fprintf(w, "  - %s\n", kw)
		}
		fmt.Fprintln(w)
	}

	if d.BusiestRow != nil {
		fmt.Fprintf(w, "  Highest search volume: %s (%d/month)\n", d.BusiestRow.Keyword, d.BusiestRow.SearchVolume)
	}
	fmt.Fprintf(w, "%s\n\n", sep)
}

func round2(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
