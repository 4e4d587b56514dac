package services

import (
	"context"
	"time"

	"nshopping-manager/models"
	"nshopping-manager/utils"
)

// KST is the operator's reporting timezone; run dates are KST calendar days.
var KST = time.FixedZone("KST", 9*60*60)

// MetricsFetcher returns search demand for a keyword.
type MetricsFetcher interface {
	FetchMetrics(ctx context.Context, keyword string) (models.KeywordMetrics, error)
}

// ListingFetcher returns the ranked search results for a keyword.
type ListingFetcher interface {
	FetchListings(ctx context.Context, keyword string) ([]models.Listing, error)
}

// Pauser blocks between keywords to respect upstream rate limits.
type Pauser interface {
	Wait() time.Duration
}

// RunnerOptions tunes a Runner. Zero values give a silent runner with no
// pause that skips keywords without a qualifying listing.
type RunnerOptions struct {
	AlwaysRecord bool
	Pacer        Pauser
	Logger       *utils.Logger
	Now          func() time.Time
}

// Runner drives one collection run over a keyword list.
type Runner struct {
	classifier   *Classifier
	placements   *PlacementScanner
	metrics      MetricsFetcher
	listings     ListingFetcher
	pacer        Pauser
	logger       *utils.Logger
	alwaysRecord bool
	now          func() time.Time
}

// NewRunner creates a Runner for the given brand configuration and fetchers.
func NewRunner(cfg models.BrandConfig, metrics MetricsFetcher, listings ListingFetcher, opts RunnerOptions) *Runner {
	r := &Runner{
		classifier:   NewClassifier(cfg),
		placements:   NewPlacementScanner(cfg),
		metrics:      metrics,
		listings:     listings,
		pacer:        opts.Pacer,
		logger:       opts.Logger,
		alwaysRecord: opts.AlwaysRecord,
		now:          opts.Now,
	}
	if r.logger == nil {
		r.logger = utils.NewNopLogger()
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// Report is the outcome of one run: the classified rows plus one placement
// per keyword, in keyword order.
type Report struct {
	Rows       []models.ClassifiedRow
	Placements []models.Placement
}

// Run processes keywords one at a time, in order. A failed fetch degrades
// only that keyword to zero metrics or no listings.
func (r *Runner) Run(ctx context.Context, keywords []string) []models.ClassifiedRow {
	return r.Collect(ctx, keywords).Rows
}

// Collect is Run that also scans each keyword's full listing for brand
// placements.
func (r *Runner) Collect(ctx context.Context, keywords []string) Report {
	date := r.now().In(KST).Format("2006-01-02")
	rows := make([]models.ClassifiedRow, 0, len(keywords))
	placements := make([]models.Placement, 0, len(keywords))

	r.logger.Info("[runner] Starting run for %s: %d keywords (always record: %t)",
		date, len(keywords), r.alwaysRecord)

	for i, kw := range keywords {
		metrics, err := r.metrics.FetchMetrics(ctx, kw)
		if err != nil {
			r.logger.Warn("[runner] Metrics for %q unavailable: %v", kw, err)
			metrics = models.KeywordMetrics{}
		}

		listings, err := r.listings.FetchListings(ctx, kw)
		if err != nil {
			r.logger.Warn("[runner] Listings for %q unavailable: %v", kw, err)
			listings = nil
		}
		if r.pacer != nil {
			r.pacer.Wait()
		}

		placements = append(placements, r.placements.Scan(kw, listings))

		row, ok := r.classifier.Classify(date, kw, metrics, listings, r.alwaysRecord)
		if ok {
			rows = append(rows, row)
			r.logger.Info("[runner] [%d/%d] %s: %s at rank %s (%s)",
				i+1, len(keywords), kw, row.Category, row.RankLabel(), row.MerchantName)
		} else {
			r.logger.Info("[runner] [%d/%d] %s: no qualifying listing among %d",
				i+1, len(keywords), kw, len(listings))
		}
	}

	r.logger.Info("[runner] Run complete: %d rows from %d keywords", len(rows), len(keywords))
	return Report{Rows: rows, Placements: placements}
}
