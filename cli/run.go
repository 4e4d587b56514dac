package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"nshopping-manager/config"
	"nshopping-manager/models"
	"nshopping-manager/scraper/naver"
	"nshopping-manager/services"
	"nshopping-manager/storage"
	"nshopping-manager/utils"
)

var runFlags struct {
	keywordsFile string
	alwaysRecord bool
	csvPath      string
	xlsxPath     string
	historyDSN   string
	summaryPath  string
	noPublish    bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Collect rankings for every keyword and publish the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := applyRunFlags(cmd, cfg); err != nil {
			return err
		}

		logger := utils.NewLoggerWith(os.Stdout, cfg.LogLevel, cfg.LogFormat)
		return runPipeline(cmd.Context(), pipeline{
			cfg:       cfg,
			logger:    logger,
			out:       cmd.OutOrStdout(),
			noPublish: runFlags.noPublish,
		})
	},
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runFlags.keywordsFile, "keywords-file", "", "read keywords from a text file, one per line")
	f.BoolVar(&runFlags.alwaysRecord, "always-record", true, "emit a NONE row for keywords without a qualifying listing")
	f.StringVar(&runFlags.csvPath, "csv", "", "also write rows to this CSV file")
	f.StringVar(&runFlags.xlsxPath, "xlsx", "", "also write rows to this Excel workbook")
	f.StringVar(&runFlags.historyDSN, "history-dsn", "", "store rows in postgres://… or sqlite:<path>")
	f.StringVar(&runFlags.summaryPath, "summary", "", "also write the keyword,rank,top merchant summary to this file")
	f.BoolVar(&runFlags.noPublish, "no-publish", false, "skip the spreadsheet webhook")
}

// applyRunFlags lets explicitly set flags override the environment.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) error {
	if runFlags.keywordsFile != "" {
		kws, err := readKeywordsFile(runFlags.keywordsFile)
		if err != nil {
			return err
		}
		cfg.Keywords = kws
	}
	if cmd.Flags().Changed("always-record") {
		cfg.AlwaysRecord = runFlags.alwaysRecord
	}
	if runFlags.csvPath != "" {
		cfg.CSVOutputPath = runFlags.csvPath
	}
	if runFlags.xlsxPath != "" {
		cfg.XLSXOutputPath = runFlags.xlsxPath
	}
	if runFlags.historyDSN != "" {
		cfg.HistoryDSN = runFlags.historyDSN
	}
	if runFlags.summaryPath != "" {
		cfg.SummaryOutputPath = runFlags.summaryPath
	}
	return nil
}

func readKeywordsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("keywords file: %w", err)
	}
	defer f.Close()

	var kws []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff"))
		if line != "" {
			kws = append(kws, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("keywords file: %w", err)
	}
	return kws, nil
}

// brandConfig turns the configured name lists into the classifier's
// BrandConfig.
func brandConfig(cfg *config.Config) models.BrandConfig {
	return models.BrandConfig{
		Own: []models.BrandList{
			services.NewBrandList("MY_BRAND_1", cfg.OwnBrand1),
			services.NewBrandList("MY_BRAND_2", cfg.OwnBrand2),
		},
		Competitors: services.NewBrandList("COMPETITORS", cfg.Competitors),
		Rules:       cfg.CanonicalRules,
	}
}

// pipeline carries one run's dependencies. Endpoint overrides are empty in
// production.
type pipeline struct {
	cfg       *config.Config
	logger    *utils.Logger
	out       io.Writer
	noPublish bool

	shoppingURL    string
	keywordToolURL string
	now            func() time.Time
}

func runPipeline(ctx context.Context, p pipeline) error {
	cfg := p.cfg
	if err := cfg.Validate(); err != nil {
		p.logger.Error("[main] Cannot start run: %v", err)
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	runID := uuid.NewString()
	logger := p.logger.With("run_id", runID)
	logger.Info("=== Shopping rank run starting ===")
	logger.Info("Config: keywords: %d | competitors: %d | pause: %d-%dms | timeout: %v",
		len(cfg.Keywords), len(cfg.Competitors), cfg.PauseMinMs, cfg.PauseMaxMs, cfg.RequestTimeout)
	if !cfg.AdCredentialsSet() {
		logger.Warn("[main] Ad API credentials missing, search volume will be 0")
	}

	shopping := naver.NewShoppingClient(p.shoppingURL, cfg.NaverClientID, cfg.NaverClientSecret,
		cfg.RequestTimeout, logger)
	keywordTool := naver.NewKeywordToolClient(p.keywordToolURL, cfg.AdAPIKey, cfg.AdSecretKey,
		cfg.AdCustomerID, cfg.RequestTimeout, logger)

	runner := services.NewRunner(brandConfig(cfg), keywordTool, shopping, services.RunnerOptions{
		AlwaysRecord: cfg.AlwaysRecord,
		Pacer:        utils.NewPacer(cfg.PauseMinMs, cfg.PauseMaxMs),
		Logger:       logger,
		Now:          p.now,
	})
	report := runner.Collect(ctx, cfg.Keywords)
	rows := report.Rows

	if len(rows) == 0 {
		logger.Warn("[main] No rows produced, nothing to export")
		return nil
	}

	for _, sink := range openSinks(cfg, runID, logger) {
		werr := sink.w.Write(rows)
		if pw, ok := sink.w.(placementWriter); ok && werr == nil {
			werr = pw.WritePlacements(report.Placements)
		}
		if werr != nil {
			logger.Error("[%s] Write failed: %v", sink.name, werr)
		}
		if err := sink.w.Close(); err != nil {
			logger.Error("[%s] Close failed: %v", sink.name, err)
		} else if werr == nil {
			logger.Info("[%s] Stored %d rows", sink.name, len(rows))
		}
	}

	switch {
	case p.noPublish:
		logger.Info("[webhook] Publishing disabled")
	case cfg.WebhookURL == "":
		logger.Info("[webhook] APPS_SCRIPT_URL not set, skipping publish")
	default:
		pub := storage.NewWebhookPublisher(cfg.WebhookURL, cfg.WebhookToken, storage.DefaultPublishType, 2*cfg.RequestTimeout)
		if err := pub.Publish(ctx, rows); err != nil {
			logger.Error("[webhook] Publish failed: %v", err)
		} else {
			logger.Info("[webhook] Sent %d rows", len(rows))
		}
	}

	digest := services.NewDigestService(logger)
	digest.Print(p.out, digest.Generate(rows, report.Placements))

	summary := digest.SummaryText(report.Placements)
	fmt.Fprintf(p.out, "keyword,rank,top_mall\n%s", summary)
	if cfg.SummaryOutputPath != "" {
		if err := writeSummary(cfg.SummaryOutputPath, summary); err != nil {
			logger.Error("[summary] %v", err)
		} else {
			logger.Info("[summary] Wrote %s", cfg.SummaryOutputPath)
		}
	}
	return nil
}

// placementWriter is implemented by sinks that also record brand placements.
type placementWriter interface {
	WritePlacements([]models.Placement) error
}

func writeSummary(path, summary string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("summary: create output dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(summary), 0644); err != nil {
		return fmt.Errorf("summary: %w", err)
	}
	return nil
}

type namedSink struct {
	name string
	w    storage.RowWriter
}

// openSinks opens every configured local sink. A sink that fails to open is
// logged and skipped.
func openSinks(cfg *config.Config, runID string, logger *utils.Logger) []namedSink {
	var sinks []namedSink

	if cfg.CSVOutputPath != "" {
		w, err := storage.NewCSVWriter(cfg.CSVOutputPath)
		if err != nil {
			logger.Error("[csv] %v", err)
		} else {
			sinks = append(sinks, namedSink{"csv", w})
		}
	}
	if cfg.XLSXOutputPath != "" {
		w, err := storage.NewXLSXWriter(cfg.XLSXOutputPath)
		if err != nil {
			logger.Error("[xlsx] %v", err)
		} else {
			sinks = append(sinks, namedSink{"xlsx", w})
		}
	}
	if cfg.HistoryDSN != "" {
		w, err := storage.OpenHistoryStore(cfg.HistoryDSN, runID, logger)
		if err != nil {
			logger.Error("[history] %v", err)
		} else {
			sinks = append(sinks, namedSink{"history", w})
		}
	}
	return sinks
}
