package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"nshopping-manager/config"
	"nshopping-manager/services"
	"nshopping-manager/storage"
	"nshopping-manager/utils"
)

var historyFlags struct {
	date string
	dsn  string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the digest of the latest stored run for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		dsn := historyFlags.dsn
		if dsn == "" {
			dsn = cfg.HistoryDSN
		}
		if dsn == "" {
			return fmt.Errorf("history: no DSN (set HISTORY_DSN or --dsn)")
		}

		date := historyFlags.date
		if date == "" {
			date = time.Now().In(services.KST).Format("2006-01-02")
		}
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return fmt.Errorf("history: bad --date %q: %w", date, err)
		}

		logger := utils.NewLoggerWith(os.Stderr, cfg.LogLevel, cfg.LogFormat)
		hs, err := storage.OpenHistoryStore(dsn, "", logger)
		if err != nil {
			return err
		}
		defer hs.Close()

		rows, err := hs.FetchLatestRun(date)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			cmd.Printf("No stored run for %s\n", date)
			return nil
		}

		digest := services.NewDigestService(logger)
		digest.Print(cmd.OutOrStdout(), digest.Generate(rows, nil))
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyFlags.date, "date", "", "run date (YYYY-MM-DD, default today in KST)")
	historyCmd.Flags().StringVar(&historyFlags.dsn, "dsn", "", "history DSN, overrides HISTORY_DSN")
}
