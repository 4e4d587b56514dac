package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"nshopping-manager/models"
	"nshopping-manager/utils"
)

const historyColumns = 12

// dialect captures what differs between the supported SQL backends.
type dialect struct {
	driver      string
	schema      []string
	placeholder func(n int) string
}

var postgresDialect = dialect{
	driver: "postgres",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS ranking_history (
			id            BIGSERIAL PRIMARY KEY,
			run_id        VARCHAR(36)      NOT NULL,
			run_date      VARCHAR(10)      NOT NULL,
			keyword       TEXT             NOT NULL,
			search_volume BIGINT           NOT NULL DEFAULT 0,
			avg_clicks    DOUBLE PRECISION NOT NULL DEFAULT 0,
			ctr           DOUBLE PRECISION NOT NULL DEFAULT 0,
			rank_pos      INTEGER          NOT NULL DEFAULT 0,
			merchant      TEXT             NOT NULL DEFAULT '',
			title         TEXT             NOT NULL DEFAULT '',
			price         BIGINT           NOT NULL DEFAULT 0,
			link          TEXT             NOT NULL DEFAULT '',
			category      VARCHAR(16)      NOT NULL,
			created_at    TIMESTAMPTZ      NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ranking_history_date ON ranking_history(run_date)`,
		`CREATE INDEX IF NOT EXISTS idx_ranking_history_run  ON ranking_history(run_id)`,
	},
	placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
}

var sqliteDialect = dialect{
	driver: "sqlite",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS ranking_history (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id        TEXT    NOT NULL,
			run_date      TEXT    NOT NULL,
			keyword       TEXT    NOT NULL,
			search_volume INTEGER NOT NULL DEFAULT 0,
			avg_clicks    REAL    NOT NULL DEFAULT 0,
			ctr           REAL    NOT NULL DEFAULT 0,
			rank_pos      INTEGER NOT NULL DEFAULT 0,
			merchant      TEXT    NOT NULL DEFAULT '',
			title         TEXT    NOT NULL DEFAULT '',
			price         INTEGER NOT NULL DEFAULT 0,
			link          TEXT    NOT NULL DEFAULT '',
			category      TEXT    NOT NULL,
			created_at    TEXT    NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ranking_history_date ON ranking_history(run_date)`,
		`CREATE INDEX IF NOT EXISTS idx_ranking_history_run  ON ranking_history(run_id)`,
	},
	placeholder: func(int) string { return "?" },
}

// HistoryStore persists each run's rows so past days can be reviewed.
// Postgres DSNs ("postgres://…" or "host=… dbname=…") and SQLite DSNs
// ("sqlite:<path>") are accepted.
type HistoryStore struct {
	db      *sql.DB
	dialect dialect
	runID   string
}

// OpenHistoryStore connects, runs schema migrations and returns a store
// whose Write calls are tagged with runID.
func OpenHistoryStore(dsn, runID string, logger *utils.Logger) (*HistoryStore, error) {
	d, source, err := parseHistoryDSN(dsn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(d.driver, source)
	if err != nil {
		return nil, fmt.Errorf("history: open: %w", err)
	}

	retry := &utils.RetryConfig{MaxAttempts: 5, BaseDelay: time.Second, Logger: logger}
	if err := retry.Do("history ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: %w", err)
	}

	hs := &HistoryStore{db: db, dialect: d, runID: runID}
	if err := hs.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: migrate: %w", err)
	}
	return hs, nil
}

func parseHistoryDSN(dsn string) (dialect, string, error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case strings.HasPrefix(dsn, "sqlite:"):
		path := strings.TrimPrefix(dsn, "sqlite:")
		if path == "" {
			return dialect{}, "", fmt.Errorf("history: empty sqlite path")
		}
		return sqliteDialect, path, nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"),
		strings.Contains(dsn, "dbname="):
		return postgresDialect, dsn, nil
	default:
		return dialect{}, "", fmt.Errorf("history: unsupported dsn %q", dsn)
	}
}

func (hs *HistoryStore) migrate() error {
	for _, stmt := range hs.dialect.schema {
		if _, err := hs.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Write batch-inserts rows under the store's run id.
func (hs *HistoryStore) Write(rows []models.ClassifiedRow) error {
	const batchSize = 50
	for i := 0; i < len(rows); i += batchSize {
		end := i + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := hs.insertBatch(rows[i:end]); err != nil {
			return fmt.Errorf("history: insert: %w", err)
		}
	}
	return nil
}

func (hs *HistoryStore) insertBatch(batch []models.ClassifiedRow) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*historyColumns)

	for idx, r := range batch {
		base := idx * historyColumns
		ph := make([]string, historyColumns)
		for j := range ph {
			ph[j] = hs.dialect.placeholder(base + j + 1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")
		valueArgs = append(valueArgs,
			hs.runID, r.Date, r.Keyword, r.SearchVolume, r.AvgClicks, r.CTR,
			r.Rank, r.MerchantName, r.Title, r.Price, r.Link, string(r.Category))
	}

	query := fmt.Sprintf(`
		INSERT INTO ranking_history
			(run_id, run_date, keyword, search_volume, avg_clicks, ctr,
			 rank_pos, merchant, title, price, link, category)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	_, err := hs.db.Exec(query, valueArgs...)
	return err
}

// FetchLatestRun returns the rows of the most recent run stored for date,
// in insertion order.
func (hs *HistoryStore) FetchLatestRun(date string) ([]models.ClassifiedRow, error) {
	p := hs.dialect.placeholder
	rows, err := hs.db.Query(fmt.Sprintf(`
		SELECT run_date, keyword, search_volume, avg_clicks, ctr,
		       rank_pos, merchant, title, price, link, category
		FROM ranking_history
		WHERE run_id = (
			SELECT run_id FROM ranking_history
			WHERE run_date = %s
			ORDER BY id DESC
			LIMIT 1
		)
		ORDER BY id
	`, p(1)), date)
	if err != nil {
		return nil, fmt.Errorf("history: fetch %s: %w", date, err)
	}
	defer rows.Close()

	var out []models.ClassifiedRow
	for rows.Next() {
		var r models.ClassifiedRow
		var category string
		if err := rows.Scan(
			&r.Date, &r.Keyword, &r.SearchVolume, &r.AvgClicks, &r.CTR,
			&r.Rank, &r.MerchantName, &r.Title, &r.Price, &r.Link, &category,
		); err != nil {
			return nil, fmt.Errorf("history: scan row: %w", err)
		}
		r.Category = models.Category(category)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (hs *HistoryStore) Close() error {
	return hs.db.Close()
}
