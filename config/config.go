package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"nshopping-manager/models"
)

var (
	// ErrNoKeywords means there is nothing to collect.
	ErrNoKeywords = errors.New("config: no keywords configured")
	// ErrMissingCredentials means the shopping search keys are absent.
	ErrMissingCredentials = errors.New("config: missing credentials")
)

// Default brand lists and canonical labels of the operator's storefronts.
const (
	DefaultOwnBrand1      = "드론박스, DroneBox, DRONEBOX, DJI 정품판매점 드론박스"
	DefaultOwnBrand2      = "빛드론, Bit-Drone, Bit Drone, BITDRONE, BIT-DRONE"
	DefaultCompetitors    = "다다사, dadasa, 효로로, Hyororo, 드론뷰, DroneView"
	DefaultCanonicalRules = "드론박스=드론박스|dronebox; 빛드론=빛드론|bitdrone|bit-drone; " +
		"다다사=다다사|dadasa; 효로로=효로로|hyororo; 드론뷰=드론뷰|droneview"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	NaverClientID     string
	NaverClientSecret string
	AdAPIKey          string
	AdSecretKey       string
	AdCustomerID      string

	WebhookURL   string
	WebhookToken string

	Keywords       []string
	OwnBrand1      []string
	OwnBrand2      []string
	Competitors    []string
	CanonicalRules []models.CanonicalRule
	AlwaysRecord   bool

	PauseMinMs     int
	PauseMaxMs     int
	RequestTimeout time.Duration

	HistoryDSN        string
	CSVOutputPath     string
	XLSXOutputPath    string
	SummaryOutputPath string

	LogLevel  string
	LogFormat string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		NaverClientID:     getEnv("NAVER_CLIENT_ID", ""),
		NaverClientSecret: getEnv("NAVER_CLIENT_SECRET", ""),
		AdAPIKey:          getEnv("NAVER_AD_API_KEY", ""),
		AdSecretKey:       getEnv("NAVER_AD_SECRET_KEY", ""),
		AdCustomerID:      getEnv("NAVER_CUSTOMER_ID", ""),

		WebhookURL:   getEnv("APPS_SCRIPT_URL", ""),
		WebhookToken: getEnv("APPS_SCRIPT_TOKEN", ""),

		Keywords:       ParseKeywords(getEnv("DEFAULT_KEYWORDS", "")),
		OwnBrand1:      ParseList(getEnv("MY_BRAND_1", DefaultOwnBrand1)),
		OwnBrand2:      ParseList(getEnv("MY_BRAND_2", DefaultOwnBrand2)),
		Competitors:    ParseList(getEnv("COMPETITORS", DefaultCompetitors)),
		CanonicalRules: ParseRules(getEnv("CANONICAL_RULES", DefaultCanonicalRules)),
		AlwaysRecord:   getEnvBool("ALWAYS_RECORD", true),

		PauseMinMs:     getEnvInt("PAUSE_MIN_MS", 300),
		PauseMaxMs:     getEnvInt("PAUSE_MAX_MS", 300),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_MS", 5000)) * time.Millisecond,

		HistoryDSN:        getEnv("HISTORY_DSN", ""),
		CSVOutputPath:     getEnv("CSV_OUTPUT_PATH", ""),
		XLSXOutputPath:    getEnv("XLSX_OUTPUT_PATH", ""),
		SummaryOutputPath: getEnv("SUMMARY_OUTPUT_PATH", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}
}

// Validate reports every missing precondition of a run at once.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Keywords) == 0 {
		errs = append(errs, ErrNoKeywords)
	}
	if c.NaverClientID == "" {
		errs = append(errs, fmt.Errorf("%w: NAVER_CLIENT_ID", ErrMissingCredentials))
	}
	if c.NaverClientSecret == "" {
		errs = append(errs, fmt.Errorf("%w: NAVER_CLIENT_SECRET", ErrMissingCredentials))
	}
	return errors.Join(errs...)
}

// AdCredentialsSet reports whether keyword volume can be fetched.
func (c *Config) AdCredentialsSet() bool {
	return c.AdAPIKey != "" && c.AdSecretKey != "" && c.AdCustomerID != ""
}

// ParseKeywords splits on commas and newlines, dropping blanks.
func ParseKeywords(raw string) []string {
	return ParseList(strings.ReplaceAll(raw, "\n", ","))
}

// ParseList splits a comma separated list, trimming and dropping blanks.
func ParseList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseRules reads "label=token|token; label=token". Rule order is kept.
// Entries without a label or tokens are skipped.
func ParseRules(raw string) []models.CanonicalRule {
	var rules []models.CanonicalRule
	for _, entry := range strings.Split(raw, ";") {
		label, tokens, ok := strings.Cut(entry, "=")
		label = strings.TrimSpace(label)
		if !ok || label == "" {
			continue
		}
		var toks []string
		for _, t := range strings.Split(tokens, "|") {
			if t = strings.TrimSpace(t); t != "" {
				toks = append(toks, t)
			}
		}
		if len(toks) == 0 {
			continue
		}
		rules = append(rules, models.CanonicalRule{Label: label, Tokens: toks})
	}
	return rules
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err == nil {
			return b
		}
	}
	return fallback
}
