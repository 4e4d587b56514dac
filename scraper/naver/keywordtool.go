package naver

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"nshopping-manager/models"
	"nshopping-manager/utils"
)

const (
	keywordToolBaseURL = "https://api.naver.com"
	keywordToolPath    = "/keywordstool"
)

// KeywordToolClient fetches monthly search volume and clicks from the
// search-ad keyword tool. Requests are HMAC signed.
type KeywordToolClient struct {
	baseURL    string
	apiKey     string
	secretKey  string
	customerID string
	http       *http.Client
	logger     *utils.Logger
	now        func() time.Time
}

// NewKeywordToolClient creates a keyword tool client. An empty baseURL
// selects the production endpoint.
func NewKeywordToolClient(baseURL, apiKey, secretKey, customerID string, timeout time.Duration, logger *utils.Logger) *KeywordToolClient {
	if baseURL == "" {
		baseURL = keywordToolBaseURL
	}
	return &KeywordToolClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		secretKey:  secretKey,
		customerID: customerID,
		http:       newHTTPClient(timeout),
		logger:     logger,
		now:        time.Now,
	}
}

// Configured reports whether all three ad credentials are present.
func (c *KeywordToolClient) Configured() bool {
	return c.apiKey != "" && c.secretKey != "" && c.customerID != ""
}

// Sign returns the base64 HMAC-SHA256 of "{timestamp}.{method}.{path}".
func (c *KeywordToolClient) Sign(timestamp, method, path string) string {
	mac := hmac.New(sha256.New, []byte(c.secretKey))
	mac.Write([]byte(timestamp + "." + method + "." + path))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

type keywordToolResponse struct {
	KeywordList []keywordStat `json:"keywordList"`
}

type keywordStat struct {
	RelKeyword             string    `json:"relKeyword"`
	MonthlyPcQcCnt         countStat `json:"monthlyPcQcCnt"`
	MonthlyMobileQcCnt     countStat `json:"monthlyMobileQcCnt"`
	MonthlyAvePcClkCnt     countStat `json:"monthlyAvePcClkCnt"`
	MonthlyAveMobileClkCnt countStat `json:"monthlyAveMobileClkCnt"`
}

// countStat accepts both numbers and strings such as "< 10".
type countStat float64

func (s *countStat) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(string(bytes.TrimSpace(b)), `"`)
	raw = strings.TrimSpace(strings.ReplaceAll(raw, "<", ""))
	if raw == "" || raw == "null" {
		*s = 0
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("naver: count %q: %w", raw, err)
	}
	*s = countStat(f)
	return nil
}

// FetchMetrics returns the keyword's monthly PC+mobile volume and clicks.
// Without ad credentials no request is made and zero metrics are returned.
// A keyword the tool does not list also yields zero metrics.
func (c *KeywordToolClient) FetchMetrics(ctx context.Context, keyword string) (models.KeywordMetrics, error) {
	if !c.Configured() {
		return models.KeywordMetrics{}, nil
	}

	hint := strings.ReplaceAll(keyword, " ", "")
	q := url.Values{}
	q.Set("hintKeywords", hint)
	q.Set("showDetail", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+keywordToolPath+"?"+q.Encode(), nil)
	if err != nil {
		return models.KeywordMetrics{}, fmt.Errorf("naver: build keyword tool request: %w", err)
	}

	ts := strconv.FormatInt(c.now().UnixMilli(), 10)
	req.Header.Set("X-Timestamp", ts)
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("X-Customer", c.customerID)
	req.Header.Set("X-Signature", c.Sign(ts, http.MethodGet, keywordToolPath))

	resp, err := c.http.Do(req)
	if err != nil {
		return models.KeywordMetrics{}, fmt.Errorf("naver: keyword tool %q: %w", keyword, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.KeywordMetrics{}, statusError("keyword tool", resp)
	}

	var body keywordToolResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.KeywordMetrics{}, fmt.Errorf("naver: decode keyword tool response: %w", err)
	}

	for _, k := range body.KeywordList {
		if !strings.EqualFold(strings.ReplaceAll(k.RelKeyword, " ", ""), hint) {
			continue
		}
		volume := int64(k.MonthlyPcQcCnt + k.MonthlyMobileQcCnt)
		clicks := float64(k.MonthlyAvePcClkCnt + k.MonthlyAveMobileClkCnt)

		m := models.NewKeywordMetrics(volume, clicks)
		m.AvgClicks = decimal.NewFromFloat(clicks).Round(1).InexactFloat64()
		return m, nil
	}

	c.logger.Debug("[naver] keyword tool has no entry for %q", keyword)
	return models.KeywordMetrics{}, nil
}
