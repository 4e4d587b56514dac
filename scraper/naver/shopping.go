package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"nshopping-manager/models"
	"nshopping-manager/services"
	"nshopping-manager/utils"
)

const (
	shoppingBaseURL = "https://openapi.naver.com"
	shoppingPath    = "/v1/search/shop.json"
)

// ShoppingClient fetches ranked shopping search results.
type ShoppingClient struct {
	baseURL      string
	clientID     string
	clientSecret string
	http         *http.Client
	cleaner      *services.Cleaner
	logger       *utils.Logger
}

// NewShoppingClient creates a client for the shopping search API. An empty
// baseURL selects the production endpoint.
func NewShoppingClient(baseURL, clientID, clientSecret string, timeout time.Duration, logger *utils.Logger) *ShoppingClient {
	if baseURL == "" {
		baseURL = shoppingBaseURL
	}
	return &ShoppingClient{
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		http:         newHTTPClient(timeout),
		cleaner:      services.NewCleaner(logger),
		logger:       logger,
	}
}

type shoppingResponse struct {
	Total int              `json:"total"`
	Items []models.RawItem `json:"items"`
}

// FetchListings returns up to 100 listings for keyword ordered by relevance.
func (c *ShoppingClient) FetchListings(ctx context.Context, keyword string) ([]models.Listing, error) {
	if c.clientID == "" || c.clientSecret == "" {
		return nil, ErrMissingCredentials
	}

	q := url.Values{}
	q.Set("query", keyword)
	q.Set("display", strconv.Itoa(services.MaxListings))
	q.Set("sort", "sim")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+shoppingPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("naver: build shopping request: %w", err)
	}
	req.Header.Set("X-Naver-Client-Id", c.clientID)
	req.Header.Set("X-Naver-Client-Secret", c.clientSecret)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("naver: shopping search %q: %w", keyword, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("shopping search", resp)
	}

	var body shoppingResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("naver: decode shopping response: %w", err)
	}

	c.logger.Debug("[naver] %q: %d items (total %d)", keyword, len(body.Items), body.Total)
	return c.cleaner.Clean(body.Items), nil
}
