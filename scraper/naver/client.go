// Package naver talks to the two upstream services a run depends on: the
// shopping search API for ranked listings and the search-ad keyword tool
// for monthly demand.
package naver

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout = 5 * time.Second
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// ErrMissingCredentials is returned when a client is used without keys.
var ErrMissingCredentials = errors.New("naver: missing credentials")

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// statusError builds an error from a non-2xx response, keeping a short
// excerpt of the body for the log.
func statusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("naver: %s: unexpected status %d: %s",
		op, resp.StatusCode, strings.TrimSpace(string(body)))
}
