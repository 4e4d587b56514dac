package storage

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nshopping-manager/models"
)

func TestWebhookPublisherPostsCSV(t *testing.T) {
	var got [][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "tok", r.URL.Query().Get("token"))
		assert.Equal(t, "auto_daily", r.URL.Query().Get("type"))
		assert.Equal(t, "1", r.URL.Query().Get("keep"))
		assert.Equal(t, "text/plain; charset=utf-8", r.Header.Get("Content-Type"))

		records, err := csv.NewReader(r.Body).ReadAll()
		assert.NoError(t, err)
		got = records
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	p := NewWebhookPublisher(server.URL+"/exec?keep=1", "tok", "", time.Second)
	require.NoError(t, p.Publish(context.Background(), sampleRows()))

	require.Len(t, got, 3)
	assert.Equal(t, "드론박스", got[1][6])
}

func TestWebhookPublisherStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad token", http.StatusUnauthorized)
	}))
	defer server.Close()

	p := NewWebhookPublisher(server.URL, "wrong", "", time.Second)
	err := p.Publish(context.Background(), sampleRows())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "bad token")
}

func TestWebhookPublisherSkipsEmpty(t *testing.T) {
	p := NewWebhookPublisher("http://127.0.0.1:1", "tok", "", time.Second)
	assert.NoError(t, p.Publish(context.Background(), []models.ClassifiedRow{}))
}

func TestWebhookPublisherUnreachable(t *testing.T) {
	p := NewWebhookPublisher("http://127.0.0.1:1", "tok", "", 200*time.Millisecond)
	assert.Error(t, p.Publish(context.Background(), sampleRows()))
}
