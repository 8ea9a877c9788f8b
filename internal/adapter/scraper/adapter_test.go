package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"LotterySync/internal/config"
	"LotterySync/internal/model"
	"LotterySync/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var resultPage = fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>ผลสลากกินแบ่งรัฐบาล งวดวันที่ 16 ตุลาคม 2568</title></head>
<body>
<script>var x = "999999";</script>
<table>
  <tr><th>รางวัล</th><th>เลข</th><th>เงินรางวัล</th></tr>
  <tr><td>%s</td><td>123456</td><td>6,000,000 บาท</td></tr>
  <tr><td>%s</td><td>012 345</td><td>4,000 บาท</td></tr>
  <tr><td>%s</td><td><span>678</span> <span>901</span></td><td>4,000 บาท</td></tr>
  <tr><td>%s</td><td>07</td><td>2,000 บาท</td></tr>
</table>
</body>
</html>`, model.PrizeFirst, model.PrizeFront3, model.PrizeBack3, model.PrizeBack2)

func newTestAdapter(url string, timeout int) *Adapter {
	cfg := &config.ScraperConfig{URL: url, Timeout: timeout, UserAgent: "test-agent"}
	return NewScraperAdapter(cfg, testutil.Logger()).(*Adapter)
}

func TestFetchAndExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(resultPage))
	}))
	defer srv.Close()

	a := newTestAdapter(srv.URL, 5)
	doc, err := a.Fetch(context.Background())
	require.NoError(t, err)

	candidates, err := a.Extract(doc)
	require.NoError(t, err)
	require.Len(t, candidates, 6)

	first := candidates[0]
	assert.Equal(t, "2025-10-16", first.DrawDate)
	assert.Equal(t, model.PrizeFirst, first.PrizeType)
	assert.Equal(t, "123456", first.PrizeNumber)
	require.NotNil(t, first.PrizeAmount)
	assert.Equal(t, int64(6000000), *first.PrizeAmount)

	var numbers []string
	for _, c := range candidates {
		numbers = append(numbers, c.PrizeNumber)
	}
	assert.Equal(t, []string{"123456", "012", "345", "678", "901", "07"}, numbers)
}

func TestFetchNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestAdapter(srv.URL, 5).Fetch(context.Background())
	var upstream *model.UpstreamFetchError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusServiceUnavailable, upstream.StatusCode)
	assert.ErrorIs(t, err, model.ErrUpstreamFetch)
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := newTestAdapter(srv.URL, 5).Fetch(ctx)
	var upstream *model.UpstreamFetchError
	require.True(t, errors.As(err, &upstream))
	assert.Zero(t, upstream.StatusCode)
	assert.Error(t, upstream.Cause)
}

func TestFetchUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestAdapter(url, 1).Fetch(context.Background())
	assert.ErrorIs(t, err, model.ErrUpstreamFetch)
}

func TestFetchWithoutURL(t *testing.T) {
	_, err := newTestAdapter("", 1).Fetch(context.Background())
	assert.ErrorIs(t, err, model.ErrInternal)
}
