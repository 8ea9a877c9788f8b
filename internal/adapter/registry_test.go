package adapter_test

import (
	"context"
	"io"
	"testing"

	"LotterySync/internal/adapter"
	"LotterySync/internal/adapter/scraper"
	"LotterySync/internal/config"
	"LotterySync/internal/interfaces"
	"LotterySync/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct{}

func (stubSource) GetName() string                             { return "stub" }
func (stubSource) Fetch(context.Context) ([]byte, error)       { return nil, nil }
func (stubSource) Extract([]byte) ([]model.ResultInput, error) { return nil, nil }

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestWebSourceRegistered(t *testing.T) {
	assert.Contains(t, adapter.ListKinds(), scraper.Kind)

	cfg := &config.ScraperConfig{Kind: scraper.Kind, URL: "http://127.0.0.1/", Timeout: 1}
	src, err := adapter.NewSource(cfg, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, scraper.Kind, src.GetName())
}

func TestRegisterAndLookup(t *testing.T) {
	adapter.Register("stub", func(*config.ScraperConfig, *logrus.Logger) interfaces.ResultSource {
		return stubSource{}
	})
	f, ok := adapter.GetFactory("stub")
	require.True(t, ok)
	assert.Equal(t, "stub", f(nil, nil).GetName())

	_, err := adapter.NewSource(&config.ScraperConfig{Kind: "missing"}, quietLogger())
	assert.Error(t, err)
	assert.Panics(t, func() { adapter.Register("nil", nil) })
}
