package testutil

import (
	"context"
	"io"
	"testing"

	"LotterySync/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB 每个测试独立的内存 SQLite（单连接，保证同一个库）
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "open sqlite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// Logger 丢弃输出的 logrus 实例
func Logger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// FakeSource 可控的外部来源，用于替代真实网络抓取
type FakeSource struct {
	Name       string
	Document   []byte
	FetchErr   error
	Candidates []model.ResultInput
	ExtractErr error

	FetchCalls   int
	ExtractCalls int
}

func (f *FakeSource) GetName() string {
	if f.Name == "" {
		return "fake"
	}
	return f.Name
}

func (f *FakeSource) Fetch(ctx context.Context) ([]byte, error) {
	f.FetchCalls++
	if f.FetchErr != nil {
		return nil, f.FetchErr
	}
	return f.Document, nil
}

func (f *FakeSource) Extract(document []byte) ([]model.ResultInput, error) {
	f.ExtractCalls++
	if f.ExtractErr != nil {
		return nil, f.ExtractErr
	}
	return f.Candidates, nil
}
