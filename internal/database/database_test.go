package database

import (
	"io"
	"testing"

	"LotterySync/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "lottery.db?_journal_mode=WAL&_busy_timeout=5000", SQLiteDSN("lottery.db"))
	assert.Equal(t, "a.db?mode=ro", SQLiteDSN("a.db?mode=ro"))
	assert.Equal(t, "file::memory:", SQLiteDSN("file::memory:"))
}

func TestOpen(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	db, err := Open(config.DatabaseConfig{Driver: "sqlite", DSN: "file::memory:", MaxOpenConns: 1}, log)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()
	require.NoError(t, sqlDB.Ping())
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)

	_, err = Open(config.DatabaseConfig{Driver: "mysql", DSN: "x"}, log)
	assert.Error(t, err)
}

func TestEnsureDatabaseExistsSkipsDefaultDB(t *testing.T) {
	assert.NoError(t, EnsureDatabaseExists("postgres://u:p@127.0.0.1:1/postgres"))
	assert.NoError(t, EnsureDatabaseExists("postgres://u:p@127.0.0.1:1/"))
}
