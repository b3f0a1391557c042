package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, BackendFile, cfg.Watchlist.Backend)
		assert.Equal(t, "stockWatchlist", cfg.Watchlist.Key)
		assert.Equal(t, 1.0, cfg.Directory.LatencyScale)
		assert.False(t, cfg.Kafka.Enabled)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := writeConfig(t, `
server:
  port: "9090"
watchlist:
  backend: sqlite
  sqlite_path: /tmp/wl.db
directory:
  latency_scale: 0
kafka:
  enabled: true
  brokers: ["k1:9092", "k2:9092"]
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, BackendSQLite, cfg.Watchlist.Backend)
		assert.Equal(t, "/tmp/wl.db", cfg.Watchlist.SQLitePath)
		assert.Equal(t, 0.0, cfg.Directory.LatencyScale)
		assert.True(t, cfg.Kafka.Enabled)
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
		assert.Equal(t, "watchlist-events", cfg.Kafka.Topic)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, "server:\n  port: \"9090\"\n")
		t.Setenv("SERVER_PORT", "7070")
		t.Setenv("WATCHLIST_BACKEND", "REDIS")
		t.Setenv("REDIS_DB", "3")
		t.Setenv("KAFKA_BROKERS", "a:1,b:2")
		t.Setenv("DIRECTORY_LATENCY_SCALE", "0.5")

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "7070", cfg.Server.Port)
		assert.Equal(t, BackendRedis, cfg.Watchlist.Backend)
		assert.Equal(t, 3, cfg.Redis.DB)
		assert.Equal(t, []string{"a:1", "b:2"}, cfg.Kafka.Brokers)
		assert.Equal(t, 0.5, cfg.Directory.LatencyScale)
	})

	t.Run("invalid numeric env values are ignored", func(t *testing.T) {
		t.Setenv("REDIS_DB", "three")
		t.Setenv("KAFKA_ENABLED", "maybe")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 0, cfg.Redis.DB)
		assert.False(t, cfg.Kafka.Enabled)
	})

	t.Run("unknown backend is rejected", func(t *testing.T) {
		t.Setenv("WATCHLIST_BACKEND", "cookie")

		_, err := Load("")
		assert.ErrorIs(t, err, ErrUnknownBackend)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server: [unterminated"))
		assert.Error(t, err)
	})

	t.Run("negative latency is rejected", func(t *testing.T) {
		t.Setenv("DIRECTORY_LATENCY_SCALE", "-1")

		_, err := Load("")
		assert.Error(t, err)
	})
}

func TestConnectionString(t *testing.T) {
	d := DatabaseConfig{
		Host: "db", Port: "5433", User: "u", Password: "p", DBName: "stockdash", SSLMode: "require",
	}
	assert.Equal(t, "postgres://u:p@db:5433/stockdash?sslmode=require", d.ConnectionString())
}

func TestServerAddr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: "8081"}
	assert.Equal(t, "127.0.0.1:8081", s.Addr())
}
