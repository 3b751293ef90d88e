package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig() *Config {
	return &Config{
		Server: ServerConfig{Host: "127.0.0.1", Port: "8080"},
		Redis:  RedisConfig{Host: "127.0.0.1", Port: "6379"},
		SQLite: SQLiteConfig{FilePath: "data/test.db"},
	}
}

// TestInitConfig ensures cache defaults kick in and mandatory settings are enforced.
func TestInitConfig(t *testing.T) {
	t.Run("applies cache defaults", func(t *testing.T) {
		config := validTestConfig()
		require.NoError(t, InitConfig(config, "", "", ""))
		assert.Equal(t, 300*time.Second, config.Cache.TTL)
		assert.Equal(t, 200*time.Millisecond, config.Cache.OpTimeout)
		assert.Empty(t, config.Cache.KeyNamespace)
	})

	t.Run("keeps provided cache settings", func(t *testing.T) {
		config := validTestConfig()
		config.Cache = CacheConfig{TTL: 60 * time.Second, OpTimeout: 50 * time.Millisecond, KeyNamespace: "prod"}
		require.NoError(t, InitConfig(config, "", "", ""))
		assert.Equal(t, 60*time.Second, config.Cache.TTL)
		assert.Equal(t, 50*time.Millisecond, config.Cache.OpTimeout)
		assert.Equal(t, "prod", config.Cache.KeyNamespace)
	})

	t.Run("applies build tags", func(t *testing.T) {
		config := validTestConfig()
		require.NoError(t, InitConfig(config, "deadbeef", "v1.2.3", "2023-07-02"))
		assert.Equal(t, "deadbeef", config.GitCommit)
		assert.Equal(t, "v1.2.3", config.GitTag)
		assert.Equal(t, "2023-07-02", config.BuildTime)
	})

	t.Run("rejects incomplete settings", func(t *testing.T) {
		testCases := []struct {
			name   string
			mutate func(*Config)
		}{
			{"missing server port", func(c *Config) { c.Server.Port = "" }},
			{"missing redis host", func(c *Config) { c.Redis.Host = "" }},
			{"missing sqlite path", func(c *Config) { c.SQLite.FilePath = "" }},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				config := validTestConfig()
				tc.mutate(config)
				assert.Error(t, InitConfig(config, "", "", ""))
			})
		}
	})
}
