package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ENV", "test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 4, cfg.LLM.QuestionsPerLevel)
	assert.Equal(t, 50, cfg.History.DefaultLimit)
	assert.Equal(t, 200, cfg.History.MaxLimit)
	assert.Equal(t, 24*time.Hour, cfg.Cache.RecordTTL)
	assert.False(t, cfg.RedisEnabled())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("LLM_TIMEOUT", "15s")
	t.Setenv("DATABASE_URL", "file:agent.db")
	t.Setenv("PORT", "8081")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, 15*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "file:agent.db", cfg.DB.DSN)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.True(t, cfg.RedisEnabled())
}

func TestLoadConfig_InvalidPort(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("PORT", "not-a-port")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: 5000},
			DB:      DBConfig{Driver: DriverSQLite, DSN: ":memory:"},
			LLM:     LLMConfig{Provider: ProviderOllama, QuestionsPerLevel: 3},
			History: HistoryConfig{DefaultLimit: 50, MaxLimit: 200},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"oracle driver", func(c *Config) { c.DB.Driver = DriverOracle }, false},
		{"unknown driver", func(c *Config) { c.DB.Driver = "mysql" }, true},
		{"empty dsn", func(c *Config) { c.DB.DSN = "" }, true},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "bard" }, true},
		{"zero port", func(c *Config) { c.Server.Port = 0 }, true},
		{"zero questions", func(c *Config) { c.LLM.QuestionsPerLevel = 0 }, true},
		{"max below default", func(c *Config) { c.History.MaxLimit = 10 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
