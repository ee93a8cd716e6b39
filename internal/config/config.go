package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSQLite = "sqlite"
	DriverOracle = "oracle"

	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	LLM     LLMConfig
	Redis   RedisConfig
	Cache   CacheConfig
	Logger  LoggerConfig
	History HistoryConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

type DBConfig struct {
	Driver       string
	DSN          string
	MaxOpenConns int
}

// LLMConfig configures the generative backend. An empty APIKey for a hosted
// provider leaves generation unavailable rather than failing startup.
type LLMConfig struct {
	Provider          string
	APIKey            string
	Model             string
	ServerURL         string
	Temperature       float64
	Timeout           time.Duration
	QuestionsPerLevel int
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type CacheConfig struct {
	RecordTTL time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

type HistoryConfig struct {
	DefaultLimit int
	MaxLimit     int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "90s")
	v.SetDefault("server.body_limit", 1024*1024)

	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.dsn", "interview_agent.db")
	v.SetDefault("db.max_open_conns", 10)

	v.SetDefault("llm.provider", ProviderGemini)
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.server_url", "http://localhost:11434")
	v.SetDefault("llm.temperature", 0.4)
	v.SetDefault("llm.timeout", "60s")
	v.SetDefault("llm.questions_per_level", 4)

	v.SetDefault("redis.db", 0)
	v.SetDefault("cache.record_ttl", "24h")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")

	v.SetDefault("history.default_limit", 50)
	v.SetDefault("history.max_limit", 200)
}

// LoadConfig reads config.yaml (optional), a .env file (optional) and environment
// variables. Nested keys map to upper-case env names, e.g. llm.api_key -> LLM_API_KEY.
func LoadConfig() (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	cfg := fromViper(v)

	// Conventional provider and platform variables.
	if key := os.Getenv("GEMINI_API_KEY"); key != "" && cfg.LLM.APIKey == "" && cfg.LLM.Provider == ProviderGemini {
		cfg.LLM.APIKey = key
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && cfg.LLM.APIKey == "" && cfg.LLM.Provider == ProviderOpenAI {
		cfg.LLM.APIKey = key
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.DB.DSN = dsn
	}
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Server.Port = p
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			BodyLimit:    v.GetInt("server.body_limit"),
		},
		DB: DBConfig{
			Driver:       strings.ToLower(v.GetString("db.driver")),
			DSN:          v.GetString("db.dsn"),
			MaxOpenConns: v.GetInt("db.max_open_conns"),
		},
		LLM: LLMConfig{
			Provider:          strings.ToLower(v.GetString("llm.provider")),
			APIKey:            v.GetString("llm.api_key"),
			Model:             v.GetString("llm.model"),
			ServerURL:         v.GetString("llm.server_url"),
			Temperature:       v.GetFloat64("llm.temperature"),
			Timeout:           v.GetDuration("llm.timeout"),
			QuestionsPerLevel: v.GetInt("llm.questions_per_level"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Cache: CacheConfig{
			RecordTTL: v.GetDuration("cache.record_ttl"),
		},
		Logger: LoggerConfig{
			Level: strings.ToLower(v.GetString("logger.level")),
			Env:   strings.ToLower(v.GetString("logger.env")),
		},
		History: HistoryConfig{
			DefaultLimit: v.GetInt("history.default_limit"),
			MaxLimit:     v.GetInt("history.max_limit"),
		},
	}
}

// Validate checks values that would otherwise fail deep inside a component.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port: %d", c.Server.Port)
	}
	switch c.DB.Driver {
	case DriverSQLite, DriverOracle:
	default:
		return fmt.Errorf("unsupported db.driver %q (want %q or %q)", c.DB.Driver, DriverSQLite, DriverOracle)
	}
	if c.DB.DSN == "" {
		return fmt.Errorf("db.dsn is required")
	}
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderOllama:
	default:
		return fmt.Errorf("unsupported llm.provider %q", c.LLM.Provider)
	}
	if c.LLM.QuestionsPerLevel <= 0 {
		return fmt.Errorf("llm.questions_per_level must be positive, got %d", c.LLM.QuestionsPerLevel)
	}
	if c.History.DefaultLimit <= 0 || c.History.MaxLimit < c.History.DefaultLimit {
		return fmt.Errorf("invalid history limits: default=%d max=%d", c.History.DefaultLimit, c.History.MaxLimit)
	}
	return nil
}

// RedisEnabled reports whether a record cache should be used.
func (c *Config) RedisEnabled() bool {
	return c.Redis.Address != ""
}
