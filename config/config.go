package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverSQLite   = "sqlite"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// GitHub agent specifics
	GitHub  GitHubConfig
	Storage StorageConfig
	Postgre PostgresConfig
	SQLite  SQLiteConfig
	Agent   AgentConfig

	// LLM Provider Abstraction
	LLM LLMConfig

	// Inbound protection
	RateLimit RateLimitConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// GitHubConfig configures the outbound GitHub REST client and the OAuth app.
type GitHubConfig struct {
	APIURL        string
	APIVersion    string
	Timeout       time.Duration
	CacheTimeout  time.Duration // per-call bound while caching repository trees
	VerifyTimeout time.Duration // bound of the token check on inbound requests
	OAuth         OAuthConfig
}

type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	StateTTL     time.Duration
}

type StorageConfig struct {
	Driver       string
	QueryTimeout time.Duration
}

type PostgresConfig struct {
	Host            string
	Port            int
	DBName          string
	User            string
	Password        string
	SSLMode         string
	MinConns        int
	MaxConns        int
	ConnMaxLifetime time.Duration
}

type SQLiteConfig struct {
	Path string
}

type AgentConfig struct {
	MaxSteps int
}

type RateLimitConfig struct {
	RequestsPerMin int
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"` // Global timeout for entire fallback chain
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// GitHub
	cfg.GitHub.APIURL = viper.GetString("github.api_url")
	cfg.GitHub.APIVersion = viper.GetString("github.api_version")
	cfg.GitHub.Timeout = viper.GetDuration("github.timeout")
	cfg.GitHub.CacheTimeout = viper.GetDuration("github.cache_timeout")
	cfg.GitHub.VerifyTimeout = viper.GetDuration("github.verify_timeout")
	cfg.GitHub.OAuth.ClientID = viper.GetString("github.oauth.client_id")
	cfg.GitHub.OAuth.ClientSecret = viper.GetString("github.oauth.client_secret")
	cfg.GitHub.OAuth.RedirectURL = viper.GetString("github.oauth.redirect_url")
	cfg.GitHub.OAuth.StateTTL = viper.GetDuration("github.oauth.state_ttl")
	if clientID := viper.GetString("git_client_id"); clientID != "" {
		cfg.GitHub.OAuth.ClientID = clientID
	}
	if clientSecret := viper.GetString("git_client_secret"); clientSecret != "" {
		cfg.GitHub.OAuth.ClientSecret = clientSecret
	}

	// Storage
	cfg.Storage.Driver = strings.ToLower(viper.GetString("storage.driver"))
	cfg.Storage.QueryTimeout = viper.GetDuration("storage.query_timeout")
	cfg.Postgre.Host = viper.GetString("postgres.host")
	cfg.Postgre.Port = viper.GetInt("postgres.port")
	cfg.Postgre.DBName = viper.GetString("postgres.db")
	cfg.Postgre.User = viper.GetString("postgres.user")
	cfg.Postgre.Password = viper.GetString("postgres.password")
	cfg.Postgre.SSLMode = viper.GetString("postgres.sslmode")
	cfg.Postgre.MinConns = viper.GetInt("postgres.min_conns")
	cfg.Postgre.MaxConns = viper.GetInt("postgres.max_conns")
	cfg.Postgre.ConnMaxLifetime = viper.GetDuration("postgres.conn_max_lifetime")
	// Flat names used by older deployments (POSTGRES_HOST, POSTGRES_DB, ...)
	if host := viper.GetString("postgres_host"); host != "" {
		cfg.Postgre.Host = host
	}
	if port := viper.GetInt("postgres_port"); port != 0 {
		cfg.Postgre.Port = port
	}
	if db := viper.GetString("postgres_db"); db != "" {
		cfg.Postgre.DBName = db
	}
	if user := viper.GetString("postgres_user"); user != "" {
		cfg.Postgre.User = user
	}
	if password := viper.GetString("postgres_password"); password != "" {
		cfg.Postgre.Password = password
	}
	cfg.SQLite.Path = viper.GetString("sqlite.path")

	if err := validateStorage(cfg); err != nil {
		return nil, err
	}

	// Agent
	cfg.Agent.MaxSteps = viper.GetInt("agent.max_steps")
	cfg.RateLimit.RequestsPerMin = viper.GetInt("rate_limit.requests_per_min")

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")

	// Load provider configurations
	if viper.IsSet("llm.providers") {
		providersRaw := viper.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					provider := ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Timeout:  getStringFromMap(providerMap, "timeout"),
					}
					cfg.LLM.Providers = append(cfg.LLM.Providers, provider)
				}
			}
		}
	}

	// A bare GROQ_API_KEY is enough to run with the default model.
	if len(cfg.LLM.Providers) == 0 {
		if key := viper.GetString("groq_api_key"); key != "" {
			cfg.LLM.Providers = append(cfg.LLM.Providers, ProviderConfig{
				Name:     "groq",
				Enabled:  true,
				Priority: 1,
				APIKey:   key,
				Model:    viper.GetString("groq_model"),
				Timeout:  "60s",
			})
		}
	}

	// Without providers the service still starts; the agent reports itself
	// as not initialized.
	if len(cfg.LLM.Providers) > 0 {
		if err := validateLLMConfig(&cfg.LLM); err != nil {
			return nil, fmt.Errorf("invalid llm config: %w", err)
		}
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8000)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	// GitHub defaults
	viper.SetDefault("github.api_url", "https://api.github.com")
	viper.SetDefault("github.api_version", "2022-11-28")
	viper.SetDefault("github.timeout", "30s")
	viper.SetDefault("github.cache_timeout", "120s")
	viper.SetDefault("github.verify_timeout", "10s")
	viper.SetDefault("github.oauth.state_ttl", "10m")

	// Storage defaults
	viper.SetDefault("storage.driver", StorageDriverPostgres)
	viper.SetDefault("storage.query_timeout", "5s")
	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.port", 5432)
	viper.SetDefault("postgres.sslmode", "disable")
	viper.SetDefault("postgres.min_conns", 1)
	viper.SetDefault("postgres.max_conns", 10)
	viper.SetDefault("postgres.conn_max_lifetime", "30m")
	viper.SetDefault("sqlite.path", "data/github-agent.db")

	viper.SetDefault("agent.max_steps", 10)
	viper.SetDefault("rate_limit.requests_per_min", 30)
	viper.SetDefault("groq_model", "openai/gpt-oss-120b")

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 3)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "120s")
}

func validateStorage(cfg *Config) error {
	switch cfg.Storage.Driver {
	case StorageDriverPostgres:
		if cfg.Postgre.DBName == "" || cfg.Postgre.User == "" {
			return fmt.Errorf("postgres storage requires postgres.db and postgres.user")
		}
		if cfg.Postgre.MinConns < 0 || cfg.Postgre.MaxConns <= 0 || cfg.Postgre.MinConns > cfg.Postgre.MaxConns {
			return fmt.Errorf("invalid postgres pool bounds: min=%d max=%d", cfg.Postgre.MinConns, cfg.Postgre.MaxConns)
		}
	case StorageDriverSQLite:
		if cfg.SQLite.Path == "" {
			return fmt.Errorf("sqlite storage requires sqlite.path")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	return nil
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	// Check if value is in format ${VAR_NAME}
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		// Try viper first (handles both env and config)
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		// Try lowercase version
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		// Try direct os.Getenv as last resort
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("no LLM providers configured - add llm.providers to config.yaml or set GROQ_API_KEY")
	}

	enabledCount := 0
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		// Check required fields
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}

		if provider.Enabled {
			enabledCount++

			// Check priority is valid
			if provider.Priority <= 0 {
				return fmt.Errorf("provider %s: priority must be positive", provider.Name)
			}

			// Check for duplicate priorities
			if priorityMap[provider.Priority] {
				return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
			}
			priorityMap[provider.Priority] = true
		}
	}

	if enabledCount == 0 {
		return fmt.Errorf("no enabled LLM providers")
	}

	return nil
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
