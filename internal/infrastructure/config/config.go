package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	OpenAI      OpenAIConfig    `mapstructure:"openai"`
	Catalog     CatalogConfig   `mapstructure:"catalog"`
	Orders      OrdersConfig    `mapstructure:"orders"`
	WhatsApp    WhatsAppConfig  `mapstructure:"whatsapp"`
	Session     SessionConfig   `mapstructure:"session"`
	Matching    MatchingConfig  `mapstructure:"matching"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	DedupWindow time.Duration   `mapstructure:"dedup_window"`
	LogLevel    string          `mapstructure:"log_level"`
}

// AppConfig identifies the running application.
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// OpenAIConfig holds the recipe-generation API settings.
type OpenAIConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	BaseURL   string        `mapstructure:"base_url"`
	Model     string        `mapstructure:"model"`
	MaxTokens int           `mapstructure:"max_tokens"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// CatalogConfig points at the product catalog collaborator.
type CatalogConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// OrdersConfig points at the order submission collaborator.
type OrdersConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// WhatsAppConfig holds the Cloud API credentials for the webhook channel.
type WhatsAppConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Token       string        `mapstructure:"token"`
	PhoneID     string        `mapstructure:"phone_id"`
	VerifyToken string        `mapstructure:"verify_token"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// SessionConfig holds the Redis conversation-state settings.
type SessionConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	RedisAddr string        `mapstructure:"redis_addr"`
	RedisDB   int           `mapstructure:"redis_db"`
	TTL       time.Duration `mapstructure:"ttl"`
}

// MatchingConfig names the tunable matching policy values. The fuzzy
// threshold went through 90 and 80 in earlier revisions of the matcher;
// it is explicit configuration here, not a hidden constant.
type MatchingConfig struct {
	FuzzyThreshold int `mapstructure:"fuzzy_threshold"`
}

// RateLimitConfig holds the API rate limit settings.
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig loads the configuration from .env and the environment.
func LoadConfig() (*Config, error) {
	// .env is optional; environment variables alone are fine.
	_ = godotenv.Load()

	setDefaults()

	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("openai.api_key", "OPENAI_API_KEY")
	viper.BindEnv("openai.base_url", "OPENAI_BASE_URL")
	viper.BindEnv("openai.model", "OPENAI_MODEL")
	viper.BindEnv("catalog.base_url", "API_URL_PRODUCTOS")
	viper.BindEnv("orders.base_url", "API_URL_PEDIDOS")
	viper.BindEnv("whatsapp.token", "WHATSAPP_TOKEN")
	viper.BindEnv("whatsapp.phone_id", "WHATSAPP_PHONE_ID")
	viper.BindEnv("whatsapp.verify_token", "WHATSAPP_VERIFY_TOKEN")
	viper.BindEnv("session.redis_addr", "REDIS_ADDR")
	viper.BindEnv("matching.fuzzy_threshold", "MATCHING_FUZZY_THRESHOLD")
	viper.BindEnv("log_level", "LOG_LEVEL")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.version", "2.0.0")
	viper.SetDefault("app.name", "chef-virtual")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	viper.SetDefault("openai.base_url", "https://api.openai.com/v1")
	viper.SetDefault("openai.model", "gpt-4o-mini")
	viper.SetDefault("openai.max_tokens", 1024)
	viper.SetDefault("openai.timeout", "60s")

	viper.SetDefault("catalog.base_url", "http://127.0.0.1:5003/productos")
	viper.SetDefault("catalog.timeout", "5s")

	viper.SetDefault("orders.base_url", "http://127.0.0.1:5001/pedidos")
	viper.SetDefault("orders.timeout", "10s")

	viper.SetDefault("whatsapp.enabled", false)
	viper.SetDefault("whatsapp.timeout", "10s")

	viper.SetDefault("session.enabled", true)
	viper.SetDefault("session.redis_addr", "localhost:6379")
	viper.SetDefault("session.redis_db", 0)
	viper.SetDefault("session.ttl", "24h")

	viper.SetDefault("matching.fuzzy_threshold", 80)

	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	viper.SetDefault("dedup_window", "1s")

	viper.SetDefault("log_level", "info")
}

func validateConfig(config *Config) error {
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	if config.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog base url is required")
	}
	if config.Orders.BaseURL == "" {
		return fmt.Errorf("orders base url is required")
	}

	if config.Matching.FuzzyThreshold < 0 || config.Matching.FuzzyThreshold > 100 {
		return fmt.Errorf("matching fuzzy threshold must be within [0, 100]")
	}

	if config.WhatsApp.Enabled {
		if config.WhatsApp.Token == "" {
			return fmt.Errorf("whatsapp token is required when whatsapp is enabled")
		}
		if config.WhatsApp.PhoneID == "" {
			return fmt.Errorf("whatsapp phone id is required when whatsapp is enabled")
		}
	}

	if config.Session.Enabled && config.Session.RedisAddr == "" {
		return fmt.Errorf("session redis addr is required when sessions are enabled")
	}

	return nil
}
