package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: 8080},
		Catalog:  CatalogConfig{BaseURL: "http://127.0.0.1:5003/productos"},
		Orders:   OrdersConfig{BaseURL: "http://127.0.0.1:5001/pedidos"},
		Matching: MatchingConfig{FuzzyThreshold: 80},
		Session:  SessionConfig{Enabled: true, RedisAddr: "localhost:6379", TTL: time.Hour},
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAI.BaseURL)
	assert.Equal(t, 80, cfg.Matching.FuzzyThreshold)
	assert.NotEmpty(t, cfg.Catalog.BaseURL)
	assert.NotEmpty(t, cfg.Orders.BaseURL)
	assert.False(t, cfg.WhatsApp.Enabled)
}

func TestValidateConfig(t *testing.T) {
	assert.NoError(t, validateConfig(validTestConfig()))

	cfg := validTestConfig()
	cfg.Server.Port = 0
	assert.Error(t, validateConfig(cfg))

	cfg = validTestConfig()
	cfg.Catalog.BaseURL = ""
	assert.Error(t, validateConfig(cfg))

	cfg = validTestConfig()
	cfg.Matching.FuzzyThreshold = 101
	assert.Error(t, validateConfig(cfg))

	cfg = validTestConfig()
	cfg.WhatsApp.Enabled = true
	assert.Error(t, validateConfig(cfg), "whatsapp needs a token and phone id")
	cfg.WhatsApp.Token = "tok"
	cfg.WhatsApp.PhoneID = "12345"
	assert.NoError(t, validateConfig(cfg))

	cfg = validTestConfig()
	cfg.Session.RedisAddr = ""
	assert.Error(t, validateConfig(cfg))
}
