package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Port:          "8080",
		Env:           "test",
		JWTSecret:     "secure-secret-at-least-32-chars-long",
		JWTExpiryDays: 7,
		DBPassword:    "secure-password",
		DBSSLMode:     "require",
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("missing port", func(t *testing.T) {
		c := validConfig()
		c.Port = ""
		assert.Error(t, c.Validate())
	})

	t.Run("missing JWT secret", func(t *testing.T) {
		c := validConfig()
		c.JWTSecret = ""
		assert.Error(t, c.Validate())
	})

	t.Run("non-positive expiry", func(t *testing.T) {
		c := validConfig()
		c.JWTExpiryDays = 0
		assert.Error(t, c.Validate())
	})
}

func TestConfig_ValidateProduction(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"strong secrets pass", func(c *Config) {}, false},
		{"default JWT secret rejected", func(c *Config) {
			c.JWTSecret = "your-secret-key-change-in-production"
		}, true},
		{"short JWT secret rejected", func(c *Config) {
			c.JWTSecret = "too-short"
		}, true},
		{"default DB password rejected", func(c *Config) {
			c.DBPassword = "password"
		}, true},
		{"empty DB password rejected", func(c *Config) {
			c.DBPassword = ""
		}, true},
	}

	for _, env := range []string{"production", "prod"} {
		for _, tt := range tests {
			t.Run(env+" "+tt.name, func(t *testing.T) {
				c := validConfig()
				c.Env = env
				tt.mutate(c)

				err := c.Validate()
				if tt.expectError {
					assert.Error(t, err)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	}
}

func TestConfig_AIConfigured(t *testing.T) {
	c := validConfig()

	c.AnthropicAPIKey = ""
	assert.False(t, c.AIConfigured())

	c.AnthropicAPIKey = AIKeyPlaceholder
	assert.False(t, c.AIConfigured())

	c.AnthropicAPIKey = "sk-ant-real-key"
	assert.True(t, c.AIConfigured())
}
