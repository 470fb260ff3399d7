package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/devnet")
		t.Setenv("JWT_SECRET", "secret")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, time.Hour, cfg.JWTExpiry)
		assert.Equal(t, 10, cfg.BcryptCost)
		assert.Equal(t, "http://localhost:3000", cfg.FrontendURL)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/devnet")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("JWT_EXPIRY_SECONDS", "60")
		t.Setenv("BCRYPT_COST", "not-a-number")
		t.Setenv("FRONTEND_URL", "https://devnet.example/")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, time.Minute, cfg.JWTExpiry)
		assert.Equal(t, 10, cfg.BcryptCost)
		assert.Equal(t, "https://devnet.example", cfg.FrontendURL)
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/devnet")
		t.Setenv("JWT_SECRET", "")

		_, err := LoadConfig()
		assert.EqualError(t, err, "JWT_SECRET is required")
	})
}
