package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_JWTFromEnv(t *testing.T) {
	tests := []struct {
		name          string
		expiration    string
		expectedHours int
		wantErr       bool
	}{
		{name: "default expiration", expiration: "", expectedHours: 24},
		{name: "custom expiration 12 hours", expiration: "12", expectedHours: 12},
		{name: "zero hours rejected", expiration: "0", wantErr: true},
		{name: "negative hours rejected", expiration: "-3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv("JWT_SECRET", "test-secret-key")
			if tt.expiration != "" {
				t.Setenv("JWT_EXPIRATION_HOURS", tt.expiration)
			}

			cfg, err := Load("")
			require.NoError(t, err, "offline loading never checks JWT settings")
			assert.Equal(t, "test-secret-key", cfg.JWT.Secret)

			cfg.Database.URL = "postgres://localhost/clicksy"
			err = cfg.RequireServe()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedHours, cfg.JWT.ExpirationHours)
		})
	}
}

func TestJWTConfig_MissingSecret(t *testing.T) {
	c := &JWTConfig{ExpirationHours: 24}
	err := c.normalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}
