package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	hash, err := cfg.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.True(t, cfg.VerifyPassword("correct horse", hash))
	assert.False(t, cfg.VerifyPassword("wrong horse", hash))
}

func TestPasswordConfig_Pepper(t *testing.T) {
	peppered := &PasswordConfig{BcryptCost: 10, Pepper: "pepper"}
	plain := &PasswordConfig{BcryptCost: 10}

	hash, err := peppered.HashPassword("password123")
	require.NoError(t, err)

	assert.True(t, peppered.VerifyPassword("password123", hash))
	assert.False(t, plain.VerifyPassword("password123", hash), "hash depends on the pepper")
}

func TestPasswordConfig_Normalize(t *testing.T) {
	for _, cost := range []int{10, 11, 12, 13, 14} {
		assert.NoError(t, (&PasswordConfig{BcryptCost: cost}).normalize(), "cost %d", cost)
	}
	for _, cost := range []int{0, 9, 15} {
		assert.Error(t, (&PasswordConfig{BcryptCost: cost}).normalize(), "cost %d", cost)
	}
}
