package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	require.Equal(t, "localhost", cfg.DBHost)
	require.Equal(t, "3306", cfg.DBPort)
	require.Equal(t, "debug", cfg.GinMode)
	require.Empty(t, cfg.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("ALLOWED_ORIGINS", "https://builder.example.com, https://other.example.com")
	t.Setenv("GOOGLE_KEY", "gk")

	cfg := Load()
	require.Equal(t, "db.internal", cfg.DBHost)
	require.Equal(t, []string{"https://builder.example.com", "https://other.example.com"}, cfg.AllowedOrigins)
	require.Equal(t, "gk", cfg.GoogleKey)
}

func TestSplitOrigins(t *testing.T) {
	require.Nil(t, splitOrigins(""))
	require.Equal(t, []string{"a"}, splitOrigins("a"))
	require.Equal(t, []string{"a", "b"}, splitOrigins(" a ,, b "))
}
