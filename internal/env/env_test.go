package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoad_Standardwerte(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Config{
		ServerAddr:  ":8081",
		CSVFilePath: "sample-input.csv",
		DataSource:  SourceMemory,
		SQLiteDSN:   ":memory:",
		RateLimit:   100,
		MaxPersons:  10_000,
		LogLevel:    zapcore.InfoLevel,
	}, cfg)
}

func TestLoad_Ueberschrieben(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9000")
	t.Setenv("CSV_FILE_PATH", "/data/persons.csv")
	t.Setenv("DATA_SOURCE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/persons")
	t.Setenv("RATE_LIMIT", "2.5")
	t.Setenv("MAX_PERSONS", "0")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.ServerAddr)
	assert.Equal(t, "/data/persons.csv", cfg.CSVFilePath)
	assert.Equal(t, SourcePostgres, cfg.DataSource)
	assert.Equal(t, "postgres://u:p@localhost/persons", cfg.DatabaseURL)
	assert.Equal(t, 2.5, cfg.RateLimit)
	assert.Zero(t, cfg.MaxPersons)
	assert.Equal(t, zapcore.DebugLevel, cfg.LogLevel)
}

func TestLoad_Fehler(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unbekannte Datenquelle", map[string]string{"DATA_SOURCE": "csv"}},
		{"postgres ohne URL", map[string]string{"DATA_SOURCE": "postgres"}},
		{"Rate-Limit keine Zahl", map[string]string{"RATE_LIMIT": "viel"}},
		{"Rate-Limit null", map[string]string{"RATE_LIMIT": "0"}},
		{"negative Kapazität", map[string]string{"MAX_PERSONS": "-1"}},
		{"unbekanntes Log-Level", map[string]string{"LOG_LEVEL": "laut"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestMustLoad_Panic(t *testing.T) {
	t.Setenv("DATA_SOURCE", "csv")
	assert.Panics(t, func() { MustLoad() })
}
