package env

import (
	"fmt"

	caarlosenv "github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap/zapcore"
)

// Datenquellen für DATA_SOURCE.
const (
	SourceMemory   = "memory"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
)

// Config enthält alle konfigurierbaren Werte der Anwendung, die über Umgebungsvariablen gesetzt werden können.
type Config struct {
	ServerAddr  string        `env:"SERVER_ADDR" envDefault:":8081" validate:"required"`
	CSVFilePath string        `env:"CSV_FILE_PATH" envDefault:"sample-input.csv"`
	DataSource  string        `env:"DATA_SOURCE" envDefault:"memory" validate:"oneof=memory sqlite postgres"`
	SQLiteDSN   string        `env:"SQLITE_DSN" envDefault:":memory:"`
	DatabaseURL string        `env:"DATABASE_URL" validate:"required_if=DataSource postgres"`
	RateLimit   float64       `env:"RATE_LIMIT" envDefault:"100" validate:"gt=0"`
	MaxPersons  int           `env:"MAX_PERSONS" envDefault:"10000" validate:"gte=0"`
	LogLevel    zapcore.Level `env:"LOG_LEVEL" envDefault:"info"`
}

// Load liest die Konfiguration aus Umgebungsvariablen und prüft sie.
func Load() (Config, error) {
	var cfg Config
	if err := caarlosenv.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("umgebungsvariablen lesen: %w", err)
	}
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("konfiguration ungültig: %w", err)
	}
	return cfg, nil
}

// MustLoad wie Load, bricht aber bei Fehlern ab.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
