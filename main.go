package main

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"person-registry/internal/dto"
	"person-registry/internal/env"
	"person-registry/internal/handler"
	"person-registry/internal/ingest"
	"person-registry/internal/metrics"
	"person-registry/internal/repository"
	memoryrepo "person-registry/internal/repository/memory"
	postgresrepo "person-registry/internal/repository/postgres"
	sqliterepo "person-registry/internal/repository/sqlite"
	"person-registry/internal/routes"
	"person-registry/internal/service"
)

// Beispieldaten, falls CSV_FILE_PATH nicht existiert.
//
//go:embed sample-input.csv
var embeddedSample []byte

func main() {
	cfg := env.MustLoad()

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger, err := zcfg.Build()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("konfiguration geladen",
		zap.String("data_source", cfg.DataSource),
		zap.String("csv_file_path", cfg.CSVFilePath),
		zap.String("server_addr", cfg.ServerAddr),
		zap.Float64("rate_limit", cfg.RateLimit),
		zap.Int("max_persons", cfg.MaxPersons),
		zap.Stringer("log_level", cfg.LogLevel),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New(prometheus.DefaultRegisterer)

	repo, cleanup := mustInitRepo(ctx, cfg, logger)
	if cleanup != nil {
		defer cleanup()
	}

	src, name := openSource(cfg.CSVFilePath, logger)
	ingest.NewLoader(repo, logger, m).Load(ctx, src, name)
	_ = src.Close()

	svc := service.NewPersonService(repo, dto.NewMapper(), logger, m)
	h := handler.NewPersonHandler(svc, logger)

	r := chi.NewRouter()
	routes.Setup(r, h, logger, cfg.RateLimit, m, prometheus.DefaultGatherer)

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server wird gestartet", zap.String("adresse", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("server wird heruntergefahren")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server beendet mit fehler", zap.Error(err))
		return
	}
	logger.Info("server gestoppt")
}

// openSource öffnet die konfigurierte CSV-Datei. Existiert sie nicht, werden die
// eingebetteten Beispieldaten verwendet.
func openSource(path string, logger *zap.Logger) (io.ReadCloser, string) {
	f, err := os.Open(path)
	if err == nil {
		return f, path
	}
	logger.Warn("csv-datei nicht lesbar, verwende eingebettete beispieldaten",
		zap.String("pfad", path),
		zap.Error(err),
	)
	return io.NopCloser(bytes.NewReader(embeddedSample)), "eingebettet:sample-input.csv"
}

// mustInitRepo erstellt je nach DATA_SOURCE das passende PersonRepository.
// Die zurückgegebene cleanup-Funktion schließt eine offene DB-Verbindung.
func mustInitRepo(ctx context.Context, cfg env.Config, logger *zap.Logger) (repository.PersonRepository, func()) {
	switch cfg.DataSource {
	case env.SourceSQLite:
		repo, err := sqliterepo.NewPersonRepository(cfg.SQLiteDSN, cfg.MaxPersons, logger)
		if err != nil {
			logger.Fatal("sqlite-repository konnte nicht initialisiert werden", zap.Error(err))
		}
		return repo, func() { _ = repo.Close() }

	case env.SourcePostgres:
		repo, err := postgresrepo.Open(ctx, cfg.DatabaseURL, cfg.MaxPersons, logger)
		if err != nil {
			logger.Fatal("postgres-repository konnte nicht initialisiert werden", zap.Error(err))
		}
		return repo, func() { _ = repo.Close() }

	default:
		return memoryrepo.NewPersonRepository(cfg.MaxPersons, logger), nil
	}
}
