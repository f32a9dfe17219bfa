package ingest

import (
	"context"
	"io"

	"go.uber.org/zap"

	"person-registry/internal/domain"
	"person-registry/internal/metrics"
)

// BatchSaver ist der Teil des Repositorys, den der Import benötigt.
type BatchSaver interface {
	SaveAll(ctx context.Context, persons []domain.Person) ([]domain.Person, error)
}

// Loader liest die Startdaten ein und speichert sie gesammelt im Repository.
type Loader struct {
	parser  *Parser
	store   BatchSaver
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewLoader erstellt einen Loader. m darf nil sein.
func NewLoader(store BatchSaver, logger *zap.Logger, m *metrics.Metrics) *Loader {
	return &Loader{
		parser:  NewParser(logger, m),
		store:   store,
		logger:  logger,
		metrics: m,
	}
}

// Load liest alle Personen aus r und speichert sie. Fehler werden nur protokolliert, damit ein
// fehlgeschlagener Import den Start der Anwendung nicht verhindert. Rückgabe ist die Anzahl
// gespeicherter Personen.
func (l *Loader) Load(ctx context.Context, r io.Reader, source string) int {
	persons, err := l.parser.Parse(r)
	if err != nil {
		l.logger.Error("quelle konnte nicht vollständig gelesen werden",
			zap.String("quelle", source),
			zap.Error(err),
		)
	}

	if len(persons) == 0 {
		l.logger.Warn("keine daten zu importieren", zap.String("quelle", source))
		return 0
	}

	saved, err := l.store.SaveAll(ctx, persons)
	if err != nil {
		l.logger.Error("personen konnten nicht gespeichert werden",
			zap.String("quelle", source),
			zap.Int("anzahl", len(persons)),
			zap.Error(err),
		)
		return 0
	}

	l.metrics.AddImported(len(saved))
	l.logger.Info("personen importiert",
		zap.String("quelle", source),
		zap.Int("anzahl", len(saved)),
	)
	return len(saved)
}
