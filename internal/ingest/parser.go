package ingest

import (
	"bufio"
	"bytes"
	stdcsv "encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"person-registry/internal/domain"
	"person-registry/internal/metrics"
)

// maxLineLength begrenzt die Länge einer physischen Zeile auf 1 MegaByte.
const maxLineLength = 1 << 20

// csvHeader ist die Kopfzeile der normalisierten CSV, passend zu den csv-Tags von personDTO.
var csvHeader = []string{"nachname", "vorname", "plz_ort", "farbe"}

// personDTO ist eine Zeile der normalisierten CSV vor der Validierung.
type personDTO struct {
	Lastname string `csv:"nachname"`
	Name     string `csv:"vorname"`
	ZipCity  string `csv:"plz_ort"`
	ColorID  string `csv:"farbe"`
}

// Parser liest Personen aus zeilenbasiertem, kommagetrenntem Text.
// Ein Parser hält keinen Zustand zwischen zwei Parse-Aufrufen.
type Parser struct {
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewParser gibt einen Parser zurück. m darf nil sein.
func NewParser(logger *zap.Logger, m *metrics.Metrics) *Parser {
	return &Parser{logger: logger, metrics: m}
}

// Parse liest alle Datensätze aus r. Fehlerhafte Datensätze werden protokolliert und übersprungen.
// Ein Lesefehler beendet den Vorgang; die bis dahin gelesenen Personen werden mit dem Fehler zurückgegeben.
func (p *Parser) Parse(r io.Reader) ([]domain.Person, error) {
	normalized, readErr := p.normalizeCSV(r)

	var rows []*personDTO
	if len(normalized) > 0 {
		if err := gocsv.UnmarshalBytes(normalized, &rows); err != nil {
			return nil, fmt.Errorf("normalisierte csv dekodieren: %w", err)
		}
	}

	persons := make([]domain.Person, 0, len(rows))
	for i, row := range rows {
		person, err := toPerson(row)
		if err != nil {
			p.logger.Warn("ungültiger Datensatz wird übersprungen",
				zap.Int("datensatz", i+1),
				zap.Error(err),
			)
			p.metrics.IncrementSkipped(metrics.SkipParse)
			continue
		}
		persons = append(persons, person)
	}

	if readErr != nil {
		return persons, readErr
	}
	return persons, nil
}

// normalizeCSV führt mehrzeilige Datensätze zusammen und schreibt jeden logischen Datensatz mit genau
// vier Feldern als Zeile einer CSV mit Kopfzeile. Ohne Datensätze ist das Ergebnis leer.
func (p *Parser) normalizeCSV(r io.Reader) ([]byte, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	var (
		buf     bytes.Buffer
		w       = stdcsv.NewWriter(&buf)
		merger  lineMerger
		lineNo  int
		written int
	)

	for scanner.Scan() {
		lineNo++
		logical, ok := merger.push(scanner.Text())
		if !ok {
			p.logger.Debug("mehrzeiliger Datensatz erkannt", zap.Int("zeile", lineNo))
			continue
		}

		fields := strings.Split(logical, delimiter)
		if len(fields) != expectedFields {
			p.logger.Warn("ungültiges Zeilenformat",
				zap.Int("zeile", lineNo),
				zap.Int("felder", len(fields)),
				zap.String("inhalt", logical),
			)
			p.metrics.IncrementSkipped(metrics.SkipFieldCount)
			continue
		}

		if written == 0 {
			if err := w.Write(csvHeader); err != nil {
				return nil, fmt.Errorf("kopfzeile schreiben: %w", err)
			}
		}
		if err := w.Write(fields); err != nil {
			return nil, fmt.Errorf("zeile %d schreiben: %w", lineNo, err)
		}
		written++
	}

	if rest, ok := merger.residual(); ok {
		p.logger.Debug("unvollständiger Datensatz am Dateiende verworfen", zap.String("inhalt", rest))
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv schreiben: %w", err)
	}
	if err := scanner.Err(); err != nil {
		return buf.Bytes(), fmt.Errorf("eingabe lesen: %w", err)
	}
	return buf.Bytes(), nil
}

// toPerson validiert eine normalisierte Zeile und wandelt sie in eine Person um.
func toPerson(dto *personDTO) (domain.Person, error) {
	return ParsePerson([]string{dto.Lastname, dto.Name, dto.ZipCity, dto.ColorID})
}
