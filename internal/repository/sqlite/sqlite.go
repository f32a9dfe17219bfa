package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"person-registry/internal/domain"
)

const selectPersons = "SELECT id, name, lastname, zipcode, city, color FROM persons"

// PersonRepository implementiert repository.PersonRepository
type PersonRepository struct {
	db         *sql.DB
	maxPersons int
	logger     *zap.Logger
}

// NewPersonRepository öffnet die SQLite-Datenbank unter dsn, erstellt das
// Schema und gibt ein einsatzbereites Repository zurück.
// maxPersons begrenzt die Zeilenanzahl; 0 bedeutet unbegrenzt.
func NewPersonRepository(dsn string, maxPersons int, logger *zap.Logger) (*PersonRepository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite öffnen: %w", err)
	}
	// Jede Verbindung zu ":memory:" wäre eine eigene, leere Datenbank.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS persons (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			name     TEXT NOT NULL,
			lastname TEXT NOT NULL,
			zipcode  TEXT NOT NULL DEFAULT '',
			city     TEXT NOT NULL DEFAULT '',
			color    INTEGER NOT NULL CHECK (color BETWEEN 1 AND 7)
		)
	`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("tabelle erstellen: %w", err)
	}

	logger.Info("sqlite-repository initialisiert", zap.String("dsn", dsn))
	return &PersonRepository{db: db, maxPersons: maxPersons, logger: logger}, nil
}

// Close schließt die zugrunde liegende Datenbankverbindung.
func (r *PersonRepository) Close() error {
	return r.db.Close()
}

// FindAll gibt alle Personen zurück.
func (r *PersonRepository) FindAll(ctx context.Context) ([]domain.Person, error) {
	return r.queryPersons(ctx, selectPersons+" ORDER BY id")
}

// FindByID sucht eine Person anhand ihrer ID.
func (r *PersonRepository) FindByID(ctx context.Context, id int64) (domain.Person, error) {
	p, err := scanPerson(r.db.QueryRowContext(ctx, selectPersons+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Person{}, fmt.Errorf("person mit id %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Person{}, fmt.Errorf("abfrage person id %d: %w", id, err)
	}
	return p, nil
}

// FindByColor gibt alle Personen mit passender Lieblingsfarbe zurück.
func (r *PersonRepository) FindByColor(ctx context.Context, color domain.Color) ([]domain.Person, error) {
	return r.queryPersons(ctx, selectPersons+" WHERE color = ? ORDER BY id", color.Code())
}

// Save fügt eine neue Person hinzu und prüft die Kapazitätsgrenze.
func (r *PersonRepository) Save(ctx context.Context, person domain.Person) (domain.Person, error) {
	saved, err := r.SaveAll(ctx, []domain.Person{person})
	if err != nil {
		return domain.Person{}, err
	}
	return saved[0], nil
}

// SaveAll fügt alle Personen in einer Transaktion hinzu.
func (r *PersonRepository) SaveAll(ctx context.Context, persons []domain.Person) ([]domain.Person, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("transaktion starten: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if r.maxPersons > 0 {
		var count int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM persons").Scan(&count); err != nil {
			return nil, fmt.Errorf("anzahl abfragen: %w", err)
		}
		if count+len(persons) > r.maxPersons {
			return nil, fmt.Errorf("max %d personen: %w", r.maxPersons, domain.ErrCapacityReached)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO persons (name, lastname, zipcode, city, color) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return nil, fmt.Errorf("insert vorbereiten: %w", err)
	}
	defer stmt.Close()

	out := make([]domain.Person, 0, len(persons))
	for _, person := range persons {
		if person.ID.IsSet() {
			return nil, fmt.Errorf("speichern: %w", domain.ErrIdentityAssigned)
		}
		res, err := stmt.ExecContext(ctx,
			person.FirstName, person.LastName, person.Zipcode, person.City, person.Color.Code())
		if err != nil {
			return nil, fmt.Errorf("person einfügen: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("letzte id: %w", err)
		}
		saved, err := person.WithID(id)
		if err != nil {
			return nil, err
		}
		out = append(out, saved)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return out, nil
}

// queryPersons führt eine Abfrage aus und sammelt die Zeilen als Personen.
func (r *PersonRepository) queryPersons(ctx context.Context, query string, args ...any) ([]domain.Person, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("abfrage: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Person, 0)
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("zeile lesen: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPerson(s scanner) (domain.Person, error) {
	var (
		p    domain.Person
		id   int64
		code int
	)
	if err := s.Scan(&id, &p.FirstName, &p.LastName, &p.Zipcode, &p.City, &code); err != nil {
		return domain.Person{}, err
	}
	color, err := domain.ColorFromCode(code)
	if err != nil {
		return domain.Person{}, err
	}
	p.Color = color
	p.ID = domain.NewPersonID(id)
	return p, nil
}
