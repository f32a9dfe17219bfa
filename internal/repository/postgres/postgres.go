package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"person-registry/internal/domain"
)

const selectPersons = "SELECT id, name, lastname, zipcode, city, color FROM persons"

var schema = []string{`
	CREATE TABLE IF NOT EXISTS persons (
		id       BIGSERIAL PRIMARY KEY,
		name     TEXT NOT NULL,
		lastname TEXT NOT NULL,
		zipcode  TEXT NOT NULL DEFAULT '',
		city     TEXT NOT NULL DEFAULT '',
		color    SMALLINT NOT NULL CHECK (color BETWEEN 1 AND 7)
	)`,
	"CREATE INDEX IF NOT EXISTS persons_color_idx ON persons (color)",
}

// PersonRepository speichert Personen in PostgreSQL.
type PersonRepository struct {
	db         *sql.DB
	maxPersons int
	logger     *zap.Logger
}

// Open verbindet sich über den pgx-Treiber mit dsn und legt das Schema an.
func Open(ctx context.Context, dsn string, maxPersons int, logger *zap.Logger) (*PersonRepository, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres öffnen: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	repo, err := New(ctx, db, maxPersons, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// New verwendet eine bestehende Verbindung und legt das Schema an, falls es fehlt.
func New(ctx context.Context, db *sql.DB, maxPersons int, logger *zap.Logger) (*PersonRepository, error) {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("schema anlegen: %w", err)
		}
	}
	logger.Info("postgres-repository initialisiert", zap.Int("max_personen", maxPersons))
	return &PersonRepository{db: db, maxPersons: maxPersons, logger: logger}, nil
}

// Close schließt die Verbindung.
func (r *PersonRepository) Close() error {
	return r.db.Close()
}

func (r *PersonRepository) FindAll(ctx context.Context) ([]domain.Person, error) {
	return r.queryPersons(ctx, selectPersons+" ORDER BY id")
}

func (r *PersonRepository) FindByID(ctx context.Context, id int64) (domain.Person, error) {
	p, err := scanPerson(r.db.QueryRowContext(ctx, selectPersons+" WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Person{}, fmt.Errorf("person mit id %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Person{}, fmt.Errorf("abfrage person id %d: %w", id, err)
	}
	return p, nil
}

func (r *PersonRepository) FindByColor(ctx context.Context, color domain.Color) ([]domain.Person, error) {
	return r.queryPersons(ctx, selectPersons+" WHERE color = $1 ORDER BY id", color.Code())
}

func (r *PersonRepository) Save(ctx context.Context, person domain.Person) (domain.Person, error) {
	saved, err := r.SaveAll(ctx, []domain.Person{person})
	if err != nil {
		return domain.Person{}, err
	}
	return saved[0], nil
}

// SaveAll fügt alle Personen in einer Transaktion ein. Bei aktiver Kapazitätsgrenze wird die Tabelle
// für die Dauer der Transaktion gegen parallele Einfügungen gesperrt.
func (r *PersonRepository) SaveAll(ctx context.Context, persons []domain.Person) ([]domain.Person, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("transaktion starten: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if r.maxPersons > 0 {
		if _, err := tx.ExecContext(ctx, "LOCK TABLE persons IN SHARE ROW EXCLUSIVE MODE"); err != nil {
			return nil, fmt.Errorf("tabelle sperren: %w", err)
		}
		var count int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM persons").Scan(&count); err != nil {
			return nil, fmt.Errorf("anzahl abfragen: %w", err)
		}
		if count+len(persons) > r.maxPersons {
			return nil, fmt.Errorf("max %d personen: %w", r.maxPersons, domain.ErrCapacityReached)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO persons (name, lastname, zipcode, city, color)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`)
	if err != nil {
		return nil, fmt.Errorf("insert vorbereiten: %w", err)
	}
	defer stmt.Close()

	out := make([]domain.Person, 0, len(persons))
	for _, person := range persons {
		if person.ID.IsSet() {
			return nil, fmt.Errorf("speichern: %w", domain.ErrIdentityAssigned)
		}
		var id int64
		if err := stmt.QueryRowContext(ctx,
			person.FirstName, person.LastName, person.Zipcode, person.City, person.Color.Code(),
		).Scan(&id); err != nil {
			return nil, fmt.Errorf("person einfügen: %w", err)
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
