//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"

	"person-registry/internal/domain"
	"person-registry/internal/repository/postgres"
)

type PostgresStoreSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	dsn       string
	db        *sql.DB
	repo      *postgres.PersonRepository
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integrationstest im short-modus übersprungen")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("persons"),
		tcpostgres.WithUsername("persons"),
		tcpostgres.WithPassword("persons"),
		tcpostgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.container = container

	s.dsn, err = container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.db, err = sql.Open("pgx", s.dsn)
	s.Require().NoError(err)

	s.repo, err = postgres.New(ctx, s.db, 0, zap.NewNop())
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TearDownSuite() {
	if s.db != nil {
		_ = s.db.Close()
	}
	if s.container != nil {
		_ = testcontainers.TerminateContainer(s.container)
	}
}

func (s *PostgresStoreSuite) SetupTest() {
	_, err := s.db.ExecContext(context.Background(), "TRUNCATE persons RESTART IDENTITY")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestSaveUndFind() {
	ctx := context.Background()

	saved, err := s.repo.SaveAll(ctx, []domain.Person{
		{FirstName: "Hans", LastName: "Müller", Zipcode: "67742", City: "Lauterecken", Color: domain.Blau},
		{FirstName: "Peter", LastName: "Petersen", Zipcode: "18439", City: "Stralsund", Color: domain.Gruen},
	})
	s.Require().NoError(err)
	s.Require().Len(saved, 2)

	id, ok := saved[0].ID.Int64()
	s.Require().True(ok)

	p, err := s.repo.FindByID(ctx, id)
	s.Require().NoError(err)
	s.Equal(saved[0], p)

	all, err := s.repo.FindAll(ctx)
	s.Require().NoError(err)
	s.Len(all, 2)

	gruen, err := s.repo.FindByColor(ctx, domain.Gruen)
	s.Require().NoError(err)
	s.Require().Len(gruen, 1)
	s.Equal("Petersen", gruen[0].LastName)

	rot, err := s.repo.FindByColor(ctx, domain.Rot)
	s.Require().NoError(err)
	s.NotNil(rot)
	s.Empty(rot)
}

func (s *PostgresStoreSuite) TestFindByID_NichtGefunden() {
	_, err := s.repo.FindByID(context.Background(), 424242)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *PostgresStoreSuite) TestSaveAll_Rollback() {
	ctx := context.Background()

	_, err := s.repo.SaveAll(ctx, []domain.Person{
		{FirstName: "A", LastName: "B", Zipcode: "11111", City: "X", Color: domain.Gelb},
		{ID: domain.NewPersonID(7), FirstName: "C", LastName: "D", Zipcode: "22222", City: "Y", Color: domain.Gelb},
	})
	s.ErrorIs(err, domain.ErrIdentityAssigned)

	all, err := s.repo.FindAll(ctx)
	s.Require().NoError(err)
	s.Empty(all)
}

// TestKapazitaetsgrenzeNebenlaeufig prüft, dass die Grenze auch bei parallelen Einfügungen hält.
func (s *PostgresStoreSuite) TestKapazitaetsgrenzeNebenlaeufig() {
	ctx := context.Background()

	limited, err := postgres.Open(ctx, s.dsn, 5, zap.NewNop())
	s.Require().NoError(err)
	defer func() { _ = limited.Close() }()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := limited.Save(ctx, domain.Person{FirstName: "N", LastName: "P", Zipcode: "12345", City: "Z", Color: domain.Rot})
			if err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s.Equal(5, accepted)
}
