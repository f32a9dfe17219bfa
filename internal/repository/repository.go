package repository

import (
	"context"

	"person-registry/internal/domain"
)

// PersonRepository abstrahiert den Datenzugriff auf Personen.
// Save und SaveAll vergeben die ID; eine bereits gesetzte ID wird mit domain.ErrIdentityAssigned abgelehnt.
type PersonRepository interface {
	FindAll(ctx context.Context) ([]domain.Person, error)
	FindByID(ctx context.Context, id int64) (domain.Person, error)
	FindByColor(ctx context.Context, color domain.Color) ([]domain.Person, error)
	Save(ctx context.Context, person domain.Person) (domain.Person, error)
	SaveAll(ctx context.Context, persons []domain.Person) ([]domain.Person, error)
}
