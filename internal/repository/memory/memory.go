package memory

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"person-registry/internal/domain"
)

// PersonRepository implementiert repository.PersonRepository und hält alle Personen im Arbeitsspeicher.
type PersonRepository struct {
	mu         sync.RWMutex
	persons    []domain.Person
	nextID     int64
	maxPersons int
	logger     *zap.Logger
}

// NewPersonRepository legt ein leeres Repository an. maxPersons begrenzt die Anzahl; 0 bedeutet unbegrenzt.
func NewPersonRepository(maxPersons int, logger *zap.Logger) *PersonRepository {
	logger.Info("memory-repository initialisiert", zap.Int("max_personen", maxPersons))
	return &PersonRepository{nextID: 1, maxPersons: maxPersons, logger: logger}
}

// FindAll gibt alle Personen in Einfügereihenfolge zurück.
func (r *PersonRepository) FindAll(_ context.Context) ([]domain.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Person, len(r.persons))
	copy(out, r.persons)
	return out, nil
}

// FindByID sucht eine Person anhand ihrer ID.
func (r *PersonRepository) FindByID(_ context.Context, id int64) (domain.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.persons {
		if v, _ := p.ID.Int64(); v == id {
			return p, nil
		}
	}
	return domain.Person{}, fmt.Errorf("person mit id %d: %w", id, domain.ErrNotFound)
}

// FindByColor gibt alle Personen zurück, deren Lieblingsfarbe color ist.
func (r *PersonRepository) FindByColor(_ context.Context, color domain.Color) ([]domain.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Person, 0)
	for _, p := range r.persons {
		if p.Color == color {
			out = append(out, p)
		}
	}
	return out, nil
}

// Save fügt eine neue Person hinzu und vergibt eine eindeutige, monoton steigende ID über den nextID-Zähler.
func (r *PersonRepository) Save(_ context.Context, person domain.Person) (domain.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkCapacity(1); err != nil {
		return domain.Person{}, err
	}
	return r.insert(person)
}

// SaveAll fügt alle Personen hinzu. Schlägt eine fehl, wird keine gespeichert.
func (r *PersonRepository) SaveAll(_ context.Context, persons []domain.Person) ([]domain.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkCapacity(len(persons)); err != nil {
		return nil, err
	}
	for _, p := range persons {
		if p.ID.IsSet() {
			return nil, fmt.Errorf("speichern: %w", domain.ErrIdentityAssigned)
		}
	}

	out := make([]domain.Person, 0, len(persons))
	for _, p := range persons {
		saved, err := r.insert(p)
		if err != nil {
			return nil, err
		}
		out = append(out, saved)
	}
	return out, nil
}

func (r *PersonRepository) checkCapacity(n int) error {
	if r.maxPersons > 0 && len(r.persons)+n > r.maxPersons {
		return fmt.Errorf("max %d personen: %w", r.maxPersons, domain.ErrCapacityReached)
	}
	return nil
}

// insert erwartet, dass r.mu gesperrt ist.
func (r *PersonRepository) insert(person domain.Person) (domain.Person, error) {
	saved, err := person.WithID(r.nextID)
	if err != nil {
		return domain.Person{}, err
	}
	r.nextID++
	r.persons = append(r.persons, saved)
	return saved, nil
}
