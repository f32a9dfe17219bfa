package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"person-registry/internal/domain"
	"person-registry/internal/dto"
	"person-registry/internal/metrics"
	"person-registry/internal/repository"
)

// PersonService kapselt die Geschäftslogik für Personenoperationen.
type PersonService struct {
	repo    repository.PersonRepository
	mapper  *dto.Mapper
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewPersonService gibt einen einsatzbereiten PersonService zurück. m darf nil sein.
func NewPersonService(repo repository.PersonRepository, mapper *dto.Mapper, logger *zap.Logger, m *metrics.Metrics) *PersonService {
	return &PersonService{repo: repo, mapper: mapper, logger: logger, metrics: m}
}

// GetAll gibt alle Personen in der Reihenfolge des Repositorys zurück.
func (s *PersonService) GetAll(ctx context.Context) ([]dto.PersonResponse, error) {
	persons, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("alle personen laden: %w", err)
	}
	return s.toResponses(persons)
}

// GetByID sucht eine einzelne Person anhand ihrer ID in Textform.
func (s *PersonService) GetByID(ctx context.Context, id string) (dto.PersonResponse, error) {
	personID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return dto.PersonResponse{}, fmt.Errorf("%w: %q", domain.ErrInvalidIDFormat, id)
	}

	person, err := s.repo.FindByID(ctx, personID)
	if err != nil {
		return dto.PersonResponse{}, err
	}
	return s.toResponse(person)
}

// GetByColor gibt alle Personen mit passender Lieblingsfarbe zurück.
// Eine unbekannte Farbe gilt als nicht gefunden; das Repository wird dann nicht abgefragt.
func (s *PersonService) GetByColor(ctx context.Context, color string) ([]dto.PersonResponse, error) {
	c, err := domain.ColorFromDisplayName(strings.TrimSpace(color))
	if err != nil {
		s.logger.Warn("unbekannte farbe angefragt", zap.String("farbe", color))
		return nil, fmt.Errorf("ungültige farbe %q: %w", color, domain.ErrNotFound)
	}

	persons, err := s.repo.FindByColor(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("personen nach farbe %s laden: %w", c, err)
	}
	return s.toResponses(persons)
}

// Create validiert die Anfrage und speichert eine neue Person.
func (s *PersonService) Create(ctx context.Context, req dto.CreatePersonRequest) (dto.PersonResponse, error) {
	color, err := domain.ColorFromDisplayName(strings.TrimSpace(req.Color))
	if err != nil {
		s.logger.Warn("ungültige farbe beim erstellen", zap.String("farbe", req.Color))
		return dto.PersonResponse{}, fmt.Errorf("%w: %q", domain.ErrInvalidColor, req.Color)
	}

	person, err := s.mapper.ToDomain(req)
	if err != nil {
		return dto.PersonResponse{}, err
	}
	person.Color = color

	saved, err := s.repo.Save(ctx, person)
	if err != nil {
		return dto.PersonResponse{}, fmt.Errorf("person speichern: %w", err)
	}

	s.metrics.IncrementPersonsCreated()
	if id, ok := saved.ID.Int64(); ok {
		s.logger.Debug("person angelegt", zap.Int64("id", id))
	}
	return s.toResponse(saved)
}

func (s *PersonService) toResponses(persons []domain.Person) ([]dto.PersonResponse, error) {
	out := make([]dto.PersonResponse, 0, len(persons))
	for _, p := range persons {
		resp, err := s.toResponse(p)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// toResponse fasst jeden Abbildungsfehler als domain.ErrMappingFailed zusammen.
func (s *PersonService) toResponse(p domain.Person) (dto.PersonResponse, error) {
	resp, err := s.mapper.ToResponse(p)
	if err != nil {
		s.logger.Error("person konnte nicht abgebildet werden", zap.Error(err))
		return dto.PersonResponse{}, fmt.Errorf("%w: %w", domain.ErrMappingFailed, err)
	}
	return resp, nil
}
