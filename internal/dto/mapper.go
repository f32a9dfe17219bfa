package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"person-registry/internal/domain"
)

// Mapper bildet zwischen API-Darstellungen und dem Domänenmodell ab.
type Mapper struct {
	validate *validator.Validate
}

// NewMapper gibt einen einsatzbereiten Mapper zurück.
func NewMapper() *Mapper {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Mapper{validate: v}
}

// ToDomain wandelt eine Anlage-Anfrage in eine Person ohne ID um.
// Eine unbekannte Farbe ergibt ErrInvalidColor, ungültige Felder ErrInvalidInput.
func (m *Mapper) ToDomain(req CreatePersonRequest) (domain.Person, error) {
	color, err := domain.ColorFromDisplayName(strings.TrimSpace(req.Color))
	if err != nil {
		return domain.Person{}, fmt.Errorf("%w: %s: %w", domain.ErrInvalidColor, req.Color, err)
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Lastname = strings.TrimSpace(req.Lastname)
	req.Zipcode = strings.TrimSpace(req.Zipcode)
	req.City = strings.TrimSpace(req.City)

	if err := m.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return domain.Person{}, fmt.Errorf("%s: %w", validationMessage(verrs), domain.ErrInvalidInput)
		}
		return domain.Person{}, fmt.Errorf("validierung: %v: %w", err, domain.ErrInvalidInput)
	}

	return domain.Person{
		FirstName: req.Name,
		LastName:  req.Lastname,
		Zipcode:   req.Zipcode,
		City:      req.City,
		Color:     color,
	}, nil
}

// ToResponse wandelt eine gespeicherte Person in ihre API-Darstellung um.
func (m *Mapper) ToResponse(p domain.Person) (PersonResponse, error) {
	id, ok := p.ID.Int64()
	if !ok {
		return PersonResponse{}, fmt.Errorf("person ohne id: %w", domain.ErrMappingFailed)
	}
	if !p.Color.Valid() {
		return PersonResponse{}, fmt.Errorf("%w: %s", domain.ErrInvalidColor, p.Color)
	}
	return PersonResponse{
		ID:       id,
		Name:     p.FirstName,
		Lastname: p.LastName,
		Zipcode:  p.Zipcode,
		City:     p.City,
		Color:    p.Color.DisplayName(),
	}, nil
}

// validationMessage fasst Validierungsfehler zu einer lesbaren Meldung zusammen.
func validationMessage(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("feld %s ist erforderlich", e.Field()))
		case "len":
			msgs = append(msgs, fmt.Sprintf("feld %s muss genau %s zeichen lang sein", e.Field(), e.Param()))
		case "number":
			msgs = append(msgs, fmt.Sprintf("feld %s darf nur ziffern enthalten", e.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("feld %s ist ungültig", e.Field()))
		}
	}
	return strings.Join(msgs, ", ")
}
