package ingest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"person-registry/internal/domain"
)

// zipCityPattern erwartet "PLZ Stadt", z.B. "67742 Lauterecken".
var zipCityPattern = regexp.MustCompile(`^(\d{5})\s+(.+)$`)

const cityMarker = "-*"

// ParsePerson wandelt die vier Felder eines Datensatzes in eine Person ohne ID um.
func ParsePerson(fields []string) (domain.Person, error) {
	if len(fields) != expectedFields {
		return domain.Person{}, fmt.Errorf("erwartet %d felder, erhalten %d: %w",
			expectedFields, len(fields), domain.ErrInvalidInput)
	}

	zipCity := strings.TrimSpace(fields[2])
	zipcode, err := ExtractZipCode(zipCity)
	if err != nil {
		return domain.Person{}, err
	}
	city, err := ExtractCity(zipCity)
	if err != nil {
		return domain.Person{}, err
	}
	color, err := ParseColor(fields[3])
	if err != nil {
		return domain.Person{}, err
	}

	return domain.Person{
		LastName:  strings.TrimSpace(fields[0]),
		FirstName: strings.TrimSpace(fields[1]),
		Zipcode:   zipcode,
		City:      city,
		Color:     color,
	}, nil
}

// ExtractZipCode liefert die fünfstellige Postleitzahl aus "PLZ Stadt".
func ExtractZipCode(zipCity string) (string, error) {
	m := zipCityPattern.FindStringSubmatch(zipCity)
	if m == nil {
		return "", fmt.Errorf("%q: %w", zipCity, domain.ErrInvalidZipCodeFormat)
	}
	return m[1], nil
}

// ExtractCity liefert den Stadtnamen aus "PLZ Stadt" ohne abschließende "-*"-Markierung.
func ExtractCity(zipCity string) (string, error) {
	m := zipCityPattern.FindStringSubmatch(zipCity)
	if m == nil {
		return "", fmt.Errorf("%q: %w", zipCity, domain.ErrInvalidCityFormat)
	}
	return strings.TrimSpace(strings.TrimSuffix(m[2], cityMarker)), nil
}

// ParseColor wandelt einen numerischen Farbcode aus der Datei in eine Farbe um.
func ParseColor(s string) (domain.Color, error) {
	s = strings.TrimSpace(s)
	code, err := strconv.Atoi(s)
	if err != nil {
		return domain.Color{}, fmt.Errorf("%q: %w", s, domain.ErrInvalidColorNumber)
	}
	color, err := domain.ColorFromCode(code)
	if err != nil {
		return domain.Color{}, fmt.Errorf("%w: %w", domain.ErrInvalidColorNumber, err)
	}
	return color, nil
}
