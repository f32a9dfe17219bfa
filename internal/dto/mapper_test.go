package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"person-registry/internal/domain"
)

func gueltigeAnfrage() CreatePersonRequest {
	return CreatePersonRequest{
		Name:     "Hans",
		Lastname: "Müller",
		Zipcode:  "67742",
		City:     "Lauterecken",
		Color:    "blau",
	}
}

func TestToDomain(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(r *CreatePersonRequest)
		want    domain.Person
		wantErr error
	}{
		{
			name: "gültige Anfrage",
			want: domain.Person{FirstName: "Hans", LastName: "Müller", Zipcode: "67742", City: "Lauterecken", Color: domain.Blau},
		},
		{
			name:   "Farbe ohne Beachtung der Groß-/Kleinschreibung",
			modify: func(r *CreatePersonRequest) { r.Color = "GRÜN" },
			want:   domain.Person{FirstName: "Hans", LastName: "Müller", Zipcode: "67742", City: "Lauterecken", Color: domain.Gruen},
		},
		{
			name:   "Leerzeichen werden entfernt",
			modify: func(r *CreatePersonRequest) { r.City = "  Lauterecken "; r.Name = " Hans" },
			want:   domain.Person{FirstName: "Hans", LastName: "Müller", Zipcode: "67742", City: "Lauterecken", Color: domain.Blau},
		},
		{
			name:    "unbekannte Farbe",
			modify:  func(r *CreatePersonRequest) { r.Color = "neon" },
			wantErr: domain.ErrInvalidColor,
		},
		{
			name:    "fehlende Farbe",
			modify:  func(r *CreatePersonRequest) { r.Color = "" },
			wantErr: domain.ErrInvalidColor,
		},
		{
			name:    "fehlender Name",
			modify:  func(r *CreatePersonRequest) { r.Name = "  " },
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "PLZ mit Buchstaben",
			modify:  func(r *CreatePersonRequest) { r.Zipcode = "12a45" },
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "PLZ zu kurz",
			modify:  func(r *CreatePersonRequest) { r.Zipcode = "1234" },
			wantErr: domain.ErrInvalidInput,
		},
	}

	m := NewMapper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := gueltigeAnfrage()
			if tt.modify != nil {
				tt.modify(&req)
			}
			got, err := m.ToDomain(req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, domain.Person{}, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToDomain_Fehlermeldung(t *testing.T) {
	req := gueltigeAnfrage()
	req.Name = ""
	req.Zipcode = "1"

	_, err := NewMapper().ToDomain(req)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "feld name ist erforderlich")
	assert.Contains(t, err.Error(), "feld zipcode muss genau 5 zeichen lang sein")
}

func TestToResponse(t *testing.T) {
	p := domain.Person{
		ID: domain.NewPersonID(3), FirstName: "Johnny", LastName: "Johnson",
		Zipcode: "88888", City: "made up", Color: domain.Violett,
	}

	got, err := NewMapper().ToResponse(p)
	require.NoError(t, err)
	assert.Equal(t, PersonResponse{
		ID: 3, Name: "Johnny", Lastname: "Johnson", Zipcode: "88888", City: "made up", Color: "violett",
	}, got)
}

func TestToResponse_UngueltigeFarbe(t *testing.T) {
	_, err := NewMapper().ToResponse(domain.Person{ID: domain.NewPersonID(1)})
	require.ErrorIs(t, err, domain.ErrInvalidColor)
}

func TestToResponse_OhneID(t *testing.T) {
	_, err := NewMapper().ToResponse(domain.Person{Color: domain.Rot})
	require.ErrorIs(t, err, domain.ErrMappingFailed)
}

func TestRundreise_ResponseUndZurueck(t *testing.T) {
	m := NewMapper()
	for _, c := range domain.Colors() {
		original := domain.Person{
			ID: domain.NewPersonID(9), FirstName: "Gerda", LastName: "Gerber",
			Zipcode: "76535", City: "Woanders", Color: c,
		}

		resp, err := m.ToResponse(original)
		require.NoError(t, err)

		back, err := m.ToDomain(CreatePersonRequest{
			Name: resp.Name, Lastname: resp.Lastname, Zipcode: resp.Zipcode, City: resp.City, Color: resp.Color,
		})
		require.NoError(t, err)

		original.ID = domain.PersonID{}
		assert.Equal(t, original, back)
	}
}
