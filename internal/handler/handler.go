package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"person-registry/internal/domain"
	"person-registry/internal/dto"
)

// maxRequestBody begrenzt die POST-Body-Größe auf 1 MegaByte
const maxRequestBody = 1 << 20

// PersonService definiert den Vertrag, den der Handler von der Service-Schicht erwartet.
type PersonService interface {
	GetAll(ctx context.Context) ([]dto.PersonResponse, error)
	GetByID(ctx context.Context, id string) (dto.PersonResponse, error)
	GetByColor(ctx context.Context, color string) ([]dto.PersonResponse, error)
	Create(ctx context.Context, req dto.CreatePersonRequest) (dto.PersonResponse, error)
}

// PersonHandler stellt Personen-Endpunkte über HTTP bereit.
type PersonHandler struct {
	service PersonService
	logger  *zap.Logger
}

// NewPersonHandler erstellt einen neuen PersonHandler.
func NewPersonHandler(svc PersonService, logger *zap.Logger) *PersonHandler {
	return &PersonHandler{service: svc, logger: logger}
}

// GetAll gibt alle Personen zurück.
func (h *PersonHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	persons, err := h.service.GetAll(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "alle personen abrufen", err)
		return
	}
	writeJSON(w, http.StatusOK, persons)
}

// GetByID gibt eine einzelne Person anhand ihrer ID zurück.
func (h *PersonHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	person, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, "person nach id abrufen", err)
		return
	}
	writeJSON(w, http.StatusOK, person)
}

// GetByColor gibt alle Personen mit passender Lieblingsfarbe zurück.
func (h *PersonHandler) GetByColor(w http.ResponseWriter, r *http.Request) {
	persons, err := h.service.GetByColor(r.Context(), chi.URLParam(r, "color"))
	if err != nil {
		h.writeServiceError(w, r, "personen nach farbe abrufen", err)
		return
	}
	writeJSON(w, http.StatusOK, persons)
}

// Create fügt einen neuen Personendatensatz hinzu.
// Der Request-Body wird auf maxRequestBody begrenzt.
func (h *PersonHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req dto.CreatePersonRequest
	if err := dec.Decode(&req); err != nil {
		msg := "ungültiger anfrage-body"
		if errors.Is(err, io.EOF) {
			msg = "anfrage-body ist leer"
		}
		writeError(w, r, http.StatusBadRequest, msg)
		return
	}

	created, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, "person erstellen", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Health meldet, dass der Server Anfragen annimmt.
func (h *PersonHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeServiceError übersetzt Fehler der Service-Schicht in HTTP-Statuscodes.
func (h *PersonHandler) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrCapacityReached):
		writeError(w, r, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, domain.ErrMappingFailed),
		errors.Is(err, domain.ErrInvalidColor),
		errors.Is(err, domain.ErrInvalidIDFormat),
		errors.Is(err, domain.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(op, zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "interner serverfehler")
	}
}

// errorBody ist die einheitliche Fehlerantwort-Struktur.
type errorBody struct {
	Message string `json:"message"`
	Details string `json:"details"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, errorBody{Message: msg, Details: "uri=" + r.URL.Path})
}

// writeJSON setzt den Content-Type-Header und schreibt v als JSON in w.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
