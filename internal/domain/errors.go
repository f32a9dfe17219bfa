package domain

import "errors"

var (
	ErrNotFound        = errors.New("nicht gefunden")
	ErrInvalidInput    = errors.New("ungültige eingabe")
	ErrCapacityReached = errors.New("kapazitätsgrenze erreicht")

	// Farb-Lookup in der geschlossenen Aufzählung.
	ErrUnknownColorCode = errors.New("unbekannter farbcode")
	ErrUnknownColorName = errors.New("unbekannter farbname")

	// Feldfehler beim Einlesen; werden im Parser pro Datensatz abgefangen.
	ErrInvalidZipCodeFormat = errors.New("ungültiges plz-format")
	ErrInvalidCityFormat    = errors.New("ungültiges stadt-format")
	ErrInvalidColorNumber   = errors.New("ungültige farbnummer")

	ErrInvalidColor     = errors.New("ungültige farbe")
	ErrInvalidIDFormat  = errors.New("ungültiges id-format")
	ErrMappingFailed    = errors.New("abbildung der person fehlgeschlagen")
	ErrIdentityAssigned = errors.New("id bereits vergeben")
)
