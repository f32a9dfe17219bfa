package domain

import (
	"fmt"
	"strings"
)

// Color ist eine Lieblingsfarbe aus der festen Farbtabelle. Der Nullwert ist keine gültige Farbe.
type Color struct {
	code int
}

var (
	Blau    = Color{1}
	Gruen   = Color{2}
	Violett = Color{3}
	Rot     = Color{4}
	Gelb    = Color{5}
	Tuerkis = Color{6}
	Weiss   = Color{7}
)

type colorEntry struct {
	tag         string
	displayName string
}

// colorTable bildet Farbcodes aus der CSV-Datei auf Tag und Anzeigenamen ab.
var colorTable = map[int]colorEntry{
	1: {"BLAU", "blau"},
	2: {"GRUEN", "grün"},
	3: {"VIOLETT", "violett"},
	4: {"ROT", "rot"},
	5: {"GELB", "gelb"},
	6: {"TUERKIS", "türkis"},
	7: {"WEISS", "weiß"},
}

// Colors gibt alle Farben in Code-Reihenfolge zurück.
func Colors() []Color {
	return []Color{Blau, Gruen, Violett, Rot, Gelb, Tuerkis, Weiss}
}

// ColorFromCode sucht eine Farbe anhand ihres numerischen Codes.
func ColorFromCode(code int) (Color, error) {
	if _, ok := colorTable[code]; !ok {
		return Color{}, fmt.Errorf("code %d: %w", code, ErrUnknownColorCode)
	}
	return Color{code}, nil
}

// ColorFromDisplayName sucht eine Farbe anhand ihres Anzeigenamens, ohne Groß-/Kleinschreibung zu beachten.
func ColorFromDisplayName(name string) (Color, error) {
	for code, e := range colorTable {
		if strings.EqualFold(e.displayName, name) {
			return Color{code}, nil
		}
	}
	return Color{}, fmt.Errorf("name %q: %w", name, ErrUnknownColorName)
}

func (c Color) Code() int {
	return c.code
}

// DisplayName liefert den deutschen Anzeigenamen, z.B. "grün". Für ungültige Farben ist er leer.
func (c Color) DisplayName() string {
	return colorTable[c.code].displayName
}

func (c Color) Tag() string {
	return colorTable[c.code].tag
}

// Valid meldet, ob c Mitglied der Farbtabelle ist.
func (c Color) Valid() bool {
	_, ok := colorTable[c.code]
	return ok
}

func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Color(%d)", c.code)
	}
	return c.DisplayName()
}
