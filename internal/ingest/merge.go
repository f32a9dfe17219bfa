package ingest

import "strings"

const (
	delimiter      = ","
	expectedFields = 4
)

// mergeLines entscheidet, ob line zusammen mit einer zurückgehaltenen Vorzeile einen vollständigen
// Datensatz ergibt. Gibt es eine Vorzeile, wird immer zusammengeführt, ohne erneute Prüfung.
// ok == false bedeutet: line selbst ist unvollständig und muss zurückgehalten werden.
func mergeLines(line, previous string, hasPrevious bool) (logical string, ok bool) {
	if hasPrevious {
		return previous + " " + strings.TrimSpace(line), true
	}
	if strings.TrimSpace(line) == "" || len(strings.Split(line, delimiter)) < expectedFields {
		return "", false
	}
	return line, true
}

// lineMerger hält höchstens eine unvollständige Zeile bis zur nächsten zurück.
// Jeder Einlesevorgang bekommt seinen eigenen lineMerger.
type lineMerger struct {
	pending    string
	hasPending bool
}

// push verarbeitet die nächste physische Zeile und liefert ggf. eine logische Zeile.
func (m *lineMerger) push(line string) (string, bool) {
	logical, ok := mergeLines(line, m.pending, m.hasPending)
	if !ok {
		m.pending, m.hasPending = line, true
		return "", false
	}
	m.pending, m.hasPending = "", false
	return logical, true
}

// residual gibt die am Eingabeende noch zurückgehaltene Zeile zurück. Sie wird nicht mehr verarbeitet.
func (m *lineMerger) residual() (string, bool) {
	return m.pending, m.hasPending
}
