package middleware

import (
	"encoding/json"
	"net/http"
)

// writeError schreibt die einheitliche Fehlerantwort {message, details}.
func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"message": msg,
		"details": "uri=" + r.URL.Path,
	})
}
