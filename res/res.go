// Package res holds the JSON response helpers shared by handlers and
// middleware.
package res

import (
	"encoding/json"
	"net/http"
)

func JSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func Error(w http.ResponseWriter, msg string, statusCode int) {
	JSON(w, map[string]any{"error": msg}, statusCode)
}
