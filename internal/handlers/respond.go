package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"biletrack/internal/store"
)

// fieldErrors maps a payload field name to its validation message.
type fieldErrors map[string]string

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeInvalid reports a schema-validation failure with per-field details.
func writeInvalid(w http.ResponseWriter, msg string, errs fieldErrors) {
	writeJSON(w, http.StatusBadRequest, map[string]any{"message": msg, "errors": errs})
}

// writeStoreError maps a repository failure to 404 or a generic 500.
func writeStoreError(w http.ResponseWriter, err error, notFoundMsg, failMsg string) {
	if errors.Is(err, store.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, notFoundMsg)
		return
	}
	writeMessage(w, http.StatusInternalServerError, failMsg)
}

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func validDate(s string) bool {
	return dateRe.MatchString(s)
}

func validMealType(s string) bool {
	switch s {
	case "breakfast", "lunch", "dinner", "snack":
		return true
	}
	return false
}

// currentUserID reads the authenticated user id placed in the request
// context by the auth middleware.
func currentUserID(r *http.Request) string {
	id, _ := r.Context().Value("userID").(string)
	return id
}
