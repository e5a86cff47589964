package handlers

import (
	"encoding/json"
	"net/http"

	"scrib/pkg/errors"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError answers with the FrontendError form of err
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errors.HTTPStatus(err), errors.ToFrontendError(err))
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, errors.Wrap(err, errors.ErrTypeValidation, "INVALID_JSON", "request body is not valid JSON").
			WithUserMessage("Invalid JSON"))
		return false
	}
	return true
}
