package rest

import (
	"bytes"
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

const (
	CodeMissingToken     = "MISSING_TOKEN"
	CodeInvalidToken     = "INVALID_TOKEN"
	CodeUserIdNotAllowed = "USER_ID_NOT_ALLOWED"
	CodeInvalidId        = "INVALID_ID"
	CodeInvalidBody      = "INVALID_BODY"
)

// WriteJSON encodes body as JSON with the given status code. The body is encoded before
// the status is written, so an unencodable body turns into a 500.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		log.Errorf("failed to encode response: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error: failed to encode response"}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Errorf("failed to write response: %v", err)
	}
}

// WriteError writes an ErrorResponse with the given status code.
func WriteError(w http.ResponseWriter, status int, message, code string) {
	WriteJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// WriteInternalError reports a storage or unexpected failure.
func WriteInternalError(w http.ResponseWriter, err error) {
	log.Errorf("request failed: %v", err)
	WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error: " + err.Error()})
}
