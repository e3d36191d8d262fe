package utils

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

// Envelope is the response body shape shared by every JSON endpoint.
type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func WriteJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func WriteData(w http.ResponseWriter, code int, message string, data any) {
	WriteJSON(w, code, Envelope{Message: message, Data: data})
}

func WriteJSONError(w http.ResponseWriter, message string, err error, code int) {
	body := Envelope{Message: message}
	if err != nil {
		body.Error = err.Error()
	}
	WriteJSON(w, code, body)
}

// ParseInt64 parses a decimal id, rejecting blanks and garbage.
func ParseInt64(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
