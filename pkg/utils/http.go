package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Request bodies larger than this are rejected by DecodeBody.
const maxBodySize = 1 << 20

func WriteJSON(w http.ResponseWriter, payload any, code int) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(payload)
}

func DecodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to decode body: %w", err)
	}
	return nil
}

// ValidationErrorResponse contains field-specific validation messages
// swagger:model ValidationErrorResponse
type ValidationErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

const KindInvalidRequest = "invalid_request"

func WriteValidationError(w http.ResponseWriter, err error) error {
	return WriteFieldErrors(w, KindInvalidRequest, "invalid request", FieldErrors(err))
}

// WriteFieldErrors writes a 400 with the given error kind and per-field reasons.
func WriteFieldErrors(w http.ResponseWriter, kind, message string, fields map[string]string) error {
	if fields == nil {
		fields = map[string]string{}
	}
	res := ValidationErrorResponse{
		Error:   kind,
		Message: message,
		Fields:  fields,
	}
	return WriteJSON(w, res, http.StatusBadRequest)
}

// FieldErrors maps validator failures to field path and failed tag.
func FieldErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, err := range ve {
			// Namespace starts with the struct type name; keep only the field path.
			ns := err.Namespace()
			if i := strings.IndexByte(ns, '.'); i >= 0 {
				ns = ns[i+1:]
			}
			fields[ns] = err.Tag()
		}
	}
	return fields
}

// ErrorResponse describes a standard error response
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message"`
}

func WriteError(w http.ResponseWriter, message string, code int) error {
	return WriteJSON(w, ErrorResponse{Message: message}, code)
}

// WriteKindError writes an error response tagged with a machine readable kind.
func WriteKindError(w http.ResponseWriter, kind, message string, code int) error {
	return WriteJSON(w, ErrorResponse{Error: kind, Message: message}, code)
}
