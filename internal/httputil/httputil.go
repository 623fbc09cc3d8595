package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/apperr"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/logging"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20 // 1 MiB

type errorBody struct {
	Error  string             `json:"error"`
	Detail string             `json:"detail,omitempty"`
	Fields apperr.FieldErrors `json:"fields,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already out; nothing left to tell the client.
		logrus.WithError(err).Warn("failed to encode response")
	}
}

// WriteError renders err in the shared error shape. Internal errors are
// logged and their message is not sent to the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	e := apperr.As(err)
	status := e.Status()

	body := errorBody{Error: string(e.Kind), Detail: e.Detail, Fields: e.Fields}
	if status >= http.StatusInternalServerError {
		logging.FromContext(r.Context()).WithError(err).Error("request failed")
		body.Detail = "internal server error"
	}
	WriteJSON(w, status, body)
}

// DecodeJSON reads a single JSON object from the request body into dst.
// Unknown fields are ignored; malformed JSON is a validation failure on the
// pseudo-field "body".
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Field("body", "request body is required")
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperr.Field("body", "request body too large")
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return apperr.Field(typeErr.Field, fmt.Sprintf("expected %s", typeErr.Type))
		}
		return apperr.Field("body", "malformed JSON")
	}
	return nil
}

// AddServerTiming appends a Server-Timing metric in milliseconds.
func AddServerTiming(w http.ResponseWriter, name string, d time.Duration) {
	w.Header().Add("Server-Timing", fmt.Sprintf("%s;dur=%.1f", name, float64(d.Microseconds())/1000))
}

// IsPartial reports whether the request asks for a partial update.
func IsPartial(r *http.Request) bool {
	return strings.EqualFold(r.Method, http.MethodPatch)
}
