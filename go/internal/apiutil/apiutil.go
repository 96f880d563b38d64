package apiutil

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ncalf/draftboard/go/internal/drafterr"
	"github.com/rs/zerolog/log"
)

// ClientIDHeader identifies the dashboard session issuing a request.
const ClientIDHeader = "X-Client-ID"

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// WriteError maps err onto a status code and writes an ErrorResponse.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := drafterr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request rejected")
	}

	msg := err.Error()
	var saleErr *drafterr.InvalidSaleError
	if errors.As(err, &saleErr) {
		msg = saleErr.Reason
	}
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	WriteJSON(w, status, ErrorResponse{Error: msg, Code: drafterr.Code(err)})
}

// DecodeJSON reads the request body into v.
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return drafterr.Validation("invalid request body: %v", err)
	}
	return nil
}

// QueryInt parses a required integer query parameter.
func QueryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, drafterr.Validation("%s is required", key)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, drafterr.Validation("%s must be an integer", key)
	}
	return v, nil
}

// QueryIntDefault parses an optional integer query parameter.
func QueryIntDefault(r *http.Request, key string, def int) (int, error) {
	if r.URL.Query().Get(key) == "" {
		return def, nil
	}
	return QueryInt(r, key)
}

// ClientID returns the caller's session ID, empty when absent.
func ClientID(r *http.Request) string {
	return r.Header.Get(ClientIDHeader)
}

// Season validates a four digit season.
func Season(r *http.Request) (int, error) {
	season, err := QueryInt(r, "season")
	if err != nil {
		return 0, err
	}
	if season < 1000 || season > 9999 {
		return 0, drafterr.Validation("season must be a four digit year")
	}
	return season, nil
}

// MustPositive is a small guard used by handlers for IDs.
func MustPositive(name string, v int) error {
	if v <= 0 {
		return drafterr.Validation("%s must be positive", name)
	}
	return nil
}
