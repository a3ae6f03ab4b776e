package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-environments/internal/apikeys"
	"github.com/goliatone/go-environments/internal/environments"
	"github.com/goliatone/go-environments/internal/session"
	"github.com/google/uuid"
)

type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Issues  map[string]string `json:"issues,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(target); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	if errors.Is(err, session.ErrSessionRequired) {
		return http.StatusUnauthorized, errorResponse{
			Error:   "unauthorized",
			Message: err.Error(),
		}
	}

	var envNotFound *environments.NotFoundError
	if errors.As(err, &envNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: envNotFound.Error(),
		}
	}

	var keyNotFound *apikeys.NotFoundError
	if errors.As(err, &keyNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: keyNotFound.Error(),
		}
	}

	if errors.Is(err, environments.ErrEnvironmentNotFound) ||
		errors.Is(err, environments.ErrParentEnvironmentNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: err.Error(),
		}
	}

	var issues validation.Errors
	if errors.As(err, &issues) {
		messages := make(map[string]string, len(issues))
		for field, issue := range issues {
			if issue != nil {
				messages[field] = issue.Error()
			}
		}
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
			Issues:  messages,
		}
	}

	if errors.Is(err, environments.ErrEnvironmentNameRequired) ||
		errors.Is(err, environments.ErrEnvironmentOrganizationRequired) ||
		errors.Is(err, environments.ErrParentEnvironmentInvalid) ||
		errors.Is(err, apikeys.ErrApiKeyScopeRequired) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}

func parseUUID(value string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return uuid.Nil, errors.New("uuid required")
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return uuid.Nil, err
	}
	return parsed, nil
}
