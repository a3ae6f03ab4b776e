package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/goliatone/go-environments/internal/environments"
	"github.com/google/uuid"
)

type environmentCreatePayload struct {
	Name     string     `json:"name"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

type environmentUpdatePayload struct {
	Name       *string    `json:"name,omitempty"`
	Identifier *string    `json:"identifier,omitempty"`
	ParentID   *uuid.UUID `json:"parent_id,omitempty"`
}

type widgetSettingsPayload struct {
	EnvironmentID                *uuid.UUID `json:"environment_id,omitempty"`
	NotificationCenterEncryption bool       `json:"notification_center_encryption"`
}

type regeneratePayload struct {
	EnvironmentID *uuid.UUID `json:"environment_id,omitempty"`
}

type acknowledgedResponse struct {
	Acknowledged bool `json:"acknowledged"`
}

func (api *API) registerEnvironmentRoutes(mux *http.ServeMux, root string) {
	if mux == nil {
		return
	}
	mux.HandleFunc("GET "+root, api.handleEnvironmentList)
	mux.HandleFunc("POST "+root, api.handleEnvironmentCreate)
	mux.HandleFunc("GET "+root+"/me", api.handleEnvironmentMe)
	mux.HandleFunc("GET "+root+"/api-keys", api.handleApiKeyList)
	mux.HandleFunc("POST "+root+"/api-keys/regenerate", api.handleApiKeyRegenerate)
	mux.HandleFunc("PUT "+root+"/widget/settings", api.handleWidgetSettingsUpdate)
	mux.HandleFunc("PUT "+root+"/{id}", api.handleEnvironmentUpdate)
	mux.HandleFunc("DELETE "+root+"/{id}", api.handleEnvironmentDelete)
}

func (api *API) handleEnvironmentList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.environments == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	sess, err := api.resolveSession(r)
	if err != nil {
		writeError(w, err)
		return
	}
	list, err := api.environments.ListEnvironments(r.Context(), sess.OrganizationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *API) handleEnvironmentMe(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.environments == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	sess, err := api.resolveSession(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if sess.EnvironmentID == uuid.Nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found", Message: "session has no active environment"})
		return
	}
	record, err := api.environments.GetEnvironment(r.Context(), sess.OrganizationID, sess.EnvironmentID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *API) handleEnvironmentCreate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.environments == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	sess, err := api.resolveSession(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var payload environmentCreatePayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	created, err := api.environments.CreateEnvironment(r.Context(), environments.CreateEnvironmentInput{
		OrganizationID: sess.OrganizationID,
		UserID:         sess.UserID,
		Name:           payload.Name,
		ParentID:       payload.ParentID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (api *API) handleEnvironmentUpdate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.environments == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	sess, err := api.resolveSession(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	var payload environmentUpdatePayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	updated, err := api.environments.UpdateEnvironment(r.Context(), environments.UpdateEnvironmentInput{
		ID:             id,
		OrganizationID: sess.OrganizationID,
		UserID:         sess.UserID,
		Name:           payload.Name,
		Identifier:     payload.Identifier,
		ParentID:       payload.ParentID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (api *API) handleEnvironmentDelete(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.environments == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	sess, err := api.resolveSession(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	if err := api.environments.DeleteEnvironment(r.Context(), environments.DeleteEnvironmentInput{
		ID:             id,
		OrganizationID: sess.OrganizationID,
		UserID:         sess.UserID,
	}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acknowledgedResponse{Acknowledged: true})
}

func (api *API) handleApiKeyList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.keys == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	sess, err := api.resolveSession(r)
	if err != nil {
		writeError(w, err)
		return
	}
	envID := sess.EnvironmentID
	if raw := r.URL.Query().Get("environment_id"); raw != "" {
		parsed, err := parseUUID(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid environment_id"})
			return
		}
		envID = parsed
	}
	keys, err := api.keys.ListByEnvironment(r.Context(), sess.OrganizationID, envID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, keys)
}

func (api *API) handleApiKeyRegenerate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.keys == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	sess, err := api.resolveSession(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var payload regeneratePayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	envID := sess.EnvironmentID
	if payload.EnvironmentID != nil && *payload.EnvironmentID != uuid.Nil {
		envID = *payload.EnvironmentID
	}
	rotated, err := api.keys.Rotate(r.Context(), sess.OrganizationID, envID, sess.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rotated)
}

func (api *API) handleWidgetSettingsUpdate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.environments == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	sess, err := api.resolveSession(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var payload widgetSettingsPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	envID := sess.EnvironmentID
	if payload.EnvironmentID != nil && *payload.EnvironmentID != uuid.Nil {
		envID = *payload.EnvironmentID
	}
	updated, err := api.environments.UpdateWidgetSettings(r.Context(), environments.UpdateWidgetSettingsInput{
		ID:                           envID,
		OrganizationID:               sess.OrganizationID,
		NotificationCenterEncryption: payload.NotificationCenterEncryption,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
