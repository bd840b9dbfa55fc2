// Package settings provides HTTP handlers for theme settings: the preset
// catalogue and each tenant's theme choice.
package settings

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/HerbHall/brandkit/internal/theme"
	"github.com/HerbHall/brandkit/internal/themestore"
)

// SettingsProblemDetail represents an RFC 7807 error response for settings endpoints.
// @Description RFC 7807 Problem Details error response.
type SettingsProblemDetail struct {
	Type   string `json:"type" example:"https://brandkit.dev/problems/settings-error"`
	Title  string `json:"title" example:"Bad Request"`
	Status int    `json:"status" example:"400"`
	Detail string `json:"detail" example:"theme: colors.brand: unknown key"`
}

// PresetRequest is the body for registering a tenant preset.
// @Description A named, versioned partial token set.
type PresetRequest struct {
	ID          string      `json:"id" example:"acme-brand"`
	Name        string      `json:"name" example:"Acme"`
	Description string      `json:"description" example:"Acme corporate identity"`
	Version     string      `json:"version" example:"1.0.0"`
	Tokens      theme.Patch `json:"tokens" swaggertype:"object"`
}

// Handler provides HTTP handlers for theme settings endpoints.
type Handler struct {
	themes *themestore.Manager
	logger *zap.Logger
}

// NewHandler creates a settings Handler.
func NewHandler(themes *themestore.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		themes: themes,
		logger: logger,
	}
}

// RegisterRoutes registers settings-related routes on the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Preset catalogue (shared by all tenants)
	mux.HandleFunc("GET /api/v1/settings/themes/presets", h.handleListPresets)
	mux.HandleFunc("POST /api/v1/settings/themes/presets", h.handleRegisterPreset)
	mux.HandleFunc("GET /api/v1/settings/themes/presets/{id}", h.handleGetPreset)

	// Per-tenant theme
	mux.HandleFunc("GET /api/v1/tenants/{tenant}/theme", h.handleGetTheme)
	mux.HandleFunc("GET /api/v1/tenants/{tenant}/theme/variables", h.handleGetVariables)
	mux.HandleFunc("GET /api/v1/tenants/{tenant}/theme.css", h.handleGetStylesheet)
	mux.HandleFunc("PUT /api/v1/tenants/{tenant}/theme/preset", h.handleSelectPreset)
	mux.HandleFunc("PUT /api/v1/tenants/{tenant}/theme/dark-mode", h.handleSetDarkMode)
	mux.HandleFunc("POST /api/v1/tenants/{tenant}/theme/dark-mode/toggle", h.handleToggleDarkMode)
	mux.HandleFunc("PATCH /api/v1/tenants/{tenant}/theme/overrides", h.handlePatchOverrides)
	mux.HandleFunc("POST /api/v1/tenants/{tenant}/theme/reset", h.handleReset)
}

// handleListPresets returns every registered preset in registration order.
//
//	@Summary		List presets
//	@Description	Get all registered theme presets (built-in first, then tenant presets).
//	@Tags			settings
//	@Produce		json
//	@Success		200	{array}	theme.PresetEntry	"List of presets"
//	@Router			/settings/themes/presets [get]
func (h *Handler) handleListPresets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.themes.Resolver().Presets().List())
}

// handleGetPreset returns one preset.
//
//	@Summary		Get preset
//	@Description	Get a single theme preset by ID.
//	@Tags			settings
//	@Produce		json
//	@Param			id	path		string					true	"Preset ID"
//	@Success		200	{object}	theme.PresetEntry		"Preset"
//	@Failure		404	{object}	SettingsProblemDetail	"Preset not found"
//	@Router			/settings/themes/presets/{id} [get]
func (h *Handler) handleGetPreset(w http.ResponseWriter, r *http.Request) {
	p, ok := h.themes.Resolver().Presets().Get(r.PathValue("id"))
	if !ok {
		writeSettingsError(w, http.StatusNotFound, "preset not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleRegisterPreset appends a tenant preset to the registry.
//
//	@Summary		Register preset
//	@Description	Register a new tenant preset. Presets are append-only: an ID can be registered once.
//	@Tags			settings
//	@Accept			json
//	@Produce		json
//	@Param			preset	body		PresetRequest			true	"Preset"
//	@Success		201		{object}	theme.PresetEntry		"Registered preset"
//	@Failure		400		{object}	SettingsProblemDetail	"Validation error"
//	@Failure		409		{object}	SettingsProblemDetail	"Preset ID already registered"
//	@Router			/settings/themes/presets [post]
func (h *Handler) handleRegisterPreset(w http.ResponseWriter, r *http.Request) {
	var req PresetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSettingsError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	stored, err := h.themes.RegisterPreset(r.Context(), theme.PresetEntry{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Version:     req.Version,
		Tokens:      req.Tokens,
	})
	var schemaErr *theme.SchemaError
	switch {
	case errors.Is(err, theme.ErrPresetExists):
		writeSettingsError(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, theme.ErrInvalidPresetID), errors.Is(err, theme.ErrInvalidVersion), errors.As(err, &schemaErr):
		writeSettingsError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.logger.Error("failed to register preset", zap.String("preset", req.ID), zap.Error(err))
		writeSettingsError(w, http.StatusInternalServerError, "failed to register preset")
		return
	}

	writeJSON(w, http.StatusCreated, stored)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeSettingsError writes an RFC 7807 problem response.
func writeSettingsError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(SettingsProblemDetail{
		Type:   "https://brandkit.dev/problems/settings-error",
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	})
}
