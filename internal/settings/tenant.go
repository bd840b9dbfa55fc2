package settings

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/HerbHall/brandkit/internal/theme"
	"github.com/HerbHall/brandkit/internal/themestore"
)

// maxPatchBytes bounds override patch bodies.
const maxPatchBytes = 64 << 10

// SelectPresetRequest is the body for choosing a tenant's preset.
// @Description Request body for selecting a preset.
type SelectPresetRequest struct {
	PresetID string `json:"preset_id" example:"modern"`
}

// DarkModeRequest is the body for setting the dark mode flag.
// @Description Request body for setting dark mode.
type DarkModeRequest struct {
	DarkMode *bool `json:"dark_mode" example:"true"`
}

// store looks up the tenant's theme store and writes the error response
// itself when that fails.
func (h *Handler) store(w http.ResponseWriter, r *http.Request) (*themestore.Store, bool) {
	tenant := r.PathValue("tenant")
	s, err := h.themes.Store(r.Context(), tenant)
	switch {
	case err == nil:
		return s, true
	case errors.Is(err, themestore.ErrInvalidTenant):
		writeSettingsError(w, http.StatusBadRequest, "invalid tenant id")
	case errors.Is(err, themestore.ErrTenantLimit):
		writeSettingsError(w, http.StatusServiceUnavailable, "tenant limit reached")
	default:
		h.logger.Error("failed to load tenant theme", zap.String("tenant", tenant), zap.Error(err))
		writeSettingsError(w, http.StatusInternalServerError, "failed to load theme")
	}
	return nil, false
}

// handleGetTheme returns the tenant's choice and resolved tokens.
//
//	@Summary		Get tenant theme
//	@Description	Get the tenant's persisted choice, the fully resolved token set and its checksum.
//	@Tags			themes
//	@Produce		json
//	@Param			tenant	path		string					true	"Tenant ID"
//	@Success		200		{object}	themestore.Snapshot		"Resolved theme"
//	@Failure		400		{object}	SettingsProblemDetail	"Invalid tenant"
//	@Router			/tenants/{tenant}/theme [get]
func (h *Handler) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	s, ok := h.store(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot())
}

// handleGetVariables returns the ordered variable pairs.
//
//	@Summary		Get theme variables
//	@Description	Get the resolved theme as ordered (flattened key, value) pairs.
//	@Tags			themes
//	@Produce		json
//	@Param			tenant	path		string					true	"Tenant ID"
//	@Success		200		{array}		theme.Pair				"Variables in schema order"
//	@Failure		400		{object}	SettingsProblemDetail	"Invalid tenant"
//	@Router			/tenants/{tenant}/theme/variables [get]
func (h *Handler) handleGetVariables(w http.ResponseWriter, r *http.Request) {
	s, ok := h.store(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Variables())
}

// handleGetStylesheet serves the :root variables block.
//
//	@Summary		Get theme stylesheet
//	@Description	Get the resolved theme as a CSS custom property block. Supports If-None-Match.
//	@Tags			themes
//	@Produce		text/css
//	@Param			tenant	path	string	true	"Tenant ID"
//	@Success		200		{string}	string	"CSS"
//	@Success		304		"Not modified"
//	@Failure		400		{object}	SettingsProblemDetail	"Invalid tenant"
//	@Router			/tenants/{tenant}/theme.css [get]
func (h *Handler) handleGetStylesheet(w http.ResponseWriter, r *http.Request) {
	s, ok := h.store(w, r)
	if !ok {
		return
	}
	snap := s.Snapshot()
	etag := `"` + snap.Checksum + `"`

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, snap.Block)
}

// handleSelectPreset switches the tenant to a registered preset.
//
//	@Summary		Select preset
//	@Description	Select the tenant's preset. The preset must be registered.
//	@Tags			themes
//	@Accept			json
//	@Produce		json
//	@Param			tenant	path		string					true	"Tenant ID"
//	@Param			request	body		SelectPresetRequest		true	"Preset"
//	@Success		200		{object}	themestore.Snapshot		"Resolved theme"
//	@Failure		400		{object}	SettingsProblemDetail	"Invalid request"
//	@Failure		404		{object}	SettingsProblemDetail	"Preset not found"
//	@Router			/tenants/{tenant}/theme/preset [put]
func (h *Handler) handleSelectPreset(w http.ResponseWriter, r *http.Request) {
	var req SelectPresetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PresetID == "" {
		writeSettingsError(w, http.StatusBadRequest, "preset_id is required")
		return
	}
	if !h.themes.Resolver().KnownPreset(req.PresetID) {
		writeSettingsError(w, http.StatusNotFound, "preset not found: "+req.PresetID)
		return
	}

	s, ok := h.store(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.SelectPreset(r.Context(), req.PresetID))
}

// handleSetDarkMode sets the dark mode flag.
//
//	@Summary		Set dark mode
//	@Description	Turn the tenant's dark mode on or off.
//	@Tags			themes
//	@Accept			json
//	@Produce		json
//	@Param			tenant	path		string					true	"Tenant ID"
//	@Param			request	body		DarkModeRequest			true	"Flag"
//	@Success		200		{object}	themestore.Snapshot		"Resolved theme"
//	@Failure		400		{object}	SettingsProblemDetail	"Invalid request"
//	@Router			/tenants/{tenant}/theme/dark-mode [put]
func (h *Handler) handleSetDarkMode(w http.ResponseWriter, r *http.Request) {
	var req DarkModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DarkMode == nil {
		writeSettingsError(w, http.StatusBadRequest, "dark_mode is required")
		return
	}

	s, ok := h.store(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.SetDarkMode(r.Context(), *req.DarkMode))
}

// handleToggleDarkMode flips the dark mode flag.
//
//	@Summary		Toggle dark mode
//	@Description	Flip the tenant's dark mode flag.
//	@Tags			themes
//	@Produce		json
//	@Param			tenant	path		string					true	"Tenant ID"
//	@Success		200		{object}	themestore.Snapshot		"Resolved theme"
//	@Failure		400		{object}	SettingsProblemDetail	"Invalid tenant"
//	@Router			/tenants/{tenant}/theme/dark-mode/toggle [post]
func (h *Handler) handleToggleDarkMode(w http.ResponseWriter, r *http.Request) {
	s, ok := h.store(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.ToggleDarkMode(r.Context()))
}

// handlePatchOverrides deep-merges an override patch.
//
//	@Summary		Patch overrides
//	@Description	Deep-merge a partial token set into the tenant's custom overrides. Unknown keys are rejected.
//	@Tags			themes
//	@Accept			json
//	@Produce		json
//	@Param			tenant	path		string					true	"Tenant ID"
//	@Param			patch	body		object					true	"Partial token set"
//	@Success		200		{object}	themestore.Snapshot		"Resolved theme"
//	@Failure		400		{object}	SettingsProblemDetail	"Schema violation"
//	@Router			/tenants/{tenant}/theme/overrides [patch]
func (h *Handler) handlePatchOverrides(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxPatchBytes+1))
	if err != nil || len(body) > maxPatchBytes {
		writeSettingsError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	patch, err := theme.ParsePatch(body)
	if err != nil {
		var schemaErr *theme.SchemaError
		if errors.As(err, &schemaErr) {
			writeSettingsError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeSettingsError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, ok := h.store(w, r)
	if !ok {
		return
	}
	snap, err := s.PatchOverrides(r.Context(), patch)
	if err != nil {
		writeSettingsError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleReset restores the tenant's created-default choice.
//
//	@Summary		Reset theme
//	@Description	Restore the default preset, clear overrides and turn dark mode off.
//	@Tags			themes
//	@Produce		json
//	@Param			tenant	path		string					true	"Tenant ID"
//	@Success		200		{object}	themestore.Snapshot		"Resolved theme"
//	@Failure		400		{object}	SettingsProblemDetail	"Invalid tenant"
//	@Router			/tenants/{tenant}/theme/reset [post]
func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	s, ok := h.store(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Reset(r.Context()))
}
