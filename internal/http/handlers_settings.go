package httpx

import (
	"net/http"

	"github.com/nextgen-organics/portal-api/internal/domain/model"
	"github.com/nextgen-organics/portal-api/internal/service"
)

// SettingsHandlers provides HTTP handlers for the platform settings singleton.
type SettingsHandlers struct {
	Svc *service.SettingsService
}

// Get handles GET /admin/api/settings.
func (h *SettingsHandlers) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Svc.Get(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, settings)
}

// Update handles PUT /admin/api/settings. The payload is the full settings
// row; missing fields fall back to their zero values and fail validation,
// which keeps partial writes from silently zeroing knobs.
func (h *SettingsHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.PlatformSettings
	if !DecodeJSON(w, r, &req) {
		return
	}

	settings, err := h.Svc.Update(r.Context(), adminID(r), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, settings)
}
