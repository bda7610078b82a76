package httpx

import (
	"net/http"

	"github.com/nextgen-organics/portal-api/internal/domain/model"
	"github.com/nextgen-organics/portal-api/internal/service"
)

// BannerHandlers provides HTTP handlers for home-screen banner management.
type BannerHandlers struct {
	Svc *service.BannerService
}

// adminID pulls the caller's user ID for the audit trail; mutations only run
// behind the admin guard, so an absent identity is a wiring bug and reads as
// an unattributed action rather than a failure.
func adminID(r *http.Request) string {
	if identity, ok := GetIdentityFromContext(r.Context()); ok {
		return identity.UserID
	}
	return ""
}

// List handles GET /admin/api/banners.
func (h *BannerHandlers) List(w http.ResponseWriter, r *http.Request) {
	banners, err := h.Svc.List(r.Context(), queryBool(r, "active"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"banners": banners})
}

// Get handles GET /admin/api/banners/{id}.
func (h *BannerHandlers) Get(w http.ResponseWriter, r *http.Request) {
	banner, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, banner)
}

// Create handles POST /admin/api/banners.
func (h *BannerHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBannerRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	banner, err := h.Svc.Create(r.Context(), adminID(r), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, banner)
}

// Update handles PATCH /admin/api/banners/{id}.
func (h *BannerHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateBannerRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	banner, err := h.Svc.Update(r.Context(), adminID(r), r.PathValue("id"), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, banner)
}

// Delete handles DELETE /admin/api/banners/{id}.
func (h *BannerHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), adminID(r), r.PathValue("id")); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
