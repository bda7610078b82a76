package httpx

import (
	"net/http"

	"github.com/nextgen-organics/portal-api/internal/domain/model"
	"github.com/nextgen-organics/portal-api/internal/service"
)

// CategoryHandlers provides HTTP handlers for the category catalog. Mutations
// are admin-only; vendors get read access for product forms.
type CategoryHandlers struct {
	Svc *service.CategoryService
}

// List handles GET /admin/api/categories and GET /vendor/api/categories.
func (h *CategoryHandlers) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Svc.List(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

// Get handles GET /admin/api/categories/{id}.
func (h *CategoryHandlers) Get(w http.ResponseWriter, r *http.Request) {
	category, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, category)
}

// Create handles POST /admin/api/categories.
func (h *CategoryHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCategoryRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	category, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, category)
}

// Update handles PATCH /admin/api/categories/{id}.
func (h *CategoryHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateCategoryRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	category, err := h.Svc.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, category)
}

// Delete handles DELETE /admin/api/categories/{id}.
func (h *CategoryHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
