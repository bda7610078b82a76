package httpx

import (
	"errors"
	"net/http"

	"github.com/nextgen-organics/portal-api/internal/domain/model"
	"github.com/nextgen-organics/portal-api/internal/service"
)

// ProductHandlers provides HTTP handlers for product management. The vendor
// surface is scoped to the caller's own shop; the admin surface sees all
// products with vendor and category names joined in.
type ProductHandlers struct {
	Svc     *service.ProductService
	Vendors *service.VendorService
}

// callerVendorID resolves the requesting vendor's shop ID. Writes an error
// response and returns "" when the caller has no vendor record.
func (h *ProductHandlers) callerVendorID(w http.ResponseWriter, r *http.Request) string {
	identity, ok := GetIdentityFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return ""
	}
	vendor, err := h.Vendors.GetByUserID(r.Context(), identity.UserID)
	if err != nil {
		WriteServiceError(w, err)
		return ""
	}
	return vendor.ID
}

// VendorList handles GET /vendor/api/products.
func (h *ProductHandlers) VendorList(w http.ResponseWriter, r *http.Request) {
	vendorID := h.callerVendorID(w, r)
	if vendorID == "" {
		return
	}

	limit, offset := pagination(r)
	opts := model.ProductsListOptions{
		Limit:      limit,
		Offset:     offset,
		VendorID:   &vendorID,
		CategoryID: queryStr(r, "category_id"),
		Q:          queryStr(r, "q"),
		ActiveOnly: queryBool(r, "active"),
	}

	products, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"products": products})
}

// AdminList handles GET /admin/api/products.
func (h *ProductHandlers) AdminList(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	opts := model.ProductsListOptions{
		Limit:      limit,
		Offset:     offset,
		VendorID:   queryStr(r, "vendor_id"),
		CategoryID: queryStr(r, "category_id"),
		Q:          queryStr(r, "q"),
		ActiveOnly: queryBool(r, "active"),
		MaxStock:   queryInt(r, "max_stock"),
	}

	products, err := h.Svc.ListWithRefs(r.Context(), opts)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"products": products})
}

// Get handles GET /vendor/api/products/{id}.
func (h *ProductHandlers) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, product)
}

// Create handles POST /vendor/api/products. The vendor ID always comes from
// the session, never the payload.
func (h *ProductHandlers) Create(w http.ResponseWriter, r *http.Request) {
	vendorID := h.callerVendorID(w, r)
	if vendorID == "" {
		return
	}

	var req model.CreateProductRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	req.VendorID = vendorID

	product, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, product)
}

// Update handles PATCH /vendor/api/products/{id}.
func (h *ProductHandlers) Update(w http.ResponseWriter, r *http.Request) {
	vendorID := h.callerVendorID(w, r)
	if vendorID == "" {
		return
	}

	var req model.UpdateProductRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	product, err := h.Svc.Update(r.Context(), r.PathValue("id"), vendorID, req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /vendor/api/products/{id}.
func (h *ProductHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	vendorID := h.callerVendorID(w, r)
	if vendorID == "" {
		return
	}

	if err := h.Svc.Delete(r.Context(), r.PathValue("id"), vendorID); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdjustStock handles POST /vendor/api/products/{id}/stock.
func (h *ProductHandlers) AdjustStock(w http.ResponseWriter, r *http.Request) {
	vendorID := h.callerVendorID(w, r)
	if vendorID == "" {
		return
	}

	var req struct {
		Delta int `json:"delta"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	product, err := h.Svc.AdjustStock(r.Context(), r.PathValue("id"), vendorID, req.Delta)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, product)
}

// AdminDelete handles DELETE /admin/api/products/{id} (no ownership check).
func (h *ProductHandlers) AdminDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), r.PathValue("id"), ""); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
