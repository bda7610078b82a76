package httpx

import (
	"errors"
	"net/http"
	"time"

	"github.com/nextgen-organics/portal-api/internal/domain/model"
	"github.com/nextgen-organics/portal-api/internal/service"
)

// OrderHandlers provides HTTP handlers for the order fulfillment flow. Vendors
// see and advance their own orders; admins get a read-only view across all
// vendors.
type OrderHandlers struct {
	Svc     *service.OrderService
	Vendors *service.VendorService
}

func (h *OrderHandlers) callerVendorID(w http.ResponseWriter, r *http.Request) string {
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

// orderListOptions builds list filters from query parameters shared by both
// the vendor and admin listings.
func orderListOptions(r *http.Request) model.OrdersListOptions {
	limit, offset := pagination(r)
	opts := model.OrdersListOptions{Limit: limit, Offset: offset}
	if s := queryStr(r, "status"); s != nil {
		if status, ok := model.ParseOrderStatus(*s); ok {
			opts.Status = &status
		}
	}
	if v := queryStr(r, "since"); v != nil {
		if t, err := time.Parse(time.RFC3339, *v); err == nil {
			opts.Since = &t
		}
	}
	if v := queryStr(r, "until"); v != nil {
		if t, err := time.Parse(time.RFC3339, *v); err == nil {
			opts.Until = &t
		}
	}
	return opts
}

// VendorList handles GET /vendor/api/orders.
func (h *OrderHandlers) VendorList(w http.ResponseWriter, r *http.Request) {
	vendorID := h.callerVendorID(w, r)
	if vendorID == "" {
		return
	}

	opts := orderListOptions(r)
	opts.VendorID = &vendorID

	orders, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

// VendorGet handles GET /vendor/api/orders/{id}.
func (h *OrderHandlers) VendorGet(w http.ResponseWriter, r *http.Request) {
	vendorID := h.callerVendorID(w, r)
	if vendorID == "" {
		return
	}

	order, err := h.Svc.Get(r.Context(), r.PathValue("id"), vendorID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, order)
}

// Advance handles POST /vendor/api/orders/{id}/advance.
func (h *OrderHandlers) Advance(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentityFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}
	vendorID := h.callerVendorID(w, r)
	if vendorID == "" {
		return
	}

	order, err := h.Svc.Advance(r.Context(), r.PathValue("id"), vendorID, identity.UserID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, order)
}

// Cancel handles POST /vendor/api/orders/{id}/cancel.
func (h *OrderHandlers) Cancel(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentityFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}
	vendorID := h.callerVendorID(w, r)
	if vendorID == "" {
		return
	}

	order, err := h.Svc.Cancel(r.Context(), r.PathValue("id"), vendorID, identity.UserID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, order)
}

// AdminList handles GET /admin/api/orders.
func (h *OrderHandlers) AdminList(w http.ResponseWriter, r *http.Request) {
	opts := orderListOptions(r)
	opts.VendorID = queryStr(r, "vendor_id")

	orders, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

// AdminGet handles GET /admin/api/orders/{id}.
func (h *OrderHandlers) AdminGet(w http.ResponseWriter, r *http.Request) {
	order, err := h.Svc.Get(r.Context(), r.PathValue("id"), "")
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, order)
}
