package httpx

import (
	"errors"
	"net/http"

	domainauth "github.com/nextgen-organics/portal-api/internal/domain/auth"
	"github.com/nextgen-organics/portal-api/internal/domain/model"
	"github.com/nextgen-organics/portal-api/internal/service"
)

// VendorHandlers provides HTTP handlers for vendor onboarding and the admin
// approval workflow.
type VendorHandlers struct {
	Svc *service.VendorService
}

// Register handles vendor self-registration.
// POST /vendor/register.
func (h *VendorHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		FullName string `json:"full_name"`
		Password string `json:"password"`
		ShopName string `json:"shop_name"`
		Phone    string `json:"phone"`
		Address  string `json:"address"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	vendor, err := h.Svc.Register(r.Context(), service.RegisterVendorInput{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
		ShopName: req.ShopName,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, vendor)
}

// List handles the admin vendor listing.
// GET /admin/api/vendors?status=&q=&limit=&offset=.
func (h *VendorHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	opts := model.VendorsListOptions{Limit: limit, Offset: offset, Q: queryStr(r, "q")}
	if s := queryStr(r, "status"); s != nil {
		status := domainauth.ParseVendorStatus(*s)
		opts.Status = &status
	}

	vendors, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"vendors": vendors})
}

// Get handles the admin vendor detail.
// GET /admin/api/vendors/{id}.
func (h *VendorHandlers) Get(w http.ResponseWriter, r *http.Request) {
	vendor, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, vendor)
}

// SetStatus handles an admin approval decision.
// POST /admin/api/vendors/{id}/status.
func (h *VendorHandlers) SetStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentityFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	var req struct {
		Status string  `json:"status"`
		Note   *string `json:"note,omitempty"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	vendor, err := h.Svc.SetStatus(r.Context(), service.SetStatusInput{
		VendorID: r.PathValue("id"),
		Status:   domainauth.VendorStatus(req.Status),
		AdminID:  identity.UserID,
		Note:     req.Note,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, vendor)
}

// Me returns the caller's own vendor record.
// GET /vendor/api/me.
func (h *VendorHandlers) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentityFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	vendor, err := h.Svc.GetByUserID(r.Context(), identity.UserID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, vendor)
}
