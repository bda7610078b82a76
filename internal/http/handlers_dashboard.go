package httpx

import (
	"errors"
	"net/http"

	"github.com/nextgen-organics/portal-api/internal/service"
)

// DashboardHandlers provides the read-only metric endpoints behind both
// dashboards.
type DashboardHandlers struct {
	Svc *service.DashboardService
}

// Admin handles GET /admin/api/dashboard.
func (h *DashboardHandlers) Admin(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.Svc.AdminMetrics(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, metrics)
}

// Vendor handles GET /vendor/api/dashboard.
func (h *DashboardHandlers) Vendor(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentityFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	metrics, err := h.Svc.VendorMetricsForUser(r.Context(), identity.UserID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, metrics)
}
