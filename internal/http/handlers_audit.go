package httpx

import (
	"net/http"

	"github.com/nextgen-organics/portal-api/internal/core"
	"github.com/nextgen-organics/portal-api/internal/domain/model"
)

// AuditHandlers exposes the admin activity log. Reads go straight to the
// repository; there is no business logic to wrap.
type AuditHandlers struct {
	Actions core.AdminActionRepository
}

// List handles GET /admin/api/actions.
func (h *AuditHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	actions, err := h.Actions.List(r.Context(), model.AdminActionsListOptions{
		Limit:      limit,
		Offset:     offset,
		AdminID:    queryStr(r, "admin_id"),
		TargetType: queryStr(r, "target_type"),
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"actions": actions})
}
