package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextgen-organics/portal-api/internal/data"
	apperrors "github.com/nextgen-organics/portal-api/internal/errors"
)

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"repo not-found sentinel", data.ErrProductNotFound, http.StatusNotFound, "not_found"},
		{"wrapped not-found sentinel", errors.Join(errors.New("get product"), data.ErrVendorNotFound), http.StatusNotFound, "not_found"},
		{"insufficient stock", data.ErrInsufficientStock, http.StatusConflict, "conflict"},
		{"concurrent status change", data.ErrOrderStatusChanged, http.StatusConflict, "conflict"},
		{"coded not found", apperrors.NotFound("order"), http.StatusNotFound, "not_found"},
		{"coded conflict", apperrors.Conflict("already advanced"), http.StatusConflict, "conflict"},
		{"validation", apperrors.Validation("name is required"), http.StatusBadRequest, "validation"},
		{"foreign key", apperrors.ForeignKey("unknown category"), http.StatusBadRequest, "foreign_key"},
		{"forbidden", apperrors.Forbidden("not your order"), http.StatusForbidden, "forbidden"},
		{"plain error", errors.New("disk full"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteServiceError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body["error"])
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("valid body decodes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Kale"}`))
		rec := httptest.NewRecorder()

		var p payload
		require.True(t, DecodeJSON(rec, req, &p))
		assert.Equal(t, "Kale", p.Name)
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Kale","bogus":1}`))
		rec := httptest.NewRecorder()

		var p payload
		require.False(t, DecodeJSON(rec, req, &p))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
		rec := httptest.NewRecorder()

		var p payload
		require.False(t, DecodeJSON(rec, req, &p))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
