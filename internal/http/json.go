package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nextgen-organics/portal-api/internal/data"
	apperrors "github.com/nextgen-organics/portal-api/internal/errors"
)

// DecodeJSON decodes JSON from the request body into the destination and handles errors.
// Returns true if successful, false if there was an error (error response already written).
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_json", Err: err})
		return false
	}

	return true
}

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Response writer errors (e.g., client disconnect) can't be recovered from here.
		return
	}
}

// ErrorParams groups parameters for WriteError.
type ErrorParams struct {
	Code    int
	ErrCode string
	Err     error
}

// WriteError writes a JSON error response using ErrorParams.
func WriteError(w http.ResponseWriter, p ErrorParams) {
	WriteJSON(w, p.Code, map[string]string{"error": p.ErrCode, "message": p.Err.Error()})
}

// WriteServiceError maps an application error to the matching HTTP status.
func WriteServiceError(w http.ResponseWriter, err error) {
	if isNotFoundSentinel(err) {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
		return
	}
	if errors.Is(err, data.ErrInsufficientStock) || errors.Is(err, data.ErrOrderStatusChanged) {
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "conflict", Err: err})
		return
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "internal_error", Err: err})
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Code {
	case apperrors.ErrCodeNotFound:
		status = http.StatusNotFound
	case apperrors.ErrCodeConflict:
		status = http.StatusConflict
	case apperrors.ErrCodeValidation, apperrors.ErrCodeForeignKey:
		status = http.StatusBadRequest
	case apperrors.ErrCodeForbidden:
		status = http.StatusForbidden
	case apperrors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	case apperrors.ErrCodeCanceled:
		// Client went away; 499 convention from nginx.
		status = 499
	}

	WriteError(w, ErrorParams{Code: status, ErrCode: string(appErr.Code), Err: appErr})
}

// isNotFoundSentinel matches the repository not-found sentinels, which are
// plain errors rather than coded application errors.
func isNotFoundSentinel(err error) bool {
	for _, sentinel := range []error{
		data.ErrProfileNotFound,
		data.ErrVendorNotFound,
		data.ErrCategoryNotFound,
		data.ErrProductNotFound,
		data.ErrOrderNotFound,
		data.ErrBannerNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
