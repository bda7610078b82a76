package httpx

import (
	"errors"
	"net/http"

	"github.com/nextgen-organics/portal-api/internal/service"
)

// maxUploadBytes caps image uploads at 5 MiB.
const maxUploadBytes = 5 << 20

// UploadHandlers provides HTTP handlers for image uploads to the object store.
type UploadHandlers struct {
	Svc *service.UploadService
}

// Upload handles POST /vendor/api/uploads and POST /admin/api/uploads.
// Multipart form with a "file" part; the "kind" field selects the key prefix.
func (h *UploadHandlers) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_multipart", Err: err})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_file",
			Err:     errors.New("multipart field \"file\" is required"),
		})
		return
	}
	defer file.Close()

	kind := r.FormValue("kind")
	if kind == "" {
		kind = "products"
	}

	url, err := h.Svc.UploadImage(r.Context(), service.UploadImageInput{
		Kind:        kind,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]string{"url": url})
}
