package http

import (
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"

	"github.com/clocklabs/timeclock-backend-go/internal/handler/http/response"
	"github.com/clocklabs/timeclock-backend-go/internal/pkg/storage"
	"github.com/go-chi/chi/v5"
)

// ArtifactHandler serves stored files behind the signed links minted by
// storage.GetURL. The exp/sig query pair is the only access control on this
// route, so requests carry no session.
type ArtifactHandler interface {
	Serve(w http.ResponseWriter, r *http.Request)
}

type ArtifactHandlerImpl struct {
	storage *storage.LocalStorage
}

func NewArtifactHandler(localStorage *storage.LocalStorage) ArtifactHandler {
	return &ArtifactHandlerImpl{storage: localStorage}
}

// Serve implements ArtifactHandler.
func (h *ArtifactHandlerImpl) Serve(w http.ResponseWriter, r *http.Request) {
	filePath := chi.URLParam(r, "*")

	if !h.storage.VerifyURL(filePath, r.URL.Query()) {
		response.Unauthorized(w, "Link is invalid or has expired")
		return
	}

	file, err := h.storage.Download(r.Context(), filePath)
	if err != nil {
		response.NotFound(w, "File not found")
		return
	}
	defer file.Close()

	contentType := mime.TypeByExtension(path.Ext(filePath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+path.Base(filePath)+`"`)

	if _, err := io.Copy(w, file); err != nil {
		slog.Error("Artifact stream error", "path", filePath, "error", err)
	}
}
