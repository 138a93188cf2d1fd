package rest

import (
	"io"
	"net/http"

	"github.com/dmitrijs2005/lifelog/internal/server/storage"
	"github.com/gorilla/mux"
)

// serveUpload streams a stored image. Uploads are public like the static
// directory they replace.
func (h *handlers) serveUpload(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	rc, err := h.files.Open(r.Context(), name)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	defer rc.Close()

	hdr := w.Header()
	hdr.Set("Content-Type", storage.ContentType(name))
	hdr.Set("X-Content-Type-Options", "nosniff")
	hdr.Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Warn(r.Context(), "upload stream interrupted", "name", name, "error", err)
	}
}
