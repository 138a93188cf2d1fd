package rest

import (
	"errors"
	"mime"
	"net/http"

	"github.com/dmitrijs2005/lifelog/internal/common"
	"github.com/dmitrijs2005/lifelog/internal/server/services"
)

type formData struct {
	r *http.Request
}

// parseForm accepts multipart and urlencoded bodies.
func parseForm(r *http.Request) (*formData, error) {
	err := r.ParseMultipartForm(multipartMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, err
		}
		return nil, common.NewValidationError("body", msgBadRequest)
	}
	return &formData{r: r}, nil
}

func (f *formData) cleanup() {
	if f.r.MultipartForm != nil {
		_ = f.r.MultipartForm.RemoveAll()
	}
}

func (f *formData) value(key string) string {
	return f.r.PostFormValue(key)
}

// file returns the named part as an Upload, or nil when absent. The
// returned func closes the part.
func (f *formData) file(key string) (*services.Upload, func(), error) {
	noop := func() {}
	if f.r.MultipartForm == nil {
		return nil, noop, nil
	}
	file, fh, err := f.r.FormFile(key)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, noop, nil
		}
		return nil, noop, err
	}
	return &services.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        file,
	}, func() { file.Close() }, nil
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}
