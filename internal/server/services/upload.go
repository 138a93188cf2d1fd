package services

import (
	"context"
	"io"

	"github.com/dmitrijs2005/lifelog/internal/common"
	"github.com/dmitrijs2005/lifelog/internal/logging"
	"github.com/dmitrijs2005/lifelog/internal/server/storage"
)

// Upload is an incoming file part.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type uploader struct {
	files  storage.FileStore
	logger logging.Logger
}

// save stores u under a fresh name and returns the persisted path.
func (up uploader) save(ctx context.Context, u *Upload, field string, name func(ext string) (string, error)) (string, error) {
	if !storage.IsImage(u.ContentType) {
		return "", common.NewValidationError(field, "%s must be an image", field)
	}
	n, err := name(storage.Ext(u.Filename, u.ContentType))
	if err != nil {
		return "", err
	}
	if err := up.files.Save(ctx, n, u.Body, u.Size, u.ContentType); err != nil {
		return "", err
	}
	return storage.PublicPath(n), nil
}

// discard removes a stored file and only logs failures.
func (up uploader) discard(ctx context.Context, path string) {
	name, ok := storage.NameFromPath(path)
	if !ok {
		return
	}
	if err := up.files.Remove(ctx, name); err != nil {
		up.logger.Warn(ctx, "file cleanup failed", "path", path, "error", err)
	}
}
