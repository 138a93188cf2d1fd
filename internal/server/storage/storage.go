// Package storage keeps uploaded images. A FileStore addresses files by a
// flat name; records and profiles persist them as "uploads/<name>".
package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/lifelog/internal/common"
)

// PublicPrefix is prepended to a stored name to form the persisted path,
// which is also the URL path files are served from.
const PublicPrefix = "uploads/"

// FileStore saves, serves and removes uploaded files. Open and Remove
// return common.ErrorNotFound for unknown names.
type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Remove(ctx context.Context, name string) error
}

var now = time.Now

// RecordFileName returns "<unix-ms>-<random><ext>".
func RecordFileName(ext string) (string, error) {
	return newName("", ext)
}

// AvatarFileName returns "avatar-<unix-ms>-<random><ext>".
func AvatarFileName(ext string) (string, error) {
	return newName("avatar-", ext)
}

func newName(prefix, ext string) (string, error) {
	suffix, err := common.MakeRandHexString(8)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d-%s%s", prefix, now().UnixMilli(), suffix, ext), nil
}

// Ext picks a file extension for an upload. The client file name wins when
// it has a short alphanumeric extension, otherwise one is derived from the
// content type.
func Ext(filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if validExt(ext) {
		return ext
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}

func validExt(ext string) bool {
	if len(ext) < 2 || len(ext) > 6 {
		return false
	}
	for _, c := range ext[1:] {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// IsImage reports whether contentType is an image media type.
func IsImage(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && strings.HasPrefix(mt, "image/")
}

// PublicPath turns a stored name into the persisted relative path.
func PublicPath(name string) string {
	return PublicPrefix + name
}

// NameFromPath is the inverse of PublicPath. ok is false for paths that do
// not point into the upload area.
func NameFromPath(path string) (name string, ok bool) {
	name, ok = strings.CutPrefix(path, PublicPrefix)
	if !ok || !validName(name) {
		return "", false
	}
	return name, true
}

// ContentType guesses the media type served for name.
func ContentType(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

func checkName(name string) error {
	if !validName(name) {
		return fmt.Errorf("invalid file name %q", name)
	}
	return nil
}
