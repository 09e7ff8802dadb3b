package handlers

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/avikde21/videotube-backend/internal/logger"
)

const maxUploadMemory = 32 << 20

// saveUploadedFile spools the named multipart file field to a temp file and
// returns its path. Returns an empty path without error when the field is
// absent.
func saveUploadedFile(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		return "", err
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, file); err != nil {
		removeTempFile(tmp.Name())
		return "", err
	}

	return tmp.Name(), nil
}

// removeTempFile deletes a spooled upload; a failed delete is logged and
// never escalated.
func removeTempFile(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Log.Errorw("failed to remove temp upload file", "path", path, "error", err)
	}
}
