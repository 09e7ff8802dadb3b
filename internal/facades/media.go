package facades

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/avikde21/videotube-backend/internal/logger"
)

// MediaUploadFacade uploads local files to the external media host and
// returns hosted URLs. The local file is removed after the call whether or
// not the upload succeeded; a failed removal is logged and never surfaced.
type MediaUploadFacade struct {
	baseURL string
	client  *http.Client
}

// NewMediaUploadFacade creates a new facade for the media host at baseURL.
func NewMediaUploadFacade(baseURL string) *MediaUploadFacade {
	return &MediaUploadFacade{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload sends the file at filePath to the media host and returns the
// hosted URL.
func (f *MediaUploadFacade) Upload(ctx context.Context, filePath string) (string, error) {
	if filePath == "" {
		return "", errors.New("no file path found")
	}
	defer f.removeLocal(filePath)

	file, err := os.Open(filePath)
	if err != nil {
		logger.Log.Errorw("failed to open file for upload", "path", filePath, "error", err)
		return "", err
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+"/upload", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Log.Errorw("media host request failed", "path", filePath, "error", err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		logger.Log.Errorw("media host returned non-success status", "path", filePath, "status", resp.StatusCode)
		return "", fmt.Errorf("media host returned status %d", resp.StatusCode)
	}

	var uploaded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		logger.Log.Errorw("failed to decode media host response", "path", filePath, "error", err)
		return "", err
	}
	if uploaded.URL == "" {
		return "", errors.New("media host response missing url")
	}

	return uploaded.URL, nil
}

func (f *MediaUploadFacade) removeLocal(filePath string) {
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		logger.Log.Errorw("failed to remove local upload file", "path", filePath, "error", err)
	}
}
