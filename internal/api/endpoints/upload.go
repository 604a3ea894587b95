package endpoints

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"elearn-backend/internal/env"
)

const (
	maxVideoUploadBytes = 100 << 20
	defaultUploadDir    = "uploads/videos"
	uploadFormField     = "video"
)

// videoUploader stores multipart video uploads on local disk, named by upload
// time so listings sort chronologically.
type videoUploader struct {
	dir      string
	maxBytes int64
	now      func() time.Time
}

func newVideoUploader() *videoUploader {
	return &videoUploader{
		dir:      env.GetOrDefault(env.UploadDir, defaultUploadDir),
		maxBytes: maxVideoUploadBytes,
		now:      time.Now,
	}
}

// Save writes the uploaded file and returns its public serving path.
func (u *videoUploader) Save(r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, u.maxBytes)

	file, header, err := r.FormFile(uploadFormField)
	if err != nil {
		return "", &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Missing or oversized video file",
			ErrorLog:   fmt.Errorf("read form file %q: %w", uploadFormField, err),
		}
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "video/") {
		return "", &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Only video files can be uploaded",
			ErrorLog:   fmt.Errorf("rejected upload with content type %q", contentType),
		}
	}

	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return "", &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("create upload dir %s: %w", u.dir, err),
		}
	}

	filename := fmt.Sprintf("%d%s", u.now().UnixMilli(), filepath.Ext(header.Filename))
	destination := filepath.Join(u.dir, filename)

	out, err := os.Create(destination)
	if err != nil {
		return "", &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("create upload file %s: %w", destination, err),
		}
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		os.Remove(destination)
		return "", &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("write upload file %s: %w", destination, err),
		}
	}

	return "/uploads/videos/" + filename, nil
}
