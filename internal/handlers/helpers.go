package handlers

import (
	"errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/studiobook/internal/httperr"
	"github.com/BruksfildServices01/studiobook/internal/storage"
)

// writeError answers err with its mapped status.
func writeError(c *gin.Context, err error) {
	if errors.Is(err, storage.ErrStorageUnavailable) {
		httperr.ServiceUnavailable(c, "storage_unavailable", "Image storage is not configured")
		return
	}
	httperr.FromError(c, err)
}

func invalidRequest(c *gin.Context, message string) {
	httperr.BadRequest(c, "invalid_request", message)
}

// parseTimeQuery reads an RFC3339 query parameter.
func parseTimeQuery(c *gin.Context, key string) (time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// readImage reads the "image" multipart field, refusing anything
// larger than storage.MaxUploadBytes.
func readImage(c *gin.Context) ([]byte, bool) {
	fh, err := c.FormFile("image")
	if err != nil {
		invalidRequest(c, "Field image is required")
		return nil, false
	}
	if fh.Size > storage.MaxUploadBytes {
		writeError(c, storage.ErrImageTooLarge)
		return nil, false
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, storage.MaxUploadBytes+1))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	if len(data) > storage.MaxUploadBytes {
		writeError(c, storage.ErrImageTooLarge)
		return nil, false
	}
	return data, true
}
