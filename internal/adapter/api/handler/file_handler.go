package handler

import (
	"io"

	"github.com/labstack/echo/v4"

	"sharespace/internal/usecase"
	"sharespace/pkg/errors"
	"sharespace/pkg/response"
)

type FileHandler struct {
	uploader usecase.Uploader
	maxBytes int64
}

func NewFileHandler(uploader usecase.Uploader, maxBytes int64) *FileHandler {
	return &FileHandler{
		uploader: uploader,
		maxBytes: maxBytes,
	}
}

// Upload stores a single multipart file (field: file) in the public bucket and
// returns its URL. The optional folder form field selects the object prefix.
func (h *FileHandler) Upload(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("File is required", err))
	}

	if file.Size > h.maxBytes {
		return response.Error(c, errors.BadRequest("File exceeds the maximum allowed size", nil))
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.BadRequest("Failed to read file", err))
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return response.Error(c, errors.BadRequest("Failed to read file", err))
	}

	folder := c.FormValue("folder")
	if folder == "" {
		folder = "product-images"
	}

	url, err := h.uploader.Upload(c.Request().Context(), data, file.Header.Get("Content-Type"), folder)
	if err != nil {
		return response.Error(c, errors.Internal("Failed to upload file", err))
	}

	return response.Created(c, map[string]string{
		"url": url,
	})
}
