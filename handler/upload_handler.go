package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adityapawar327/ongc-assistant-be/service"
	"github.com/adityapawar327/ongc-assistant-be/types"
)

const (
	maxUploadFiles = 10
	maxUploadSize  = 50 << 20
)

type UploadHandler struct {
	files *service.FileService
}

func NewUploadHandler(files *service.FileService) *UploadHandler {
	return &UploadHandler{files: files}
}

// HandleUpload ingests a batch of uploaded documents. Each file
// succeeds or fails on its own; one unreadable file never aborts the
// rest of the batch.
func (h *UploadHandler) HandleUpload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Invalid multipart form",
		})
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "No files uploaded",
		})
		return
	}
	if len(headers) > maxUploadFiles {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: fmt.Sprintf("Too many files, maximum is %d", maxUploadFiles),
		})
		return
	}

	results := make([]types.FileResult, 0, len(headers))
	totalChunks := 0
	for _, header := range headers {
		result := types.FileResult{Filename: header.Filename}
		switch {
		case header.Size > maxUploadSize:
			result.Error = "File too large"
		default:
			added, err := h.files.IngestUpload(c.Request.Context(), header)
			if err != nil {
				result.Error = uploadErrorMessage(err)
			} else {
				result.Success = true
				result.ChunksAdded = added
				totalChunks += added
			}
		}
		results = append(results, result)
	}

	c.JSON(http.StatusOK, types.UploadResponse{
		Message:     fmt.Sprintf("Processed %d file(s)", len(results)),
		Files:       results,
		TotalChunks: totalChunks,
	})
}

func uploadErrorMessage(err error) string {
	if errors.Is(err, types.ErrUnsupportedFormat) {
		return err.Error()
	}
	return "Failed to process file"
}
