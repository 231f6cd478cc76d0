package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adityapawar327/ongc-assistant-be/service"
	"github.com/adityapawar327/ongc-assistant-be/types"
	"github.com/adityapawar327/ongc-assistant-be/utils"
)

type DocumentHandler struct {
	files *service.FileService
}

func NewDocumentHandler(files *service.FileService) *DocumentHandler {
	return &DocumentHandler{files: files}
}

// HandleList returns every indexed source with its chunk count.
func (h *DocumentHandler) HandleList(c *gin.Context) {
	sources, err := h.files.ListSources(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: "Failed to list documents",
		})
		return
	}

	c.JSON(http.StatusOK, types.ListDocumentsResponse{
		Documents: sources,
		Total:     len(sources),
	})
}

// HandleClear drops the whole index along with the stored files.
func (h *DocumentHandler) HandleClear(c *gin.Context) {
	if err := h.files.ClearAll(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: "Failed to clear documents",
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status:  "success",
		Message: "All documents cleared",
	})
}

// HandleServe streams a stored document back by its original name.
// Uploads are saved under timestamped names, so the lookup matches on
// the original part of the filename.
func (h *DocumentHandler) HandleServe(c *gin.Context) {
	requested := c.Query("file")
	if requested == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "file query parameter is required",
		})
		return
	}

	path, err := utils.FindFileWithTimestamp(h.files.UploadDir(), requested)
	if err != nil {
		c.JSON(http.StatusNotFound, types.DataResponse{
			Status:  "error",
			Message: "Document not found",
		})
		return
	}

	c.File(path)
}
