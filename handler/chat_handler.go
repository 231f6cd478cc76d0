package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adityapawar327/ongc-assistant-be/service"
	"github.com/adityapawar327/ongc-assistant-be/types"
)

type ChatHandler struct {
	rag *service.RAGService
}

func NewChatHandler(rag *service.RAGService) *ChatHandler {
	return &ChatHandler{rag: rag}
}

// HandleQuery answers a single question and returns the full result at
// once.
func (h *ChatHandler) HandleQuery(c *gin.Context) {
	var req types.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Invalid request body",
		})
		return
	}

	result, err := h.rag.Query(c.Request.Context(), req)
	if err != nil {
		status, message := queryErrorResponse(err)
		c.JSON(status, types.DataResponse{Status: "error", Message: message})
		return
	}

	c.JSON(http.StatusOK, result)
}

// streamFrame is one server-sent event emitted while streaming.
type streamFrame struct {
	Type    string      `json:"type"`
	Content interface{} `json:"content"`
}

// HandleStream answers a question as a server-sent event stream:
// chunk frames in arrival order, one sources frame, then a [DONE]
// sentinel. In-stream failures are signaled with an error frame.
func (h *ChatHandler) HandleStream(c *gin.Context) {
	var req types.StreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Invalid request body",
		})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	sources, err := h.rag.StreamQuery(c.Request.Context(), req.Question, func(fragment string) {
		h.sendFrame(c, streamFrame{Type: "chunk", Content: fragment})
	}, req.Language, req.AccuracyMode, req.ContextWindow)

	if err != nil {
		_, message := queryErrorResponse(err)
		h.sendFrame(c, streamFrame{Type: "error", Content: message})
		return
	}

	h.sendFrame(c, streamFrame{Type: "sources", Content: sources})
	c.SSEvent("message", "[DONE]")
	c.Writer.Flush()
}

// HandleClearHistory drops the stored turns for one conversation.
func (h *ChatHandler) HandleClearHistory(c *gin.Context) {
	var req struct {
		ConversationID string `json:"conversation_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ConversationID == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "conversation_id is required",
		})
		return
	}

	h.rag.ClearHistory(req.ConversationID)
	c.JSON(http.StatusOK, types.DataResponse{Status: "success"})
}

func (h *ChatHandler) sendFrame(c *gin.Context, frame streamFrame) {
	payload, err := json.Marshal(frame)
	if err != nil {
		return
	}
	c.SSEvent("message", string(payload))
	c.Writer.Flush()
}

// queryErrorResponse maps pipeline errors onto HTTP responses. Auth
// failures keep their remediation message; everything else collapses
// to a generic failure so internals never cross the boundary.
func queryErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, types.ErrEmptyQuestion):
		return http.StatusBadRequest, types.ErrEmptyQuestion.Error()
	case errors.Is(err, types.ErrModelAuth):
		return http.StatusInternalServerError, err.Error()
	default:
		return http.StatusInternalServerError, "Failed to process query"
	}
}
