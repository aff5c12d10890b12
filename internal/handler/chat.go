package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/kdduha/chiliguard/internal/models"
)

type chatService interface {
	Open(ctx context.Context) ([]models.ChatMessage, error)
	Ask(ctx context.Context, text string) (*models.ChatMessage, error)
	Messages() []models.ChatMessage
	Clear()
}

type ChatHandler struct {
	service chatService
}

func NewChatHandler(service chatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// Messages godoc
// @Summary Chat transcript
// @Tags chat
// @Produce json
// @Success 200 {array} models.ChatMessage
// @Router /chat [get]
func (h *ChatHandler) Messages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Messages())
}

// Clear godoc
// @Summary Clear the chat
// @Tags chat
// @Success 204
// @Router /chat [delete]
func (h *ChatHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.service.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// Open godoc
// @Summary Open the chat
// @Description Adds the assistant greeting when the chat is empty.
// @Tags chat
// @Produce json
// @Success 200 {array} models.ChatMessage
// @Failure 412 {object} models.ErrorResponse
// @Router /chat/open [post]
func (h *ChatHandler) Open(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.Open(r.Context())
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// Ask godoc
// @Summary Ask the assistant
// @Description Waits for the assistant and returns its reply.
// @Tags chat
// @Accept json
// @Produce json
// @Param request body models.ChatRequest true "Question"
// @Success 200 {object} models.ChatMessage
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 412 {object} models.ErrorResponse
// @Router /chat [post]
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	reply, err := h.service.Ask(r.Context(), req.Text)
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

// AskStream godoc
// @Summary Ask the assistant (SSE)
// @Description Emits a typing event right away, then the reply as a message event.
// @Tags chat
// @Accept json
// @Produce text/event-stream
// @Param request body models.ChatRequest true "Question"
// @Success 200 {object} models.ChatMessage "Stream of events (SSE)"
// @Failure 400 {object} models.ErrorResponse
// @Router /chat/stream [post]
func (h *ChatHandler) AskStream(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher := http.NewResponseController(w)

	fmt.Fprintf(w, "event: typing\ndata: {}\n\n")
	_ = flusher.Flush()

	reply, err := h.service.Ask(r.Context(), req.Text)
	if err != nil {
		fmt.Fprintf(w, "event: error\ndata: %v\n\n", err)
		_ = flusher.Flush()
		return
	}

	data, err := sonic.Marshal(reply)
	if err != nil {
		fmt.Fprintf(w, "event: error\ndata: marshal error %v\n\n", err)
		_ = flusher.Flush()
		return
	}

	fmt.Fprintf(w, "event: message\ndata: %s\n\n", data)
	fmt.Fprintf(w, "event: done\ndata: {}\n\n")
	_ = flusher.Flush()
}
