package generativeAI

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/FACorreiaa/go-trip-planner/internal/api"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

type textGenerator interface {
	Generate(ctx context.Context, prompt string) string
}

type ChatHandler struct {
	logger    *slog.Logger
	generator textGenerator
}

func NewChatHandler(generator textGenerator, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		logger:    logger,
		generator: generator,
	}
}

// Chat godoc
// @Summary      Ask Gemini
// @Description  Sends the prompt as is. Failures come back as placeholder answers, not error statuses.
// @Tags         Gemini
// @Accept       json
// @Produce      json
// @Param        request body types.ChatRequest true "Prompt"
// @Success      200 {object} types.ChatResponse
// @Failure      400 {object} api.ErrorBody "Invalid request"
// @Router       /gemini/chat [post]
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "prompt is required")
		return
	}

	answer := h.generator.Generate(r.Context(), req.Prompt)
	h.logger.DebugContext(r.Context(), "Gemini chat answered", slog.Int("answer_len", len(answer)))
	api.WriteJSONResponse(w, r, http.StatusOK, types.ChatResponse{Answer: answer})
}
