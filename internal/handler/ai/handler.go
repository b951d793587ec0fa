package ai

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/folio/backend/pkg/utils"
)

// Completer produces a text completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Handler AI 代理的HTTP处理器
type Handler struct {
	completer Completer
}

// New 创建AI代理处理器
func New(completer Completer) *Handler {
	return &Handler{completer: completer}
}

// RegisterRoutes 注册AI相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/ai", h.handleComplete)
}

func (h *Handler) handleComplete(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Prompt string `json:"prompt"`
	}

	// malformed bodies fall through to the empty prompt check
	_ = utils.DecodeJSON(r, &payload)
	if payload.Prompt == "" {
		utils.RespondError(w, r, http.StatusBadRequest, "Prompt is required")
		return
	}

	text, err := h.completer.Complete(r.Context(), payload.Prompt)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("AI API error")
		utils.RespondError(w, r, http.StatusInternalServerError, "Failed to get AI response")
		return
	}

	utils.RespondJSON(w, r, http.StatusOK, map[string]string{"text": text})
}
