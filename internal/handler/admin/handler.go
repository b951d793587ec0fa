package admin

import (
	"crypto/subtle"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/folio/backend/internal/model/message"
	"github.com/zhouzirui/folio/backend/pkg/utils"
)

// Handler 管理员留言列表的HTTP处理器
type Handler struct {
	store    message.Store
	password []byte
}

// New 创建管理员留言列表处理器
func New(store message.Store, password string) *Handler {
	return &Handler{store: store, password: []byte(password)}
}

// RegisterRoutes 注册管理员相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/messages", h.handleList)
}

// handleList 校验口令后按时间倒序返回全部留言
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Password string `json:"password"`
	}
	_ = utils.DecodeJSON(r, &payload)

	if !h.authorized(payload.Password) {
		zerolog.Ctx(r.Context()).Warn().Msg("admin password rejected")
		utils.RespondError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	messages, err := h.store.List(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("list messages error")
		utils.RespondError(w, r, http.StatusInternalServerError, "Failed to load messages")
		return
	}
	if messages == nil {
		messages = []message.Message{}
	}

	utils.RespondJSON(w, r, http.StatusOK, messages)
}

func (h *Handler) authorized(password string) bool {
	if len(h.password) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), h.password) == 1
}
