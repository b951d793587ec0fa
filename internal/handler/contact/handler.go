package contact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/folio/backend/internal/model/message"
	"github.com/zhouzirui/folio/backend/pkg/utils"
)

// Handler 联系表单的HTTP处理器
type Handler struct {
	store message.Store
	now   func() time.Time
}

// New 创建联系表单处理器
func New(store message.Store) *Handler {
	return &Handler{store: store, now: time.Now}
}

// RegisterRoutes 注册联系表单路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/contact", h.handleSubmit)
}

// formValue 接受 JSON 字符串、数字或布尔值，统一按文本保存。
type formValue string

func (v *formValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = formValue(s)
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*v = formValue(data)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("unsupported form value %s", data)
		}
		*v = formValue(n.String())
	}
	return nil
}

type submitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// handleSubmit 校验并保存一条留言
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name    formValue `json:"name"`
		Email   formValue `json:"email"`
		Phone   formValue `json:"phone"`
		Message formValue `json:"message"`
	}

	if err := utils.DecodeJSON(r, &payload); err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("invalid contact payload")
		utils.RespondError(w, r, http.StatusBadRequest, "Please fill all required fields")
		return
	}

	msg, err := message.New(string(payload.Name), string(payload.Email), string(payload.Phone), string(payload.Message), h.now())
	if err != nil {
		utils.RespondError(w, r, http.StatusBadRequest, "Please fill all required fields")
		return
	}

	if err := h.store.Save(r.Context(), msg); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("contact form error")
		utils.RespondError(w, r, http.StatusInternalServerError, "Failed to save message")
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("message_id", msg.ID).Msg("message saved")
	utils.RespondJSON(w, r, http.StatusCreated, submitResponse{Success: true, Message: "Message saved!"})
}
