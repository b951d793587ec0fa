package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/folio/backend/internal/config"
)

var (
	ErrEmptyPrompt   = errors.New("prompt is required")
	ErrEmptyResponse = errors.New("model returned no text")
)

// Service forwards single prompts to a chat model and returns the text.
type Service struct {
	chatModel model.BaseChatModel
	modelName string
	timeout   time.Duration
}

// NewService creates a new AI service instance from configuration.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return NewServiceWithModel(chatModel, cfg.Model, cfg.Timeout), nil
}

// NewServiceWithModel wraps an existing chat model. A non-positive timeout
// leaves the call bounded only by ctx.
func NewServiceWithModel(chatModel model.BaseChatModel, modelName string, timeout time.Duration) *Service {
	return &Service{
		chatModel: chatModel,
		modelName: modelName,
		timeout:   timeout,
	}
}

// Complete sends prompt verbatim as one user message and waits for the full
// completion.
func (s *Service) Complete(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	response, err := s.chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", fmt.Errorf("failed to generate completion: %w", err)
	}
	if response == nil || response.Content == "" {
		return "", ErrEmptyResponse
	}

	zerolog.Ctx(ctx).Debug().
		Str("model", s.modelName).
		Int("prompt_length", len(prompt)).
		Int("length", len(response.Content)).
		Dur("elapsed", time.Since(start)).
		Msg("generated completion")
	return response.Content, nil
}
