// Package assistant exposes the dashboard's AI features: contextual chat,
// egg-production prediction and text-to-speech. Remote failures are never
// fatal; they map to a user-facing message at the call site.
package assistant

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/quackworks/duckfarm/internal/domain/models"
	"github.com/quackworks/duckfarm/internal/store"
	"github.com/quackworks/duckfarm/pkg/clients/genai"
)

const systemPrompt = `You are a helpful assistant for a duck farm management dashboard. Answer questions about the farm's ducks, egg production, feed inventory and finances. Be concise and practical. When farm data is attached, base your answers on it.`

// ErrDisabled indicates no API key was configured for the assistant.
var ErrDisabled = errors.New("assistant: not configured")

// Service wires the generative client to the state store.
type Service struct {
	client       genai.Client
	store        *store.Store
	defaultVoice string
	logger       *zap.Logger
}

// NewService builds an assistant over the given client. A nil client yields
// a service whose operations fail with ErrDisabled.
func NewService(client genai.Client, st *store.Store, defaultVoice string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:       client,
		store:        st,
		defaultVoice: defaultVoice,
		logger:       logger,
	}
}

// farmContext is the compact snapshot attached to chat requests when the
// caller asks for data-aware answers.
type farmContext struct {
	Company           string                     `json:"company,omitempty"`
	Ducks             []models.Duck              `json:"ducks"`
	TotalDucks        int                        `json:"totalDucks"`
	DailyProduction   []models.DailyProduction   `json:"dailyProduction"`
	MonthlyProduction []models.MonthlyProduction `json:"monthlyProduction"`
	Feeds             []models.Feed              `json:"feeds"`
	Transactions      []models.Transaction       `json:"transactions"`
}

// Chat forwards the conversation to the model, optionally attaching the
// current farm data as structured context.
func (s *Service) Chat(ctx context.Context, messages []genai.ChatMessage, includeFarmData bool) (string, error) {
	if s.client == nil {
		return "", ErrDisabled
	}

	req := genai.ChatRequest{
		Messages:     messages,
		SystemPrompt: systemPrompt,
	}
	if includeFarmData {
		state := s.store.State()
		req.FarmContext = farmContext{
			Company:           state.CompanyInfo.Name,
			Ducks:             state.Ducks,
			TotalDucks:        s.store.TotalDuckQuantity(),
			DailyProduction:   state.DailyProduction,
			MonthlyProduction: state.MonthlyProduction,
			Feeds:             state.Feeds,
			Transactions:      state.Transactions,
		}
	}

	reply, err := s.client.Chat(ctx, req)
	if err != nil {
		s.logger.Warn("chat request failed", zap.Error(err))
		return "", fmt.Errorf("assistant chat: %w", err)
	}
	return reply, nil
}

// Predict returns an egg-production estimate with a textual rationale for
// the given husbandry parameters.
func (s *Service) Predict(ctx context.Context, req genai.PredictionRequest) (genai.Prediction, error) {
	if s.client == nil {
		return genai.Prediction{}, ErrDisabled
	}

	prediction, err := s.client.Predict(ctx, req)
	if err != nil {
		s.logger.Warn("prediction request failed", zap.Error(err))
		return genai.Prediction{}, fmt.Errorf("assistant prediction: %w", err)
	}
	return prediction, nil
}

// Synthesize converts text to audio. An empty voice falls back to the
// company profile's chosen voice, then to the configured default.
func (s *Service) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	if s.client == nil {
		return nil, ErrDisabled
	}

	if voice == "" {
		voice = s.store.State().CompanyInfo.TTSVoice
	}
	if voice == "" {
		voice = s.defaultVoice
	}

	audio, err := s.client.Synthesize(ctx, text, voice)
	if err != nil {
		s.logger.Warn("speech synthesis failed", zap.Error(err))
		return nil, fmt.Errorf("assistant tts: %w", err)
	}
	return audio, nil
}

// UserMessage maps an assistant error onto the message shown in the
// dashboard, with a dedicated case for rate-limit responses.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, genai.ErrRateLimited):
		return "The assistant is receiving too many requests right now. Please wait a moment and try again."
	case errors.Is(err, ErrDisabled):
		return "The AI assistant is not configured on this server."
	default:
		return "The assistant could not process the request. Please try again."
	}
}
