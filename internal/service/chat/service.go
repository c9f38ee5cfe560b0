// Package chat proxies farming questions to the conversational advisor.
package chat

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Josh-codes/AgriDroneX/pkg/clients/gemini"
)

// ErrDisabled indicates no advisor backend is configured.
var ErrDisabled = errors.New("chat advisor is not configured")

const systemPrompt = `You are an expert agricultural advisor for AgriDroneX, a precision agriculture platform.
Your role is to provide helpful, accurate, and practical advice about:
- Crop selection and recommendations based on location, climate, and soil conditions
- Best practices for farming and agriculture
- Crop diseases, pests, and their prevention
- Seasonal planting recommendations
- Soil management and fertilization
- Irrigation and water management
- Modern farming techniques and precision agriculture

Always provide clear, concise, and actionable advice with safety considerations
when recommending pesticides or chemicals. Be friendly, professional, and
helpful. If you don't know something, admit it rather than guessing.`

// Service describes the operations the HTTP layer can perform.
type Service interface {
	Ask(ctx context.Context, message, location string) (string, error)
}

// AdvisorService is the Gemini-backed implementation of Service. A nil client
// disables the advisor.
type AdvisorService struct {
	client gemini.Client
	logger *zap.Logger
}

// NewService wires a new advisor service instance.
func NewService(client gemini.Client, logger *zap.Logger) *AdvisorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdvisorService{client: client, logger: logger}
}

// Ask forwards a farming question to the advisor backend. The service is
// stateless: no conversation history is kept between calls.
func (s *AdvisorService) Ask(ctx context.Context, message, location string) (string, error) {
	if s.client == nil {
		return "", ErrDisabled
	}

	prompt := systemPrompt
	if location != "" {
		prompt = fmt.Sprintf("%s\n\nUser's location context: %s\nProvide location-specific recommendations when relevant.", prompt, location)
	}

	reply, err := s.client.GenerateAdvice(ctx, prompt, message)
	if err != nil {
		return "", fmt.Errorf("advisor request: %w", err)
	}

	s.logger.Debug("advisor reply generated", zap.Int("reply_len", len(reply)))
	return reply, nil
}
