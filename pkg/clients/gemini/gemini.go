package gemini

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	apiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	model      = "gemini-2.5-flash"
)

// Client defines the interface for the conversational advisor backend.
type Client interface {
	GenerateAdvice(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

type geminiClient struct {
	httpClient *resty.Client
}

// NewClient creates a configured Gemini client.
func NewClient(apiKey string) Client {
	client := resty.New().
		SetBaseURL(apiBaseURL).
		SetHeader("content-type", "application/json").
		SetQueryParam("key", apiKey).
		SetTimeout(30 * time.Second)

	return &geminiClient{httpClient: client}
}

type generateRequest struct {
	SystemInstruction *content  `json:"system_instruction,omitempty"`
	Contents          []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateAdvice sends a single-turn prompt and returns the model's reply.
func (c *geminiClient) GenerateAdvice(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	reqBody := generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: systemPrompt}}},
		Contents: []content{
			{Role: "user", Parts: []part{{Text: userMessage}}},
		},
	}

	var respBody generateResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(fmt.Sprintf("/models/%s:generateContent", model))
	if err != nil {
		return "", fmt.Errorf("gemini api call: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("gemini api error: %s", resp.String())
	}
	if len(respBody.Candidates) == 0 || len(respBody.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from ai")
	}

	return respBody.Candidates[0].Content.Parts[0].Text, nil
}
