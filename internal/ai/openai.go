package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"

	"github.com/jcucci/weavr/internal/config"
	"github.com/jcucci/weavr/internal/logging"
)

const systemPrompt = `You are a merge conflict resolver. You receive one conflict from a version-controlled file: the left (ours) side, the right (theirs) side, optionally the common ancestor, and surrounding context. Produce the merged content that preserves the intent of both sides.

Respond with a single JSON object and nothing else:
{"content": "<merged text>", "confidence": <0-100>, "reasoning": "<one sentence>"}

The content must not contain conflict markers.`

const explainPrompt = `You are a merge conflict explainer. You receive one conflict from a version-controlled file. In two or three sentences, describe what each side changed and where they disagree. Do not propose a resolution.`

// OpenAIProvider suggests resolutions through the OpenAI chat API.
type OpenAIProvider struct {
	client    *openai.Client
	model     string
	timeout   time.Duration
	sessionID string
	logger    logging.Logger
}

// NewOpenAIProvider builds a provider from the AI config block.
func NewOpenAIProvider(opts config.AIOptions, logger logging.Logger) (*OpenAIProvider, error) {
	if opts.APIKey == "" {
		return nil, errors.New("OpenAI API key is required; set OPENAI_API_KEY or ai.api_key")
	}

	clientConfig := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		clientConfig.BaseURL = opts.BaseURL
	}

	if logger == nil {
		logger = logging.NewNil()
	}

	return &OpenAIProvider{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     opts.Model,
		timeout:   time.Duration(opts.Timeout) * time.Second,
		sessionID: uuid.New().String(),
		logger:    logger,
	}, nil
}

// Name returns "openai".
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Suggest sends one hunk to the model and parses the JSON reply.
func (p *OpenAIProvider) Suggest(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	p.logger.Log("ai: session %s requesting suggestion for %s (%s)", p.sessionID, req.Path, req.Language)

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: string(payload)},
		},
		Temperature: 0.1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("model returned no choices")
	}

	var suggestion Response
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &suggestion); err != nil {
		return nil, fmt.Errorf("model reply is not valid JSON: %w", err)
	}
	if suggestion.Confidence < 0 || suggestion.Confidence > 100 {
		return nil, fmt.Errorf("model confidence %d out of range", suggestion.Confidence)
	}

	p.logger.Log("ai: session %s got suggestion, confidence %d", p.sessionID, suggestion.Confidence)
	return &suggestion, nil
}

// Explain asks the model to describe the conflict in plain text.
func (p *OpenAIProvider) Explain(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: explainPrompt},
			{Role: openai.ChatMessageRoleUser, Content: string(payload)},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Close releases nothing; the OpenAI client holds no resources.
func (p *OpenAIProvider) Close() error {
	return nil
}

var _ Provider = (*OpenAIProvider)(nil)
