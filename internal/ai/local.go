package ai

import (
	"errors"

	"github.com/jcucci/weavr/internal/config"
	"github.com/jcucci/weavr/internal/logging"
)

// LocalProvider talks to an OpenAI-compatible local inference server
// such as Ollama or llama.cpp. Only the endpoint and the metadata name
// differ from the hosted provider; the chat transport is shared.
type LocalProvider struct {
	*OpenAIProvider
}

// NewLocalProvider builds a provider for a local inference server. The
// endpoint must be set explicitly through ai.base_url; the hosted API
// URL is never a sensible local endpoint.
func NewLocalProvider(opts config.AIOptions, logger logging.Logger) (*LocalProvider, error) {
	if opts.BaseURL == "" || opts.BaseURL == config.DefaultBaseURL {
		return nil, errors.New("local provider endpoint not configured; set ai.base_url")
	}
	if opts.APIKey == "" {
		opts.APIKey = "local" // local servers ignore the key
	}

	inner, err := NewOpenAIProvider(opts, logger)
	if err != nil {
		return nil, err
	}
	return &LocalProvider{OpenAIProvider: inner}, nil
}

// Name returns "local".
func (p *LocalProvider) Name() string {
	return "local"
}

var _ Provider = (*LocalProvider)(nil)
