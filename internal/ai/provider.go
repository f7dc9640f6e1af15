// Package ai suggests conflict resolutions by sending a hunk to a model
// provider. Suggestions flow back into the session as opaque resolutions;
// nothing here touches merge state directly.
package ai

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jcucci/weavr/internal/config"
	"github.com/jcucci/weavr/internal/logging"
	"github.com/jcucci/weavr/internal/merge"
)

// Request carries one conflict hunk to a provider.
type Request struct {
	Path     string `json:"path"`
	Language string `json:"language"`
	Left     string `json:"left"`
	Right    string `json:"right"`
	// Base is the common-ancestor content for diff3 conflicts, empty
	// otherwise.
	Base    string `json:"base,omitempty"`
	Context string `json:"context,omitempty"`
}

// Response is a provider's suggested resolution.
type Response struct {
	Content string `json:"content"`
	// Confidence is the provider's self-assessment, 0-100.
	Confidence int    `json:"confidence"`
	Reasoning  string `json:"reasoning,omitempty"`
}

// Provider produces merge suggestions.
type Provider interface {
	// Suggest returns a proposed resolution for one hunk.
	Suggest(ctx context.Context, req Request) (*Response, error)
	// Explain describes what the two sides of a hunk are doing, without
	// proposing a resolution.
	Explain(ctx context.Context, req Request) (string, error)
	// Name identifies the provider in resolution metadata.
	Name() string
	// Close releases provider resources.
	Close() error
}

// NewProvider builds the provider selected by ai.provider.
func NewProvider(opts config.AIOptions, logger logging.Logger) (Provider, error) {
	switch opts.Provider {
	case "openai":
		return NewOpenAIProvider(opts, logger)
	case "local":
		return NewLocalProvider(opts, logger)
	default:
		return nil, fmt.Errorf("unsupported AI provider %q", opts.Provider)
	}
}

// NewRequest builds a provider request from a hunk.
func NewRequest(path string, hunk *merge.ConflictHunk) Request {
	req := Request{
		Path:     path,
		Language: DetectLanguage(path),
		Left:     hunk.Left,
		Right:    hunk.Right,
	}
	if hunk.HasBase() {
		req.Base = *hunk.Base
	}
	if len(hunk.Context.Before) > 0 || len(hunk.Context.After) > 0 {
		before := strings.Join(hunk.Context.Before, "\n")
		after := strings.Join(hunk.Context.After, "\n")
		req.Context = strings.TrimSpace(before + "\n...\n" + after)
	}
	return req
}

// DetectLanguage maps a file extension to a language name for the
// prompt. Unknown extensions yield "text".
func DetectLanguage(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return "go"
	case ".rs":
		return "rust"
	case ".py":
		return "python"
	case ".js", ".mjs", ".cjs":
		return "javascript"
	case ".ts", ".tsx":
		return "typescript"
	case ".java":
		return "java"
	case ".c", ".h":
		return "c"
	case ".cpp", ".cc", ".hpp":
		return "cpp"
	case ".rb":
		return "ruby"
	case ".sh", ".bash":
		return "shell"
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	case ".md":
		return "markdown"
	default:
		return "text"
	}
}
