// Package provider implements text-generation backends that turn a
// free-text goal into a raw task breakdown. Each backend satisfies
// Generator; the rest of the system never branches on which one is active.
package provider

import (
	"context"
	"fmt"
	"strings"

	"taskplanner/pkg/plan"
)

// Generator produces a raw, untrusted plan for a goal. Implementations do
// not retry: on failure the caller substitutes the fixed fallback plan.
type Generator interface {
	Generate(ctx context.Context, goal string) (plan.RawPlan, error)
}

// Options selects and configures a backend at process startup.
type Options struct {
	Kind    string // openai, anthropic, claude-cli, mock
	Model   string
	APIKey  string
	BaseURL string // override for tests; empty means the real endpoint
}

// New builds the configured Generator. An unknown kind is an error; the
// mock backend needs no credentials and always succeeds.
func New(opts Options) (Generator, error) {
	switch opts.Kind {
	case "openai":
		if !validAPIKey(opts.APIKey, "sk-") {
			return nil, fmt.Errorf("openai: missing or malformed API key")
		}
		return NewOpenAI(opts.APIKey, opts.Model, opts.BaseURL), nil
	case "anthropic":
		if !validAPIKey(opts.APIKey, "sk-ant-") {
			return nil, fmt.Errorf("anthropic: missing or malformed API key")
		}
		return NewAnthropic(opts.APIKey, opts.Model, opts.BaseURL), nil
	case "claude-cli":
		return NewClaudeCLI(opts.Model), nil
	case "mock", "":
		return Static{}, nil
	default:
		return nil, fmt.Errorf("unknown provider kind %q", opts.Kind)
	}
}

// validAPIKey rejects empty keys, unreplaced template placeholders, and
// keys without the provider's prefix. Shape checking only; the key is not
// verified against the API.
func validAPIKey(key, prefix string) bool {
	if key == "" || strings.HasPrefix(key, "your_") {
		return false
	}
	return strings.HasPrefix(key, prefix) && len(key) > 20
}
