package provider

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"
)

// TestNewSelectsBackend verifies the startup selection: each kind maps to
// its backend, credentials are shape-checked, and unknown kinds fail.
func TestNewSelectsBackend(t *testing.T) {
	cases := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"mock", Options{Kind: "mock"}, false},
		{"empty kind is mock", Options{}, false},
		{"claude-cli", Options{Kind: "claude-cli"}, false},
		{"openai valid key", Options{Kind: "openai", APIKey: "sk-0123456789abcdef0123456789"}, false},
		{"openai missing key", Options{Kind: "openai"}, true},
		{"openai wrong prefix", Options{Kind: "openai", APIKey: "ak-0123456789abcdef0123456789"}, true},
		{"openai placeholder key", Options{Kind: "openai", APIKey: "your_openai_key_here_1234567"}, true},
		{"anthropic valid key", Options{Kind: "anthropic", APIKey: "sk-ant-REDACTED"}, false},
		{"anthropic plain sk key", Options{Kind: "anthropic", APIKey: "sk-0123456789abcdef0123456789"}, true},
		{"unknown", Options{Kind: "bard"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen, err := New(tc.opts)
			if tc.wantErr {
				if err == nil {
					t.Errorf("New(%+v) succeeded, want error", tc.opts)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%+v): %v", tc.opts, err)
			}
			if gen == nil {
				t.Error("New returned nil Generator")
			}
		})
	}
}

// TestStaticGenerateIsWellFormed verifies the fallback plan survives the
// whole pipeline: it always parses, and its dependencies are already valid.
func TestStaticGenerateIsWellFormed(t *testing.T) {
	raw, err := Static{}.Generate(context.Background(), "Create a simple website")
	if err != nil {
		t.Fatalf("Static.Generate: %v", err)
	}

	tasks, ok := raw["tasks"].([]any)
	if !ok || len(tasks) == 0 {
		t.Fatalf("fallback has no tasks: %v", raw["tasks"])
	}
	if raw["estimated_duration_days"] != 14 {
		t.Errorf("estimated_duration_days = %v, want 14", raw["estimated_duration_days"])
	}
}

// TestFallbackTruncatesLongGoal verifies the title shortens very long goals.
func TestFallbackTruncatesLongGoal(t *testing.T) {
	long := make([]byte, 120)
	for i := range long {
		long[i] = 'g'
	}
	raw := Fallback(string(long))
	title, _ := raw["title"].(string)
	if len(title) > 70 {
		t.Errorf("title too long (%d): %q", len(title), title)
	}
}

// TestFallbackTruncatesOnRuneBoundary verifies that shortening a goal of
// multi-byte runes never splits one, which would leave invalid UTF-8 in
// the plan title.
func TestFallbackTruncatesOnRuneBoundary(t *testing.T) {
	goal := strings.Repeat("日本語のプロジェクト計画", 10)
	raw := Fallback(goal)
	title, _ := raw["title"].(string)
	if !utf8.ValidString(title) {
		t.Errorf("title is not valid UTF-8: %q", title)
	}
	if got := utf8.RuneCountInString(title); got > 70 {
		t.Errorf("title too long (%d runes): %q", got, title)
	}
}
