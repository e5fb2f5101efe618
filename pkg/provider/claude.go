package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"taskplanner/pkg/plan"
)

// ClaudeCLI generates plans by shelling out to a locally installed
// `claude` CLI instead of calling an API. Useful where the CLI holds the
// credentials and no key is configured for this process.
type ClaudeCLI struct {
	model string
}

// NewClaudeCLI creates a CLI-backed generator. An empty model uses the
// CLI's default.
func NewClaudeCLI(model string) *ClaudeCLI {
	return &ClaudeCLI{model: model}
}

// Generate runs the CLI in print mode and decodes the wrapped result.
func (c *ClaudeCLI) Generate(ctx context.Context, goal string) (plan.RawPlan, error) {
	args := []string{"-p", systemPrompt + "\n\n" + breakdownPrompt(goal), "--output-format", "json"}
	if c.model != "" {
		args = append(args, "--model", c.model)
	}

	cmd := exec.CommandContext(ctx, "claude", args...)
	// Remove CLAUDECODE so the CLI does not refuse to run as a nested session.
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, "CLAUDECODE=") {
			cmd.Env = append(cmd.Env, env)
		}
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("run claude: %w (stderr: %s)", err, truncate(stderr.String(), 300))
	}

	// --output-format json wraps the text in an object with a "result" field.
	var wrapped struct {
		Result string `json:"result"`
	}
	content := stdout.String()
	if err := json.Unmarshal(stdout.Bytes(), &wrapped); err == nil && wrapped.Result != "" {
		content = wrapped.Result
	}
	return parseRawPlan(content)
}
