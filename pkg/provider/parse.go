package provider

import (
	"encoding/json"
	"fmt"
	"strings"

	"taskplanner/pkg/plan"
)

// parseRawPlan decodes a model response into a RawPlan. Models sometimes
// wrap the object in a markdown code fence despite being told not to, so
// fences are stripped before decoding. Field-level validity is the
// normalizer's job; only undecodable JSON fails here.
func parseRawPlan(content string) (plan.RawPlan, error) {
	content = stripFences(strings.TrimSpace(content))

	var raw plan.RawPlan
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("decode plan response: %w", err)
	}
	return raw, nil
}

// stripFences removes a surrounding ```json ... ``` or ``` ... ``` block.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
