// Package producer invokes the generative producer that emits the test
// project files. The producer is a black box: one blocking request per
// generation job with a long bounded wait, no streaming and no mid-flight
// cancellation, returning a path→content mapping that must satisfy the
// producer contract.
package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/harrison/testforge/internal/models"
)

// DefaultSystemPrompt enforces JSON-only output. Without it the producer
// routinely wraps the file mapping in prose or code fences.
const DefaultSystemPrompt = "You are a test automation engineer. Your ONLY output must be valid JSON matching the provided schema. No markdown, no code fences, no prose, no explanations. Output raw JSON only."

// filesSchema is the JSON schema passed to the producer, requiring a single
// "files" object mapping relative paths to file contents.
const filesSchema = `{
  "type": "object",
  "properties": {
    "files": {
      "type": "object",
      "additionalProperties": {"type": "string"}
    }
  },
  "required": ["files"]
}`

// Invoker is a reusable client for the generative producer CLI.
// It follows the http.Client pattern: create once, use many times.
// Thread-safe for concurrent use.
type Invoker struct {
	// BinaryPath is the path to the producer CLI binary.
	// Defaults to "claude" (found in PATH).
	BinaryPath string

	// Timeout bounds a single generation request. The request is issued
	// once and runs to completion, success or timeout-as-failure.
	Timeout time.Duration

	// SystemPrompt is sent with every invocation.
	// Defaults to DefaultSystemPrompt if empty when using NewInvoker.
	SystemPrompt string
}

// NewInvoker creates a new Invoker with default settings.
func NewInvoker() *Invoker {
	return &Invoker{
		BinaryPath:   "claude",
		SystemPrompt: DefaultSystemPrompt,
		Timeout:      15 * time.Minute,
	}
}

// envelope is the outer JSON document the producer CLI prints with
// --output-format json; the generated payload is the string in Result.
type envelope struct {
	Result    string `json:"result"`
	SessionID string `json:"session_id"`
	IsError   bool   `json:"is_error"`
}

// payload is the schema-constrained document the producer is asked to emit.
// Files stays raw so the contract validator can distinguish a JSON array or
// null from a proper mapping.
type payload struct {
	Files json.RawMessage `json:"files"`
}

// Generate issues one blocking generation request for the given scenario
// groups and returns the validated file set. A malformed response is a
// fatal ContractError; the caller receives either a complete file set or a
// single error.
func (inv *Invoker) Generate(ctx context.Context, groups *models.GroupSet, pageObjects []string) (models.FileSet, error) {
	prompt := BuildPrompt(groups, pageObjects)

	raw, err := inv.invoke(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to parse producer output: %w", err)
	}
	if env.IsError {
		return nil, fmt.Errorf("producer reported an error: %s", truncate(env.Result, 200))
	}
	if env.Result == "" {
		return nil, &ContractError{Reason: "empty response from producer"}
	}

	return DecodePayload([]byte(env.Result))
}

// invoke performs the actual CLI call. The context bounds the wait; once
// issued the request is never cancelled mid-flight by this package.
func (inv *Invoker) invoke(ctx context.Context, prompt string) ([]byte, error) {
	if prompt == "" {
		return nil, fmt.Errorf("prompt is required")
	}

	ctxToUse := ctx
	var cancel context.CancelFunc
	if inv.Timeout > 0 {
		ctxToUse, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	systemPrompt := inv.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}

	args := []string{
		"--system-prompt", systemPrompt,
		"-p", prompt,
		"--json-schema", filesSchema,
		"--output-format", "json",
	}

	binary := inv.BinaryPath
	if binary == "" {
		binary = "claude"
	}

	cmd := exec.CommandContext(ctxToUse, binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("producer invocation failed: %w (output: %s)", err, truncate(string(output), 200))
	}
	return output, nil
}

// truncate returns s truncated to maxLen characters with "..." suffix if needed.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
