package generator

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// cliTimeout bounds one CLI invocation when the caller's context has no
// deadline of its own.
const cliTimeout = 90 * time.Second

// CLIClient runs the claude CLI as a local generation backend, billed
// against the developer's own plan rather than an API key.
type CLIClient struct {
	path string
}

func NewCLIClient(path string) *CLIClient {
	return &CLIClient{path: path}
}

func (c *CLIClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cliTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.path,
		"--print",
		"--output-format", "text",
		"--system-prompt", systemPrompt,
		"--max-turns", "1",
	)
	cmd.Stdin = strings.NewReader(userPrompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("claude CLI: %w", ctx.Err())
		}
		return nil, fmt.Errorf("claude CLI: %w (stderr: %s)", err, strings.TrimSpace(stderr.String()))
	}

	content := strings.TrimSpace(stdout.String())
	if content == "" {
		return nil, fmt.Errorf("claude CLI produced no output")
	}

	// The CLI reports no token usage in text mode.
	return &LLMResponse{Content: content}, nil
}
