package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/semaphore"

	"github.com/smetj/clai/internal/config"
	"github.com/smetj/clai/internal/input"
	"github.com/smetj/clai/internal/llm"
	"github.com/smetj/clai/internal/pipeline"
	"github.com/smetj/clai/internal/prompts"
	"github.com/smetj/clai/internal/redact"
	"github.com/smetj/clai/internal/verdict"
)

// PromptInput is the input schema for the clai prompt MCP tool.
type PromptInput struct {
	Prompt   string `json:"prompt" jsonschema:"The prompt to send to the backend"`
	Bool     bool   `json:"bool,omitempty" jsonschema:"Constrain the answer to a JSON true/false verdict with a reason"`
	Backend  string `json:"backend" jsonschema:"Backend name, e.g. openai, azure_openai, mistral, anthropic"`
	Instance string `json:"instance" jsonschema:"Instance name configured under the backend"`
	Stdin    string `json:"stdin,omitempty" jsonschema:"Additional input, sent as it would be when piped on standard input"`
}

// BackendsInput is the input schema for the clai backends MCP tool.
type BackendsInput struct {
	Backend string `json:"backend,omitempty" jsonschema:"Only list this backend"`
}

// boolPtr returns a pointer to a bool.
func boolPtr(b bool) *bool { return &b }

// maxConcurrentPrompts bounds the backend requests one server has in flight.
const maxConcurrentPrompts = 4

type handlers struct {
	configPath string
	inflight   *semaphore.Weighted
}

func newHandlers(configPath string) *handlers {
	return &handlers{
		configPath: configPath,
		inflight:   semaphore.NewWeighted(maxConcurrentPrompts),
	}
}

// registerTools adds all clai tools to the MCP server.
func registerTools(server *mcp.Server, h *handlers) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "prompt",
		Description: "Send a prompt to a configured LLM backend instance and return its answer. With bool set, the answer is a JSON object {answer, reason}.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(true),
		},
	}, h.handlePrompt)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "backends",
		Description: "List the supported backends and the instances configured for each.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, h.handleBackends)
}

func (h *handlers) handlePrompt(ctx context.Context, _ *mcp.CallToolRequest, in PromptInput) (*mcp.CallToolResult, any, error) {
	mode := prompts.ModePlain
	if in.Bool {
		mode = prompts.ModeBool
	}

	opts := pipeline.Options{
		ConfigPath: h.configPath,
		Backend:    in.Backend,
		Instance:   in.Instance,
		Prompt:     in.Prompt,
		Mode:       mode,
	}
	if in.Stdin != "" {
		opts.Stdin = input.Lines(strings.NewReader(in.Stdin))
	}

	if err := h.inflight.Acquire(ctx, 1); err != nil {
		return nil, nil, err
	}
	defer h.inflight.Release(1)

	res, err := pipeline.Run(ctx, opts)
	if err != nil {
		slog.Debug("prompt tool failed", "backend", in.Backend, "instance", in.Instance, "error", err)
		return nil, nil, errors.New(redact.String(describe(err)))
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: res.Text},
		},
	}, nil, nil
}

func (h *handlers) handleBackends(_ context.Context, _ *mcp.CallToolRequest, in BackendsInput) (*mcp.CallToolResult, any, error) {
	names := llm.Names()
	if in.Backend != "" {
		if _, err := llm.Lookup(in.Backend); err != nil {
			return nil, nil, err
		}
		names = []string{in.Backend}
	}

	file, err := config.Load(h.configPath)
	if err != nil {
		return nil, nil, err
	}

	var b strings.Builder
	for _, name := range names {
		instances := file.Instances(name)
		if len(instances) == 0 {
			fmt.Fprintf(&b, "%s: (no instances configured)\n", name)
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", name, strings.Join(instances, ", "))
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: b.String()},
		},
	}, nil, nil
}

// describe prefixes schema failures so a client can tell a malformed verdict
// from a failed request.
func describe(err error) string {
	if errors.Is(err, verdict.ErrSchema) {
		return "malformed structured response: " + err.Error()
	}
	return err.Error()
}
