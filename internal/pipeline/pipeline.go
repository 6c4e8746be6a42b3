// Package pipeline runs one clai request from configuration to exit code.
package pipeline

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/smetj/clai/internal/config"
	"github.com/smetj/clai/internal/llm"
	"github.com/smetj/clai/internal/prompts"
	"github.com/smetj/clai/internal/redact"
	"github.com/smetj/clai/internal/verdict"
)

// Options describe a single invocation.
type Options struct {
	ConfigPath string
	Backend    string
	Instance   string
	Prompt     string
	Mode       prompts.Mode

	// Stdin is nil when nothing was piped.
	Stdin llm.LineSeq

	// Debug receives the assembled messages when non-nil.
	Debug io.Writer
}

// Result is the outcome of a successful request.
type Result struct {
	// Text is the backend's response, printed verbatim to stdout.
	Text string

	// Verdict is set in boolean mode.
	Verdict *verdict.Verdict

	// ExitCode is 0 in plain mode and the verdict's code in boolean mode.
	ExitCode int
}

// Run resolves the backend instance, sends the request and, in boolean mode,
// validates the answer. Errors are one of *config.Error, *tokens.BudgetError,
// *llm.Error or *verdict.SchemaError. No request is sent unless configuration
// resolved and the messages fit the token budget.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Backend == "" {
		return nil, config.Errorf("no backend given (use --backend or set CLAI_BACKEND)")
	}
	if opts.Instance == "" {
		return nil, config.Errorf("no instance given (use --instance or set CLAI_INSTANCE)")
	}
	if strings.TrimSpace(opts.Prompt) == "" && opts.Stdin == nil {
		return nil, config.Errorf("no prompt given and nothing piped on stdin")
	}

	factory, err := llm.Lookup(opts.Backend)
	if err != nil {
		return nil, err
	}

	file, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	inst, err := file.Instance(opts.Backend, opts.Instance)
	if err != nil {
		return nil, err
	}
	redact.Add(inst.Secrets()...)

	provider, err := factory(inst)
	if err != nil {
		return nil, err
	}

	var promptList []string
	if strings.TrimSpace(opts.Prompt) != "" {
		promptList = []string{opts.Prompt}
	}

	slog.Debug("running request", "instance", inst.String(), "mode", opts.Mode.String(), "stdin", opts.Stdin != nil)

	text, err := provider.Prompt(ctx, llm.Request{
		Mode:    opts.Mode,
		Prompts: promptList,
		Stdin:   opts.Stdin,
		Debug:   opts.Debug,
	})
	if err != nil {
		return nil, err
	}

	res := &Result{Text: text}
	if opts.Mode != prompts.ModeBool {
		return res, nil
	}

	v, err := verdict.Validate(text)
	if err != nil {
		res.ExitCode = verdict.ExitMalformed
		return res, err
	}
	res.Verdict = &v
	res.ExitCode = verdict.ExitCode(v)
	return res, nil
}
