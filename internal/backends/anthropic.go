// Copyright 2026 The Clai Authors
// SPDX-License-Identifier: MIT

package backends

import (
	"context"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"

	"github.com/smetj/clai/internal/config"
	"github.com/smetj/clai/internal/llm"
	"github.com/smetj/clai/internal/prompts"
	"github.com/smetj/clai/internal/tokens"
	"github.com/smetj/clai/internal/verdict"
)

// defaultMaxOutputTokens bounds the length of the answer. The Messages API
// requires it on every request.
const defaultMaxOutputTokens = 1024

// AnthropicConfig are the settings of an anthropic instance.
type AnthropicConfig struct {
	Common          `yaml:",inline"`
	MaxOutputTokens int    `yaml:"max_output_tokens"`
	BaseURL         string `yaml:"base_url"`
}

// AnthropicProvider implements llm.Provider using the official Anthropic SDK.
type AnthropicProvider struct {
	name   string
	client anthropic.Client
	cfg    AnthropicConfig
}

// Compile-time check that AnthropicProvider satisfies the Provider interface.
var _ llm.Provider = (*AnthropicProvider)(nil)

func init() {
	llm.Register("anthropic", NewAnthropic)
}

// NewAnthropic builds the anthropic backend. Boolean mode forces a single tool
// call whose input schema is the verdict schema.
func NewAnthropic(inst config.Instance) (llm.Provider, error) {
	cfg := AnthropicConfig{Common: defaultCommon(), MaxOutputTokens: defaultMaxOutputTokens}
	if err := inst.Decode(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.check(inst, nil); err != nil {
		return nil, err
	}
	if cfg.MaxOutputTokens <= 0 {
		return nil, config.Errorf("backend %q instance %q: max_output_tokens must be greater than 0", inst.Backend, inst.Name)
	}

	clientOpts := []option.RequestOption{
		option.WithAPIKey(cfg.Token),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(cfg.BaseURL))
	}

	return &AnthropicProvider{
		name:   inst.Backend,
		client: anthropic.NewClient(clientOpts...),
		cfg:    cfg,
	}, nil
}

// Name implements llm.Provider.
func (p *AnthropicProvider) Name() string { return p.name }

// Prompt sends the assembled messages to the Messages API. In boolean mode the
// forced tool input is parsed into a verdict and returned as its JSON form.
func (p *AnthropicProvider) Prompt(ctx context.Context, req llm.Request) (string, error) {
	budget := tokens.NewBudget(tokens.ForModel(p.cfg.Model), p.cfg.MaxTokens)
	msgs, err := llm.Assemble(budget, prompts.System(req.Mode, p.cfg.System), req.Prompts, req.Stdin)
	if err != nil {
		return "", err
	}
	if req.Debug != nil {
		llm.WriteMessages(req.Debug, msgs)
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(p.cfg.Model),
		MaxTokens:   int64(p.cfg.MaxOutputTokens),
		Temperature: anthropic.Float(p.cfg.Temperature),
	}

	var blocks []anthropic.ContentBlockParamUnion
	for _, m := range msgs {
		if m.Role == llm.RoleSystem {
			params.System = []anthropic.TextBlockParam{{Text: m.Content}}
			continue
		}
		// The Messages API rejects empty text blocks.
		if m.Content == "" {
			continue
		}
		blocks = append(blocks, anthropic.NewTextBlock(m.Content))
	}
	if len(blocks) == 0 {
		return "", config.Errorf("backend %q: nothing to send, the prompt and piped input are empty", p.name)
	}
	params.Messages = []anthropic.MessageParam{anthropic.NewUserMessage(blocks...)}

	if req.Mode == prompts.ModeBool {
		params.Tools = []anthropic.ToolUnionParam{verdictTool()}
		params.ToolChoice = anthropic.ToolChoiceUnionParam{
			OfTool: &anthropic.ToolChoiceToolParam{Name: verdict.SchemaName},
		}
	}

	requestID := uuid.NewString()
	slog.Debug("sending message",
		"backend", p.name,
		"model", p.cfg.Model,
		"messages", len(msgs),
		"input_tokens", budget.Total(),
		"mode", req.Mode.String(),
		"request_id", requestID,
	)

	msg, err := p.client.Messages.New(ctx, params, option.WithHeader(requestIDHeader, requestID))
	if err != nil {
		return "", llm.NewError(p.name, err)
	}

	slog.Debug("message received",
		"backend", p.name,
		"request_id", requestID,
		"stop_reason", msg.StopReason,
		"input_tokens", msg.Usage.InputTokens,
		"output_tokens", msg.Usage.OutputTokens,
	)

	var content strings.Builder
	for _, block := range msg.Content {
		switch variant := block.AsAny().(type) {
		case anthropic.ToolUseBlock:
			if req.Mode != prompts.ModeBool || variant.Name != verdict.SchemaName {
				continue
			}
			v, err := verdict.Validate(string(variant.Input))
			if err != nil {
				return "", err
			}
			return v.JSON(), nil
		case anthropic.TextBlock:
			content.WriteString(variant.Text)
		}
	}
	return strings.TrimSpace(content.String()), nil
}

func verdictTool() anthropic.ToolUnionParam {
	schema := verdict.Schema()
	return anthropic.ToolUnionParam{
		OfTool: &anthropic.ToolParam{
			Name:        verdict.SchemaName,
			Description: anthropic.String("Record the true or false verdict and the reason for it."),
			InputSchema: anthropic.ToolInputSchemaParam{
				Type:       "object",
				Properties: schema["properties"],
				Required:   []string{"answer", "reason"},
				ExtraFields: map[string]any{
					"additionalProperties": schema["additionalProperties"],
				},
			},
		},
	}
}
