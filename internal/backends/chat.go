package backends

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/smetj/clai/internal/llm"
	"github.com/smetj/clai/internal/prompts"
	"github.com/smetj/clai/internal/tokens"
)

// chatProvider talks to any endpoint speaking the OpenAI chat completions
// protocol. The openai, azure_openai and mistral backends differ only in how
// the client is built, which model counts tokens and which response format
// requests a boolean verdict.
type chatProvider struct {
	name           string
	client         openai.Client
	model          string
	tokenizerModel string
	maxTokens      int
	temperature    float64
	system         string
	boolFormat     func() openai.ChatCompletionNewParamsResponseFormatUnion
}

var _ llm.Provider = (*chatProvider)(nil)

func (p *chatProvider) Name() string { return p.name }

// Prompt sends a single chat completion and returns the first choice.
func (p *chatProvider) Prompt(ctx context.Context, req llm.Request) (string, error) {
	budget := tokens.NewBudget(tokens.ForModel(p.tokenizerModel), p.maxTokens)
	msgs, err := llm.Assemble(budget, prompts.System(req.Mode, p.system), req.Prompts, req.Stdin)
	if err != nil {
		return "", err
	}
	if req.Debug != nil {
		llm.WriteMessages(req.Debug, msgs)
	}

	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(p.model),
		Messages:    chatMessages(msgs),
		Temperature: openai.Float(p.temperature),
	}
	if req.Mode == prompts.ModeBool {
		params.ResponseFormat = p.boolFormat()
	}

	requestID := uuid.NewString()
	slog.Debug("sending chat completion",
		"backend", p.name,
		"model", p.model,
		"messages", len(msgs),
		"input_tokens", budget.Total(),
		"mode", req.Mode.String(),
		"request_id", requestID,
	)

	resp, err := p.client.Chat.Completions.New(ctx, params, option.WithHeader(requestIDHeader, requestID))
	if err != nil {
		return "", llm.NewError(p.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", &llm.Error{Backend: p.name, Message: "response contained no choices"}
	}

	slog.Debug("chat completion received",
		"backend", p.name,
		"request_id", requestID,
		"finish_reason", resp.Choices[0].FinishReason,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
	)
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func chatMessages(msgs []llm.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case llm.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

// jsonObjectFormat asks for any JSON object. The boolean instruction
// describes the expected fields.
func jsonObjectFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	obj := shared.NewResponseFormatJSONObjectParam()
	return openai.ChatCompletionNewParamsResponseFormatUnion{OfJSONObject: &obj}
}
