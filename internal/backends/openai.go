package backends

import (
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/smetj/clai/internal/config"
	"github.com/smetj/clai/internal/llm"
	"github.com/smetj/clai/internal/verdict"
)

// OpenAIConfig are the settings of an openai instance.
type OpenAIConfig struct {
	Common  `yaml:",inline"`
	BaseURL string `yaml:"base_url"`
}

func init() {
	llm.Register("openai", NewOpenAI)
}

// NewOpenAI builds the openai backend. Boolean mode uses a strict json_schema
// response format carrying the verdict schema.
func NewOpenAI(inst config.Instance) (llm.Provider, error) {
	cfg := OpenAIConfig{Common: defaultCommon()}
	if err := inst.Decode(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.check(inst, nil); err != nil {
		return nil, err
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.Token),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &chatProvider{
		name:           inst.Backend,
		client:         openai.NewClient(opts...),
		model:          cfg.Model,
		tokenizerModel: cfg.Model,
		maxTokens:      cfg.MaxTokens,
		temperature:    cfg.Temperature,
		system:         cfg.System,
		boolFormat:     jsonSchemaFormat,
	}, nil
}

func jsonSchemaFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	return openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
			JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
				Name:   verdict.SchemaName,
				Schema: verdict.Schema(),
				Strict: openai.Bool(true),
			},
		},
	}
}
