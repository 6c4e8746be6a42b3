package backends

import (
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/smetj/clai/internal/config"
	"github.com/smetj/clai/internal/llm"
)

// DefaultMistralURL is Mistral's OpenAI-compatible API root.
const DefaultMistralURL = "https://api.mistral.ai/v1/"

// MistralConfig are the settings of a mistral instance.
type MistralConfig struct {
	Common  `yaml:",inline"`
	BaseURL string `yaml:"base_url"`
}

func init() {
	llm.Register("mistral", NewMistral)
}

// NewMistral builds the mistral backend. Boolean mode uses the json_object
// response format.
func NewMistral(inst config.Instance) (llm.Provider, error) {
	cfg := MistralConfig{Common: defaultCommon(), BaseURL: DefaultMistralURL}
	if err := inst.Decode(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.check(inst, map[string]string{"base_url": cfg.BaseURL}); err != nil {
		return nil, err
	}

	return &chatProvider{
		name: inst.Backend,
		client: openai.NewClient(
			option.WithAPIKey(cfg.Token),
			option.WithBaseURL(cfg.BaseURL),
			option.WithMaxRetries(0),
		),
		model:          cfg.Model,
		tokenizerModel: cfg.Model,
		maxTokens:      cfg.MaxTokens,
		temperature:    cfg.Temperature,
		system:         cfg.System,
		boolFormat:     jsonObjectFormat,
	}, nil
}
