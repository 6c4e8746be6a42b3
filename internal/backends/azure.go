package backends

import (
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"

	"github.com/smetj/clai/internal/config"
	"github.com/smetj/clai/internal/llm"
)

// AzureConfig are the settings of an azure_openai instance. Model is the
// deployment name; BaseModel, when set, names the model whose tokenizer
// counts the budget.
type AzureConfig struct {
	Common     `yaml:",inline"`
	Endpoint   string `yaml:"endpoint"`
	APIVersion string `yaml:"api_version"`
	BaseModel  string `yaml:"base_model"`
}

func init() {
	llm.Register("azure_openai", NewAzureOpenAI)
}

// NewAzureOpenAI builds the azure_openai backend. Boolean mode uses the
// json_object response format.
func NewAzureOpenAI(inst config.Instance) (llm.Provider, error) {
	cfg := AzureConfig{Common: defaultCommon()}
	if err := inst.Decode(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.check(inst, map[string]string{
		"endpoint":    cfg.Endpoint,
		"api_version": cfg.APIVersion,
	}); err != nil {
		return nil, err
	}

	tokenizerModel := cfg.Model
	if cfg.BaseModel != "" {
		tokenizerModel = cfg.BaseModel
	}

	return &chatProvider{
		name: inst.Backend,
		client: openai.NewClient(
			azure.WithEndpoint(cfg.Endpoint, cfg.APIVersion),
			azure.WithAPIKey(cfg.Token),
			option.WithMaxRetries(0),
		),
		model:          cfg.Model,
		tokenizerModel: tokenizerModel,
		maxTokens:      cfg.MaxTokens,
		temperature:    cfg.Temperature,
		system:         cfg.System,
		boolFormat:     jsonObjectFormat,
	}, nil
}
