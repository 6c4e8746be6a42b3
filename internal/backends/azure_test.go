package backends_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/smetj/clai/internal/config"
	"github.com/smetj/clai/internal/llm"
	"github.com/smetj/clai/internal/prompts"
	"github.com/smetj/clai/internal/tokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func azureValues(endpoint string) map[string]any {
	return map[string]any{
		"endpoint":    endpoint,
		"api_version": "2024-06-01",
		"token":       "azure-key",
		"model":       "my-gpt4o-deployment",
		"base_model":  "gpt-4o",
		"max_tokens":  100,
	}
}

func TestAzure_RoutesToDeployment(t *testing.T) {
	srv, rec := newVendorServer(t, http.StatusOK, chatCompletion("hello"))
	p := newProvider(t, "azure_openai", azureValues(srv.URL))

	text, err := p.Prompt(context.Background(), llm.Request{Prompts: []string{"say hello"}})
	require.NoError(t, err)
	assert.Equal(t, "hello", text)

	require.Equal(t, 1, rec.Hits())
	assert.Equal(t, "/openai/deployments/my-gpt4o-deployment/chat/completions", rec.path)
	assert.Contains(t, rec.query, "api-version=2024-06-01")
	assert.Equal(t, "azure-key", rec.header.Get("Api-Key"))
}

func TestAzure_BoolUsesJSONObject(t *testing.T) {
	srv, rec := newVendorServer(t, http.StatusOK, chatCompletion(`{"answer": false, "reason": "no"}`))
	p := newProvider(t, "azure_openai", azureValues(srv.URL))

	_, err := p.Prompt(context.Background(), llm.Request{
		Mode:    prompts.ModeBool,
		Prompts: []string{"is the sky green?"},
	})
	require.NoError(t, err)

	format, ok := rec.Body()["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"type": "json_object"}, format)
	assert.Contains(t, messagesOf(t, rec.Body())[0][1], "JSON")
}

func TestAzure_BudgetExceededMakesNoCall(t *testing.T) {
	srv, rec := newVendorServer(t, http.StatusOK, chatCompletion("unused"))
	values := azureValues(srv.URL)
	values["max_tokens"] = 3
	p := newProvider(t, "azure_openai", values)

	_, err := p.Prompt(context.Background(), llm.Request{Prompts: []string{"hi"}})
	assert.ErrorIs(t, err, tokens.ErrBudgetExceeded)
	assert.Equal(t, 0, rec.Hits())
}

func TestAzure_MissingEndpoint(t *testing.T) {
	values := azureValues("")
	delete(values, "api_version")

	factory, err := llm.Lookup("azure_openai")
	require.NoError(t, err)
	_, err = factory(config.NewInstance("azure_openai", "default", values))
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrConfig)
	assert.Contains(t, err.Error(), "api_version is required; endpoint is required")
}
