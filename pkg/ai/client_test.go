package ai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewClient_NoKeyReturnsDisabledClient(t *testing.T) {
	for _, provider := range []string{"", ProviderGemini, ProviderOpenAI} {
		t.Run("provider="+provider, func(t *testing.T) {
			client, err := NewClient(context.Background(), Config{Provider: provider}, zap.NewNop())
			require.NoError(t, err)
			require.IsType(t, disabledClient{}, client)

			text, usage, err := client.GenerateText(context.Background(), GenerationRequest{Operation: "test"})
			assert.ErrorIs(t, err, ErrNoCredentials)
			assert.Empty(t, text)
			assert.Zero(t, usage.TotalTokens)
		})
	}
}

func TestNewClient_UnknownProvider(t *testing.T) {
	_, err := NewClient(context.Background(), Config{Provider: "carrier-pigeon", APIKey: "k"}, zap.NewNop())
	assert.Error(t, err)
}

func TestNewClient_OpenAIAndOllama(t *testing.T) {
	client, err := NewClient(context.Background(), Config{Provider: ProviderOpenAI, APIKey: "k", Timeout: time.Second}, zap.NewNop())
	require.NoError(t, err)
	oc, ok := client.(*openAIClient)
	require.True(t, ok)
	assert.NotEmpty(t, oc.model)

	// Ollama работает локально и не требует ключа.
	client, err = NewClient(context.Background(), Config{Provider: ProviderOllama}, zap.NewNop())
	require.NoError(t, err)
	ol, ok := client.(*ollamaClient)
	require.True(t, ok)
	assert.Equal(t, defaultOllamaModel, ol.model)
	assert.Equal(t, 60*time.Second, ol.timeout)
}

func TestApproximateTokens(t *testing.T) {
	assert.Equal(t, 0, approximateTokens(""))
	assert.Equal(t, 4, approximateTokens("one two three"))
}

func TestParamHelpers(t *testing.T) {
	temp := 0.7
	maxTokens := 800
	assert.Nil(t, float32Ptr(nil))
	assert.InDelta(t, 0.7, float64(*float32Ptr(&temp)), 1e-6)
	assert.Equal(t, float32(0), float32Val(nil))
	assert.Equal(t, 800, intVal(&maxTokens))
	assert.Equal(t, 0, intVal(nil))
	assert.Equal(t, "unknown", operationLabel(""))
}

func TestEstimateTokens_DoesNotLoadTokenizerOnRequestPath(t *testing.T) {
	// Без WarmUpTokenizer словарь не загружается: оценка идет по словам и не ходит в сеть.
	require.Nil(t, encoding.Load())
	assert.Equal(t, approximateTokens("the quick brown fox"), EstimateTokens("the quick brown fox"))
	assert.Zero(t, EstimateTokens(""))

	usage := estimateUsage(GenerationRequest{
		SystemPrompt: "one two three",
		Messages:     []Message{{Role: RoleUser, Content: "four five six"}},
	}, "seven eight nine")
	assert.Equal(t, 8, usage.PromptTokens)
	assert.Equal(t, 4, usage.CompletionTokens)
	assert.Equal(t, 12, usage.TotalTokens)
	require.Nil(t, encoding.Load())
}
