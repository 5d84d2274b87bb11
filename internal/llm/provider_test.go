package llm

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"edu-quiz/internal/config"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"google.golang.org/genai"
)

func TestMockProvider_FIFOAndRecordsCalls(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: `{"a":1}`, Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
	)
	mock.AddResponse(MockResponse{Content: `{"b":2}`})

	req := UserPrompt("sys", "first")
	resp, err := mock.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, resp.Content)
	assert.Equal(t, 10, resp.Usage.InputTokens)
	assert.Equal(t, "end", resp.StopReason)

	resp, err = mock.Generate(context.Background(), UserPrompt("", "second"))
	require.NoError(t, err)
	assert.Equal(t, `{"b":2}`, resp.Content)

	_, err = mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)

	require.Equal(t, 3, mock.CallCount())
	assert.Equal(t, "sys", mock.Calls[0].System)
	assert.Equal(t, RoleUser, mock.Calls[0].Messages[0].Role)
	assert.Equal(t, "first", mock.Calls[0].Messages[0].Content)
}

func TestResolveModel(t *testing.T) {
	assert.Equal(t, "gemini-2.0-flash", resolveModel("gemini-flash", geminiModels))
	assert.Equal(t, "claude-haiku-4-5-20251001", resolveModel("claude-haiku", anthropicModels))
	assert.Equal(t, "custom-model", resolveModel("custom-model", geminiModels))
}

func TestPurposeFrom(t *testing.T) {
	assert.Equal(t, "unknown", PurposeFrom(context.Background()))
	assert.Equal(t, "quiz", PurposeFrom(WithPurpose(context.Background(), "quiz")))
}

func TestNewProvider(t *testing.T) {
	t.Run("mock", func(t *testing.T) {
		p, err := NewProvider(context.Background(), config.LLMConfig{Provider: "mock"})
		require.NoError(t, err)
		assert.Equal(t, "mock", p.ModelID())
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewProvider(context.Background(), config.LLMConfig{Provider: "carrier-pigeon"})
		assert.ErrorContains(t, err, "unknown LLM provider")
	})

	for _, name := range []string{"gemini", "openai", "anthropic", "openrouter"} {
		t.Run(name+" requires key", func(t *testing.T) {
			_, err := NewProvider(context.Background(), config.LLMConfig{Provider: name})
			assert.ErrorContains(t, err, "API key is required")
		})
	}

	t.Run("anthropic wrapped", func(t *testing.T) {
		p, err := NewProvider(context.Background(), config.LLMConfig{
			Provider:  "anthropic",
			Anthropic: config.ProviderConfig{APIKey: "k", Model: "claude-sonnet"},
			Retry:     retryConfig(),
		})
		require.NoError(t, err)
		retry, ok := p.(*RetryProvider)
		require.True(t, ok)
		_, ok = retry.inner.(*LoggingProvider)
		assert.True(t, ok)
		assert.Equal(t, "claude-sonnet-4-20250514", p.ModelID())
	})

	t.Run("openrouter needs model", func(t *testing.T) {
		_, err := NewProvider(context.Background(), config.LLMConfig{
			Provider:   "openrouter",
			OpenRouter: config.ProviderConfig{APIKey: "k"},
		})
		assert.ErrorContains(t, err, "model is required")
	})
}

func TestMapChatError(t *testing.T) {
	var rl *ErrRateLimit
	assert.ErrorAs(t, mapChatError(&openai.APIError{HTTPStatusCode: http.StatusTooManyRequests}), &rl)

	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, mapChatError(&openai.APIError{HTTPStatusCode: http.StatusBadGateway}), &unavail)

	assert.ErrorIs(t, mapChatError(context.Canceled), context.Canceled)
}

func TestMapGeminiError(t *testing.T) {
	var rl *ErrRateLimit
	assert.ErrorAs(t, mapGeminiError(&genai.APIError{Code: http.StatusTooManyRequests}), &rl)

	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, mapGeminiError(errors.New("dial tcp: refused")), &unavail)
}

func TestBuildChatMessages(t *testing.T) {
	msgs := buildChatMessages(Request{
		System:   "be brief",
		Messages: []Message{{Role: RoleUser, Content: "hi"}, {Role: RoleAssistant, Content: "hello"}},
	})
	require.Len(t, msgs, 3)
	assert.Equal(t, openai.ChatMessageRoleSystem, msgs[0].Role)
	assert.Equal(t, openai.ChatMessageRoleUser, msgs[1].Role)
	assert.Equal(t, openai.ChatMessageRoleAssistant, msgs[2].Role)
}

type fakeChatModel struct {
	resp     *llms.ContentResponse
	err      error
	messages []llms.MessageContent
	opts     llms.CallOptions
}

func (f *fakeChatModel) GenerateContent(_ context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.messages = messages
	for _, opt := range options {
		opt(&f.opts)
	}
	return f.resp, f.err
}

func (f *fakeChatModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func TestLangchainProvider_Generate(t *testing.T) {
	fake := &fakeChatModel{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{
		Content:        `{"questions":[]}`,
		StopReason:     "stop",
		GenerationInfo: map[string]any{"PromptTokens": 12, "CompletionTokens": 8},
	}}}}
	p := NewLangchainProvider(fake, "qwen3:0.6b")

	req := UserPrompt("system prompt", "make a quiz")
	req.JSON = true
	req.Temperature = 0.7
	req.MaxTokens = 512

	resp, err := p.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, `{"questions":[]}`, resp.Content)
	assert.Equal(t, "qwen3:0.6b", resp.Model)
	assert.Equal(t, Usage{InputTokens: 12, OutputTokens: 8, TotalTokens: 20}, resp.Usage)

	require.Len(t, fake.messages, 2)
	assert.Equal(t, llms.ChatMessageTypeSystem, fake.messages[0].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, fake.messages[1].Role)
	assert.True(t, fake.opts.JSONMode)
	assert.Equal(t, 512, fake.opts.MaxTokens)
	assert.InDelta(t, 0.7, fake.opts.Temperature, 1e-9)
}

func TestLangchainProvider_Errors(t *testing.T) {
	p := NewLangchainProvider(&fakeChatModel{err: errors.New("connection refused")}, "m")
	_, err := p.Generate(context.Background(), UserPrompt("", "x"))
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)

	p = NewLangchainProvider(&fakeChatModel{resp: &llms.ContentResponse{}}, "m")
	_, err = p.Generate(context.Background(), UserPrompt("", "x"))
	var invalid *ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)

	p = NewLangchainProvider(&fakeChatModel{err: context.DeadlineExceeded}, "m")
	_, err = p.Generate(context.Background(), UserPrompt("", "x"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
