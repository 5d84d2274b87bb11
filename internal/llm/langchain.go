package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"edu-quiz/internal/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	lcopenai "github.com/tmc/langchaingo/llms/openai"
)

// LangchainProvider adapts any langchaingo chat model to Provider.
type LangchainProvider struct {
	model   llms.Model
	modelID string
}

// NewLangchainProvider wraps an already constructed langchaingo model.
func NewLangchainProvider(model llms.Model, modelID string) *LangchainProvider {
	return &LangchainProvider{model: model, modelID: modelID}
}

// NewOllamaProvider connects to a local Ollama server.
func NewOllamaProvider(cfg config.ProviderConfig, timeout time.Duration) (*LangchainProvider, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("ollama server URL is required")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	model, err := ollama.New(
		ollama.WithServerURL(cfg.BaseURL),
		ollama.WithModel(cfg.Model),
		ollama.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("create Ollama client: %w", err)
	}
	return NewLangchainProvider(model, cfg.Model), nil
}

// NewOpenAIProvider creates an OpenAI chat provider.
func NewOpenAIProvider(cfg config.ProviderConfig) (*LangchainProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	opts := []lcopenai.Option{
		lcopenai.WithToken(cfg.APIKey),
		lcopenai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, lcopenai.WithBaseURL(cfg.BaseURL))
	}
	model, err := lcopenai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create OpenAI client: %w", err)
	}
	return NewLangchainProvider(model, cfg.Model), nil
}

func (p *LangchainProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var messages []llms.MessageContent
	if req.System != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, req.System))
	}
	for _, m := range req.Messages {
		msgType := llms.ChatMessageTypeHuman
		if m.Role == RoleAssistant {
			msgType = llms.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(msgType, m.Content))
	}

	var opts []llms.CallOption
	if req.Temperature > 0 {
		opts = append(opts, llms.WithTemperature(req.Temperature))
	}
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}
	if req.JSON {
		opts = append(opts, llms.WithJSONMode())
	}

	resp, err := p.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		if isContextErr(err) {
			return nil, err
		}
		return nil, &ErrProviderUnavailable{Err: err}
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("empty completion from %s", p.modelID)}
	}

	choice := resp.Choices[0]
	stop := "end"
	if choice.StopReason == "length" || choice.StopReason == "max_tokens" {
		stop = "max_tokens"
	}
	return &Response{
		Content:    choice.Content,
		Usage:      usageFromGenerationInfo(choice.GenerationInfo),
		Model:      p.modelID,
		StopReason: stop,
	}, nil
}

func (p *LangchainProvider) ModelID() string {
	return p.modelID
}

// usageFromGenerationInfo reads token counts where the backend reports them.
func usageFromGenerationInfo(info map[string]any) Usage {
	var u Usage
	for _, key := range []string{"PromptTokens", "PromptEvalCount"} {
		if v, ok := info[key].(int); ok {
			u.InputTokens = v
		}
	}
	for _, key := range []string{"CompletionTokens", "EvalCount"} {
		if v, ok := info[key].(int); ok {
			u.OutputTokens = v
		}
	}
	u.TotalTokens = u.InputTokens + u.OutputTokens
	return u
}
