package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/madewithnestle/ai-chatbot/internal/core/domain"
	"github.com/madewithnestle/ai-chatbot/internal/infrastructure/resilience"
)

type Config struct {
	APIKey          string
	Model           string
	AzureEndpoint   string
	AzureDeployment string
	MaxTokens       int
	Temperature     float32
}

func (c Config) normalize() Config {
	out := c
	if out.Model == "" {
		out.Model = goopenai.GPT3Dot5Turbo
	}
	if out.MaxTokens <= 0 {
		out.MaxTokens = 800
	}
	if out.Temperature <= 0 {
		out.Temperature = 0.7
	}
	return out
}

// Generator produces the user-facing answer through an OpenAI-compatible
// chat completion endpoint, Azure included. Every failure is reported as a
// typed generation error so the chat pipeline can substitute the local
// fallback answer.
type Generator struct {
	client *goopenai.Client
	cfg    Config
	exec   *resilience.Executor
}

func New(cfg Config, exec *resilience.Executor) *Generator {
	cfg = cfg.normalize()

	var clientConfig goopenai.ClientConfig
	if cfg.AzureEndpoint != "" {
		clientConfig = goopenai.DefaultAzureConfig(cfg.APIKey, cfg.AzureEndpoint)
		if cfg.AzureDeployment != "" {
			cfg.Model = cfg.AzureDeployment
		}
	} else {
		clientConfig = goopenai.DefaultConfig(cfg.APIKey)
	}

	if exec == nil {
		exec = resilience.NewExecutor(resilience.DefaultConfig())
	}
	return &Generator{
		client: goopenai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
		exec:   exec,
	}
}

// NewWithBaseURL points the generator at a custom OpenAI-compatible server.
func NewWithBaseURL(cfg Config, baseURL string, exec *resilience.Executor) *Generator {
	g := New(cfg, exec)
	clientConfig := goopenai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimRight(baseURL, "/")
	g.client = goopenai.NewClientWithConfig(clientConfig)
	return g
}

func (g *Generator) Generate(ctx context.Context, question, contextText string) (string, error) {
	request := goopenai.ChatCompletionRequest{
		Model:       g.cfg.Model,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: goopenai.ChatMessageRoleUser, Content: buildUserMessage(question, contextText)},
		},
	}

	var answer string
	err := g.exec.Execute(ctx, "chat_completion", func(ctx context.Context) error {
		response, err := g.client.CreateChatCompletion(ctx, request)
		if err != nil {
			return err
		}
		if len(response.Choices) == 0 {
			return fmt.Errorf("completion returned no choices")
		}
		answer = strings.TrimSpace(response.Choices[0].Message.Content)
		if answer == "" {
			return fmt.Errorf("completion returned empty content")
		}
		return nil
	}, classifyCompletionError)
	if err != nil {
		return "", domain.WrapError(domain.ErrGenerationFailure, "chat completion", err)
	}
	return answer, nil
}

func classifyCompletionError(err error) resilience.ErrorClassification {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		if resilience.IsRetryableHTTPStatus(apiErr.HTTPStatusCode) {
			return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
		}
		// Auth, quota, and malformed-request errors will not heal on retry.
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}
	return resilience.ClassifyHTTPError(err)
}
