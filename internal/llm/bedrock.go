package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/subham11/farmer-advisor-go/core"
	"github.com/subham11/farmer-advisor-go/resilience"
)

// claudeMessagesRequest is the Anthropic Messages API request body Bedrock
// expects for anthropic.* model IDs.
type claudeMessagesRequest struct {
	AnthropicVersion string          `json:"anthropic_version"`
	MaxTokens        int             `json:"max_tokens"`
	Messages         []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeMessagesResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// BedrockGenerator renders prompts via Amazon Bedrock's Anthropic Claude
// model, matching the upstream system's LLM_MODEL default of
// anthropic.claude-3-haiku-20240307-v1:0.
type BedrockGenerator struct {
	client  *bedrockruntime.Client
	modelID string
	cb      *resilience.CircuitBreaker
	retry   *resilience.RetryConfig
	logger  core.Logger
}

// NewBedrockGenerator builds a Generator against the given AWS region and
// model ID, loading credentials from the default provider chain.
func NewBedrockGenerator(ctx context.Context, region, modelID string, cbConfig core.CircuitBreakerConfig, logger core.Logger) (*BedrockGenerator, error) {
	if logger == nil {
		logger = core.NoOpLogger{}
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &BedrockGenerator{
		client:  bedrockruntime.NewFromConfig(cfg),
		modelID: modelID,
		cb:      resilience.NewCircuitBreaker("bedrock_generator", cbConfig, logger),
		retry:   resilience.DefaultRetryConfig(),
		logger:  logger,
	}, nil
}

// Generate invokes the configured Claude model with prompt as the sole
// user message.
func (g *BedrockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := claudeMessagesRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        1024,
		Messages:         []claudeMessage{{Role: "user", Content: prompt}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal bedrock request: %w", err)
	}

	var output string
	err = resilience.RetryWithCircuitBreaker(ctx, g.retry, g.cb, func() error {
		resp, err := g.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
			ModelId:     &g.modelID,
			ContentType: strPtr("application/json"),
			Accept:      strPtr("application/json"),
			Body:        payload,
		})
		if err != nil {
			return fmt.Errorf("%w: bedrock invoke: %v", core.ErrUpstreamUnavailable, err)
		}

		var decoded claudeMessagesResponse
		if err := json.Unmarshal(resp.Body, &decoded); err != nil {
			return fmt.Errorf("%w: decode bedrock response: %v", core.ErrUpstreamUnavailable, err)
		}
		if len(decoded.Content) == 0 {
			return fmt.Errorf("%w: bedrock returned no content", core.ErrUpstreamUnavailable)
		}
		output = decoded.Content[0].Text
		return nil
	})

	if err != nil {
		g.logger.Warn("bedrock generation failed", map[string]interface{}{"error": err.Error()})
		return "", err
	}
	return output, nil
}

func strPtr(s string) *string { return &s }
