package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicTagger struct {
	client    *anthropic.Client
	model     anthropic.Model
	modelName string
}

func NewAnthropicTagger(apiKey string, opts ...option.RequestOption) *AnthropicTagger {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, opts...)
	client := anthropic.NewClient(opts...)
	return &AnthropicTagger{
		client:    &client,
		model:     anthropic.ModelClaudeHaiku4_5,
		modelName: "claude-4.5-haiku",
	}
}

func (c *AnthropicTagger) Name() string {
	return "anthropic:" + c.modelName
}

func (c *AnthropicTagger) Tags(ctx context.Context, input TagInput) ([]string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 128,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildTagPrompt(input))),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("%w: anthropic status %d: %w", ErrBadStatus, apiErr.StatusCode, err)
		}
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		text.WriteString(block.Text)
	}
	if text.Len() == 0 {
		return nil, ErrEmptyResponse
	}

	tags := ParseTags(text.String())
	if len(tags) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnparsableResponse, text.String())
	}
	return tags, nil
}
