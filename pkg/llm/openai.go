package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAITagger struct {
	client    *openai.Client
	model     openai.ChatModel
	modelName string
}

// NewOpenAITagger disables SDK retries; the Annotator owns the latency budget.
func NewOpenAITagger(apiKey string, opts ...option.RequestOption) *OpenAITagger {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, opts...)
	client := openai.NewClient(opts...)
	return &OpenAITagger{
		client:    &client,
		model:     openai.ChatModelGPT4oMini,
		modelName: "gpt-4o-mini",
	}
}

func (c *OpenAITagger) Name() string {
	return "openai:" + c.modelName
}

func (c *OpenAITagger) Tags(ctx context.Context, input TagInput) ([]string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(buildTagPrompt(input)),
		},
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("%w: openai status %d: %w", ErrBadStatus, apiErr.StatusCode, err)
		}
		return nil, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	content := resp.Choices[0].Message.Content
	tags := ParseTags(content)
	if len(tags) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnparsableResponse, content)
	}
	return tags, nil
}
