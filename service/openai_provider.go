package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/medicare-vn/medicare-be/types"
	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
	"github.com/sirupsen/logrus"
)

const searchProductsTool = "search_products"

// OpenAIProvider is the primary, tool-calling provider. The model may call
// search_products; the tool result is appended as a turn and a second
// completion produces the final answer.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	tools  []openai.Tool
	store  snapshotSource
	ranker *Ranker
	finder productSearcher
	log    *logrus.Logger
}

func NewOpenAIProvider(baseURL, apiKey, model string, store snapshotSource, ranker *Ranker, finder productSearcher, log *logrus.Logger) *OpenAIProvider {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  model,
		tools:  []openai.Tool{searchProductsToolDefinition()},
		store:  store,
		ranker: ranker,
		finder: finder,
		log:    log,
	}
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Respond(ctx context.Context, input *types.ProviderInput) (*types.ProviderResponse, error) {
	snap := p.store.GetSnapshot(ctx)
	ranked := p.ranker.Search(input.Message, snap)

	system := systemPrompt + buildKnowledgeContext(ranked) + buildProductContext(input.ProductContext)
	messages := make([]openai.ChatCompletionMessage, 0, len(input.History)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: system,
	})
	for _, msg := range input.History {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: input.Message,
	})

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    messages,
		Tools:       p.tools,
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("no response generated")
	}

	choice := resp.Choices[0]
	if choice.FinishReason != openai.FinishReasonToolCalls {
		return &types.ProviderResponse{Text: choice.Message.Content}, nil
	}
	return p.handleToolCalls(ctx, messages, choice.Message)
}

// handleToolCalls executes the requested product searches and issues one
// follow-up completion for the final natural-language answer.
func (p *OpenAIProvider) handleToolCalls(ctx context.Context, messages []openai.ChatCompletionMessage, assistant openai.ChatCompletionMessage) (*types.ProviderResponse, error) {
	messages = append(messages, assistant)

	var products []types.CatalogItem
	for _, toolCall := range assistant.ToolCalls {
		if toolCall.Type != openai.ToolTypeFunction || toolCall.Function.Name != searchProductsTool {
			return nil, fmt.Errorf("unknown tool call: %s", toolCall.Function.Name)
		}

		var args struct {
			Keywords string `json:"keywords"`
			Limit    int    `json:"limit"`
		}
		if err := json.Unmarshal([]byte(toolCall.Function.Arguments), &args); err != nil {
			return nil, fmt.Errorf("failed to parse tool arguments: %w", err)
		}
		p.log.WithField("keywords", args.Keywords).Debug("model requested product search")
		found := p.finder.FindProducts(ctx, args.Keywords, args.Limit)
		products = append(products, found...)

		result, err := json.Marshal(found)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal tool result: %w", err)
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:       openai.ChatMessageRoleTool,
			Content:    string(result),
			Name:       toolCall.Function.Name,
			ToolCallID: toolCall.ID,
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    messages,
		Tools:       p.tools,
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("no response generated")
	}

	if len(products) == 0 {
		products = nil
	}
	return &types.ProviderResponse{
		Text:     resp.Choices[0].Message.Content,
		Products: products,
	}, nil
}

func searchProductsToolDefinition() openai.Tool {
	params := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"keywords": {
				Type:        jsonschema.String,
				Description: `Từ khóa tìm kiếm sản phẩm (ví dụ: "thuốc ho", "vitamin C", "kem dưỡng da")`,
			},
			"limit": {
				Type:        jsonschema.Number,
				Description: "Số lượng sản phẩm cần tìm (mặc định 5)",
			},
		},
		Required: []string{"keywords"},
	}
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        searchProductsTool,
			Description: "Tìm kiếm sản phẩm trong cửa hàng MediCare dựa trên từ khóa",
			Parameters:  params,
		},
	}
}
