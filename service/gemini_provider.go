package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/medicare-vn/medicare-be/types"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// geminiInstruction frames the model as the MeCa assistant. Gemini has no
// native tool-calling here; knowledge and product context are injected
// into the prompt instead.
const geminiInstruction = `Bạn là MeCa, trợ lý y tế thông minh và chuyên nghiệp của MediCare.

Nhiệm vụ của bạn:
1. ĐỌC KỸ và PHÂN TÍCH câu hỏi của người dùng để hiểu đúng vấn đề sức khỏe họ đang gặp
2. Nếu có thông tin sản phẩm cụ thể bên dưới, người dùng đang hỏi về sản phẩm đó, BẮT BUỘC trả lời về sản phẩm đó
3. Sử dụng thông tin về bệnh và bài viết từ database bên dưới để trả lời chính xác
4. Khi người dùng mô tả triệu chứng, giải thích vấn đề và gợi ý sản phẩm phù hợp
5. Luôn nhắc nhở tham khảo ý kiến bác sĩ cho vấn đề nghiêm trọng
6. Trả lời bằng tiếng Việt, thân thiện, dễ hiểu

Hãy phân tích câu hỏi sau và trả lời PHÙ HỢP với vấn đề người dùng đang gặp:`

// GeminiProvider is the secondary, context-injection provider.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
	store  snapshotSource
	ranker *Ranker
	intent *IntentExtractor
	finder productSearcher
	log    *logrus.Logger
}

func NewGeminiProvider(ctx context.Context, apiKey, modelName string, store snapshotSource, ranker *Ranker, intent *IntentExtractor, finder productSearcher, log *logrus.Logger) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, errors.New("no API key provided")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiProvider{
		client: client,
		model:  client.GenerativeModel(modelName),
		store:  store,
		ranker: ranker,
		intent: intent,
		finder: finder,
		log:    log,
	}, nil
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) Close() error { return p.client.Close() }

func (p *GeminiProvider) Respond(ctx context.Context, input *types.ProviderInput) (*types.ProviderResponse, error) {
	snap := p.store.GetSnapshot(ctx)
	ranked := p.ranker.Search(input.Message, snap)
	detected := p.intent.ExtractIntent(input.Message)

	var b strings.Builder
	b.WriteString(geminiInstruction)
	b.WriteString(buildProductContext(input.ProductContext))
	b.WriteString(buildKnowledgeContext(ranked))
	if detected != "" {
		fmt.Fprintf(&b, "\n\nLƯU Ý: Từ câu hỏi của người dùng, tôi đã phát hiện họ đang gặp vấn đề về: %q. Hãy trả lời về vấn đề này, KHÔNG phải vấn đề khác.", detected)
	}
	fmt.Fprintf(&b, "\n\nNgười dùng hỏi: %s\n\nHãy trả lời bằng tiếng Việt một cách chuyên nghiệp và hữu ích về y tế.", input.Message)

	resp, err := p.model.GenerateContent(ctx, genai.Text(b.String()))
	if err != nil {
		return nil, err
	}
	text := collectText(resp)
	if text == "" {
		return nil, errors.New("no response generated")
	}

	// Suggest-signal messages without a resolved intent have nothing
	// concrete to search for, the extractor already covers the signal
	// words through its heuristic path.
	var products []types.CatalogItem
	if detected != "" {
		p.log.WithField("intent", detected).Debug("searching products for resolved intent")
		products = p.finder.FindProducts(ctx, detected, defaultProductLimit)
	}
	return &types.ProviderResponse{Text: text, Products: products}, nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return b.String()
}
