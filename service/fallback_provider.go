package service

import (
	"context"
	"strings"

	"github.com/medicare-vn/medicare-be/types"
)

// fallbackRule pairs message keywords with a canned answer and an optional
// default search term used when the extractor found no intent.
type fallbackRule struct {
	keywords   []string
	response   string
	searchTerm string
}

// fallbackRules are checked in order; the first match wins.
var fallbackRules = []fallbackRule{
	{
		keywords: []string{"chào", "hello"},
		response: "Xin chào! Tôi là MeCa, trợ lý y tế của MediCare. Tôi có thể giúp gì cho bạn?",
	},
	{
		keywords:   []string{"ho", "cough"},
		response:   "Tôi có thể giúp bạn tìm sản phẩm hỗ trợ giảm ho. Bạn có thể thử tìm \"thuốc ho\" hoặc \"siro ho\" trong cửa hàng.",
		searchTerm: "thuốc ho",
	},
	{
		keywords:   []string{"vitamin"},
		response:   "Tôi có thể giúp bạn tìm các sản phẩm vitamin và khoáng chất. Bạn cần loại vitamin nào cụ thể không?",
		searchTerm: "vitamin",
	},
	{
		keywords:   []string{"đau đầu", "nhức đầu"},
		response:   "Đau đầu có thể do nhiều nguyên nhân như căng thẳng, thiếu ngủ, hoặc vấn đề về thần kinh. Tôi có thể gợi ý một số sản phẩm hỗ trợ giảm đau đầu và tăng cường sức khỏe thần kinh. Tuy nhiên, nếu đau đầu kéo dài hoặc nghiêm trọng, bạn nên tham khảo ý kiến bác sĩ.",
		searchTerm: "thần kinh não",
	},
	{
		keywords:   []string{"đau lưng", "back pain"},
		response:   "Đau lưng có thể do nhiều nguyên nhân như căng cơ, thoái hóa cột sống, hoặc vấn đề về xương khớp. Tôi có thể gợi ý một số sản phẩm hỗ trợ xương khớp và giảm đau lưng. Tuy nhiên, nếu đau lưng kéo dài hoặc nghiêm trọng, bạn nên tham khảo ý kiến bác sĩ.",
		searchTerm: "xương khớp",
	},
	{
		keywords: []string{"sản phẩm", "mua"},
		response: "Tôi có thể giúp bạn tìm sản phẩm phù hợp. Bạn đang tìm loại sản phẩm nào?",
	},
}

const fallbackCatchAll = "Cảm ơn bạn đã liên hệ! Để tôi có thể hỗ trợ tốt hơn, bạn có thể:\n\n" +
	"1. Mô tả vấn đề sức khỏe bạn đang gặp\n" +
	"2. Hỏi về sản phẩm cụ thể\n" +
	"3. Yêu cầu gợi ý sản phẩm\n\n" +
	"Lưu ý: Tôi chỉ cung cấp thông tin tham khảo. Với các vấn đề nghiêm trọng, vui lòng tham khảo ý kiến bác sĩ."

// FallbackProvider answers from an ordered keyword rule set when no AI
// provider is available. It never fails and never returns empty text.
type FallbackProvider struct {
	intent *IntentExtractor
	finder productSearcher
}

func NewFallbackProvider(intent *IntentExtractor, finder productSearcher) *FallbackProvider {
	return &FallbackProvider{intent: intent, finder: finder}
}

func (p *FallbackProvider) Name() string { return "fallback" }

func (p *FallbackProvider) Respond(ctx context.Context, input *types.ProviderInput) (*types.ProviderResponse, error) {
	lower := strings.ToLower(input.Message)

	var products []types.CatalogItem
	if term := p.intent.ExtractIntent(input.Message); term != "" {
		products = p.finder.FindProducts(ctx, term, defaultProductLimit)
	}

	for _, rule := range fallbackRules {
		if !matchesAny(lower, rule.keywords) {
			continue
		}
		if len(products) == 0 && rule.searchTerm != "" {
			products = p.finder.FindProducts(ctx, rule.searchTerm, defaultProductLimit)
		}
		return &types.ProviderResponse{Text: rule.response, Products: products}, nil
	}

	return &types.ProviderResponse{Text: fallbackCatchAll, Products: products}, nil
}

func matchesAny(lower string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
