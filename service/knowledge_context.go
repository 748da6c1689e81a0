package service

import (
	"fmt"
	"strings"

	"github.com/medicare-vn/medicare-be/types"
	"github.com/medicare-vn/medicare-be/utils"
)

// systemPrompt is the MeCa persona used by the tool-calling provider.
const systemPrompt = `Bạn là MeCa, một trợ lý y tế thông minh và thân thiện của MediCare.
Nhiệm vụ của bạn:
1. Trả lời các câu hỏi về sức khỏe, bệnh tật, thuốc men một cách chuyên nghiệp
2. Gợi ý sản phẩm phù hợp khi người dùng cần
3. Luôn nhắc nhở người dùng tham khảo ý kiến bác sĩ cho các vấn đề nghiêm trọng
4. Trả lời bằng tiếng Việt, thân thiện và dễ hiểu

Khi người dùng hỏi về sản phẩm, bạn có thể gọi function search_products để tìm kiếm.`

// buildKnowledgeContext renders the ranked conditions and articles as a
// plain-text block for prompt injection.
func buildKnowledgeContext(result types.KnowledgeSearchResult) string {
	var b strings.Builder

	if len(result.Conditions) > 0 {
		b.WriteString("\n\nTHÔNG TIN VỀ BỆNH TỪ DATABASE:\n")
		for i, ranked := range result.Conditions {
			condition := ranked.Item
			fmt.Fprintf(&b, "%d. %s: %s\n", i+1, condition.Name, condition.Description)
			if len(condition.Symptoms) > 0 {
				symptoms := condition.Symptoms
				if len(symptoms) > 3 {
					symptoms = symptoms[:3]
				}
				fmt.Fprintf(&b, "   Triệu chứng: %s\n", strings.Join(symptoms, ", "))
			}
		}
	}

	if len(result.Articles) > 0 {
		b.WriteString("\n\nTHÔNG TIN TỪ BÀI VIẾT SỨC KHỎE:\n")
		for i, ranked := range result.Articles {
			article := ranked.Item
			summary := article.Summary
			if summary == "" {
				summary = article.MetaDescription
			}
			fmt.Fprintf(&b, "%d. %s: %s\n", i+1, article.Title, summary)
		}
	}

	return b.String()
}

// buildProductContext renders the product the user is currently viewing,
// verbatim, with an explicit instruction that questions must be answered
// about this product and not a substitute.
func buildProductContext(product *types.CatalogItem) string {
	if product == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\nTHÔNG TIN CHI TIẾT SẢN PHẨM NGƯỜI DÙNG ĐANG XEM:\n")
	fmt.Fprintf(&b, "Tên sản phẩm: %s\n", product.Name)
	if product.Brand != "" {
		fmt.Fprintf(&b, "Thương hiệu: %s\n", product.Brand)
	}
	if product.Price > 0 {
		fmt.Fprintf(&b, "Giá: %s", utils.FormatPriceVND(product.Price))
		if product.Unit != "" {
			fmt.Fprintf(&b, " / %s", product.Unit)
		}
		b.WriteString("\n")
		if product.OriginalPrice > product.Price {
			fmt.Fprintf(&b, "Giá gốc: %s\n", utils.FormatPriceVND(product.OriginalPrice))
		}
		if product.Discount > 0 {
			fmt.Fprintf(&b, "Giảm giá: %d%%\n", product.Discount)
		}
	}
	if product.Description != "" {
		fmt.Fprintf(&b, "Mô tả: %s\n", utils.StripHTML(product.Description))
	}
	if product.Usage != "" {
		fmt.Fprintf(&b, "Công dụng: %s\n", utils.StripHTML(product.Usage))
	}
	if len(product.Ingredients) > 0 {
		fmt.Fprintf(&b, "Thành phần: %s\n", utils.StripHTML(strings.Join(product.Ingredients, ", ")))
	}
	if product.Manufacturer != "" {
		fmt.Fprintf(&b, "Nhà sản xuất: %s\n", product.Manufacturer)
	}
	if product.Country != "" {
		fmt.Fprintf(&b, "Nước sản xuất: %s\n", product.Country)
	}
	if product.DosageForm != "" {
		fmt.Fprintf(&b, "Dạng bào chế: %s\n", product.DosageForm)
	}
	if product.Stock != nil {
		if *product.Stock > 0 {
			b.WriteString("Tồn kho: Còn hàng\n")
		} else {
			b.WriteString("Tồn kho: Hết hàng\n")
		}
	}

	price := "liên hệ"
	if product.Price > 0 {
		price = utils.FormatPriceVND(product.Price)
		if product.Unit != "" {
			price += " / " + product.Unit
		}
	}
	fmt.Fprintf(&b, `
QUAN TRỌNG: Người dùng đang hỏi về sản phẩm "%s" này.
- Khi hỏi "giá bao nhiêu?" bạn PHẢI trả lời: "Sản phẩm %s có giá %s"
- Khi hỏi về công dụng, thành phần hoặc mô tả bạn PHẢI trả lời dựa trên thông tin ở trên
- KHÔNG được trả lời chung chung hoặc gợi ý sản phẩm khác trừ khi người dùng yêu cầu
`, product.Name, product.Name, price)

	return b.String()
}
