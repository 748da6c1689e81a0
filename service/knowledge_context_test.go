package service

import (
	"testing"

	"github.com/medicare-vn/medicare-be/types"
	"github.com/stretchr/testify/assert"
)

func TestBuildProductContext_ExactPriceAndUnit(t *testing.T) {
	product := &types.CatalogItem{
		Name:  "Panadol Extra",
		Brand: "GSK",
		Price: 125000,
		Unit:  "hộp",
	}

	context := buildProductContext(product)
	assert.Contains(t, context, "Panadol Extra")
	assert.Contains(t, context, "125.000đ")
	assert.Contains(t, context, "/ hộp")
	assert.Contains(t, context, "KHÔNG được trả lời chung chung")
}

func TestBuildProductContext_StripsHTML(t *testing.T) {
	product := &types.CatalogItem{
		Name:        "Siro ho",
		Description: "<p>Giảm <b>ho</b> hiệu quả</p>",
		Usage:       "<div>Uống sau ăn</div>",
	}

	context := buildProductContext(product)
	assert.Contains(t, context, "Giảm ho hiệu quả")
	assert.Contains(t, context, "Uống sau ăn")
	assert.NotContains(t, context, "<p>")
	assert.NotContains(t, context, "<div>")
}

func TestBuildProductContext_NilProduct(t *testing.T) {
	assert.Empty(t, buildProductContext(nil))
}

func TestBuildKnowledgeContext_Sections(t *testing.T) {
	result := types.KnowledgeSearchResult{
		Conditions: []types.RankedResult[types.Condition]{{
			Item: types.Condition{
				Name:        "Đau lưng",
				Description: "Đau vùng thắt lưng",
				Symptoms:    []string{"đau nhức", "cứng cơ", "tê bì", "mỏi"},
			},
			RelevanceScore: 7,
		}},
		Articles: []types.RankedResult[types.Article]{{
			Item:           types.Article{Title: "Chăm sóc cột sống", MetaDescription: "mẹo hay"},
			RelevanceScore: 3,
		}},
	}

	context := buildKnowledgeContext(result)
	assert.Contains(t, context, "THÔNG TIN VỀ BỆNH TỪ DATABASE")
	assert.Contains(t, context, "1. Đau lưng: Đau vùng thắt lưng")
	// Only the first three symptoms are listed.
	assert.Contains(t, context, "đau nhức, cứng cơ, tê bì")
	assert.NotContains(t, context, "mỏi")
	// Articles fall back to the meta description when there is no summary.
	assert.Contains(t, context, "Chăm sóc cột sống: mẹo hay")
}

func TestBuildKnowledgeContext_EmptyResult(t *testing.T) {
	assert.Empty(t, buildKnowledgeContext(types.KnowledgeSearchResult{}))
}
