package service

import (
	"context"
	"testing"

	"github.com/medicare-vn/medicare-be/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	items []types.CatalogItem
	terms []string
}

func (s *fakeSearcher) FindProducts(ctx context.Context, term string, limit int) []types.CatalogItem {
	s.terms = append(s.terms, term)
	return s.items
}

func TestFallbackProvider_Greeting(t *testing.T) {
	provider := NewFallbackProvider(NewIntentExtractor(), &fakeSearcher{})

	resp, err := provider.Respond(context.Background(), &types.ProviderInput{Message: "xin chào"})
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "MeCa")
}

func TestFallbackProvider_BackPainRuleWithProducts(t *testing.T) {
	searcher := &fakeSearcher{items: []types.CatalogItem{{Name: "Glucosamine"}}}
	provider := NewFallbackProvider(NewIntentExtractor(), searcher)

	resp, err := provider.Respond(context.Background(), &types.ProviderInput{Message: "tôi bị đau lưng"})
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "Đau lưng")
	require.Len(t, resp.Products, 1)
	// The extractor resolved "đau lưng" to its canonical category.
	require.NotEmpty(t, searcher.terms)
	assert.Equal(t, "xương khớp", searcher.terms[0])
}

func TestFallbackProvider_CatchAllNeverEmpty(t *testing.T) {
	provider := NewFallbackProvider(NewIntentExtractor(), &fakeSearcher{})

	resp, err := provider.Respond(context.Background(), &types.ProviderInput{Message: "xyz"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Text)
}

func TestFallbackProvider_RuleSearchTermWhenNoIntent(t *testing.T) {
	searcher := &fakeSearcher{}
	provider := NewFallbackProvider(NewIntentExtractor(), searcher)

	// "hello" matches the greeting rule before any product rule and the
	// extractor finds nothing, so no search runs at all.
	resp, err := provider.Respond(context.Background(), &types.ProviderInput{Message: "hello"})
	require.NoError(t, err)
	assert.Empty(t, searcher.terms)
	assert.Nil(t, resp.Products)
}
