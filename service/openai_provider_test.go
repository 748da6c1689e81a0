package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/medicare-vn/medicare-be/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSnapshotSource struct {
	snap *types.KnowledgeSnapshot
}

func (s *fakeSnapshotSource) GetSnapshot(ctx context.Context) *types.KnowledgeSnapshot {
	if s.snap != nil {
		return s.snap
	}
	return &types.KnowledgeSnapshot{}
}

func newTestOpenAIProvider(baseURL string, searcher productSearcher) *OpenAIProvider {
	return NewOpenAIProvider(baseURL, "test-key", "gpt-4o-mini",
		&fakeSnapshotSource{}, NewRanker(), searcher, testLogger())
}

func TestOpenAIProvider_PlainAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"choices":[{"finish_reason":"stop","message":{"role":"assistant","content":"Chào bạn, tôi là MeCa!"}}]}`)
	}))
	defer server.Close()

	provider := newTestOpenAIProvider(server.URL, &fakeSearcher{})
	resp, err := provider.Respond(context.Background(), &types.ProviderInput{Message: "xin chào"})
	require.NoError(t, err)
	assert.Equal(t, "Chào bạn, tôi là MeCa!", resp.Text)
	assert.Nil(t, resp.Products)
}

func TestOpenAIProvider_ToolCallFlow(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		if calls == 1 {
			io.WriteString(w, `{"choices":[{"finish_reason":"tool_calls","message":{"role":"assistant","tool_calls":[{"id":"call_1","type":"function","function":{"name":"search_products","arguments":"{\"keywords\":\"thuốc ho\",\"limit\":2}"}}]}}]}`)
			return
		}

		// The follow-up request must carry the tool result turn.
		body, _ := io.ReadAll(r.Body)
		var req struct {
			Messages []map[string]any `json:"messages"`
		}
		require.NoError(t, json.Unmarshal(body, &req))
		last := req.Messages[len(req.Messages)-1]
		assert.Equal(t, "tool", last["role"])

		io.WriteString(w, `{"choices":[{"finish_reason":"stop","message":{"role":"assistant","content":"Đây là một vài gợi ý cho bạn."}}]}`)
	}))
	defer server.Close()

	searcher := &fakeSearcher{items: []types.CatalogItem{{Name: "Prospan"}}}
	provider := newTestOpenAIProvider(server.URL, searcher)

	resp, err := provider.Respond(context.Background(), &types.ProviderInput{Message: "tôi bị ho, gợi ý thuốc"})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "Đây là một vài gợi ý cho bạn.", resp.Text)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Prospan", resp.Products[0].Name)
	require.NotEmpty(t, searcher.terms)
	assert.Equal(t, "thuốc ho", searcher.terms[0])
}

func TestOpenAIProvider_ServerErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := newTestOpenAIProvider(server.URL, &fakeSearcher{})
	_, err := provider.Respond(context.Background(), &types.ProviderInput{Message: "xin chào"})
	assert.Error(t, err)
}

func TestOpenAIProvider_UnknownToolRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"choices":[{"finish_reason":"tool_calls","message":{"role":"assistant","tool_calls":[{"id":"call_1","type":"function","function":{"name":"delete_everything","arguments":"{}"}}]}}]}`)
	}))
	defer server.Close()

	provider := newTestOpenAIProvider(server.URL, &fakeSearcher{})
	_, err := provider.Respond(context.Background(), &types.ProviderInput{Message: "xin chào"})
	assert.Error(t, err)
}
