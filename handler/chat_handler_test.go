package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medicare-vn/medicare-be/service"
	"github.com/medicare-vn/medicare-be/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProductRepo struct {
	items []types.CatalogItem
}

func (r *stubProductRepo) SearchProducts(ctx context.Context, term string, limit int64) ([]types.CatalogItem, error) {
	return r.items, nil
}

func newTestRouter(items []types.CatalogItem) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetOutput(io.Discard)

	intent := service.NewIntentExtractor()
	finder := service.NewProductFinder(&stubProductRepo{items: items}, log)
	fallback := service.NewFallbackProvider(intent, finder)
	chatService := service.NewChatService([]service.Provider{fallback}, time.Second, log)
	wsService := service.NewWebSocketService(chatService, log)

	router := gin.New()
	chatHandler := NewChatHandler(chatService, wsService)
	router.POST("/api/v1/chat", chatHandler.HandleChat)
	return router
}

func TestChatHandler_FallbackResponse(t *testing.T) {
	router := newTestRouter([]types.CatalogItem{{Name: "Glucosamine"}})

	body := `{"message": "tôi bị đau lưng"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status string             `json:"status"`
		Data   types.ChatResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "fallback", resp.Data.Provider)
	assert.NotEmpty(t, resp.Data.Text)
	require.Len(t, resp.Data.Products, 1)
	assert.Equal(t, "Glucosamine", resp.Data.Products[0].Name)
}

func TestChatHandler_RejectsEmptyMessage(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatHandler_RejectsInvalidBody(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(`not-json`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
