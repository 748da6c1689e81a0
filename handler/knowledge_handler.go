package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medicare-vn/medicare-be/service"
	"github.com/medicare-vn/medicare-be/types"
)

// KnowledgeHandler exposes the lexical ranker over the cached knowledge
// base, mainly for the admin back-office and for debugging relevance.
type KnowledgeHandler struct {
	store  *service.KnowledgeStore
	ranker *service.Ranker
}

func NewKnowledgeHandler(store *service.KnowledgeStore, ranker *service.Ranker) *KnowledgeHandler {
	return &KnowledgeHandler{
		store:  store,
		ranker: ranker,
	}
}

func (h *KnowledgeHandler) HandleSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Query parameter q is required",
		})
		return
	}

	snapshot := h.store.GetSnapshot(c.Request.Context())
	result := h.ranker.Search(query, snapshot)
	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data:   result,
	})
}
