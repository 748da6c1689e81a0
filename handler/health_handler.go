package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medicare-vn/medicare-be/types"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type HealthHandler struct {
	mongoClient *mongo.Client
	providers   map[string]bool
}

// NewHealthHandler reports store reachability and which response
// providers are configured. A missing provider credential is a normal
// state here, not an error.
func NewHealthHandler(mongoClient *mongo.Client, providers map[string]bool) *HealthHandler {
	return &HealthHandler{
		mongoClient: mongoClient,
		providers:   providers,
	}
}

func (h *HealthHandler) HandleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "up"
	status := http.StatusOK
	if err := h.mongoClient.Ping(ctx, nil); err != nil {
		dbStatus = "down"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, types.HealthResponse{
		Status:    "ok",
		Database:  dbStatus,
		Providers: h.providers,
	})
}
