/*
Copyright © 2025 medicare-vn
*/
package cmd

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medicare-vn/medicare-be/config"
	"github.com/medicare-vn/medicare-be/database"
	"github.com/medicare-vn/medicare-be/handler"
	"github.com/medicare-vn/medicare-be/logger"
	"github.com/medicare-vn/medicare-be/middleware"
	"github.com/medicare-vn/medicare-be/repository"
	"github.com/medicare-vn/medicare-be/service"
	"github.com/spf13/cobra"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the chat server",
	Long:  `Starts the server that handles chat requests against the knowledge base and the AI provider chain`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")

		logger.Init()
		log := logger.Get()

		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		mongoClient, err := database.NewMongoClient(ctx, cfg.MongoURI)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		db := mongoClient.Database(cfg.DatabaseName)

		// init repos
		knowledgeRepo := repository.NewKnowledgeRepo(db)
		productRepo := repository.NewProductRepo(db)

		// init core services
		store := service.NewKnowledgeStore(knowledgeRepo, cfg.KnowledgeCacheTTL, cfg.StoreTimeout, log)
		ranker := service.NewRanker()
		intent := service.NewIntentExtractor()
		finder := service.NewProductFinder(productRepo, log)

		// Provider chain in priority order. A missing credential just
		// skips that provider; the rule-based fallback always closes
		// the chain.
		var providers []service.Provider
		configured := map[string]bool{"openai": false, "gemini": false, "fallback": true}
		if cfg.OpenAIAPIKey != "" {
			providers = append(providers, service.NewOpenAIProvider(
				cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, store, ranker, finder, log))
			configured["openai"] = true
		}
		if cfg.GeminiAPIKey != "" {
			gemini, err := service.NewGeminiProvider(
				context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, store, ranker, intent, finder, log)
			if err != nil {
				log.WithError(err).Warn("Gemini provider unavailable, continuing without it")
			} else {
				providers = append(providers, gemini)
				configured["gemini"] = true
			}
		}
		providers = append(providers, service.NewFallbackProvider(intent, finder))

		chatService := service.NewChatService(providers, cfg.ProviderTimeout, log)
		wsService := service.NewWebSocketService(chatService, log)

		// warm the cache so the first chat turn does not pay the load
		go store.GetSnapshot(context.Background())

		// Initialize handlers
		corsHandler := handler.NewCorsHandler()
		chatHandler := handler.NewChatHandler(chatService, wsService)
		knowledgeHandler := handler.NewKnowledgeHandler(store, ranker)
		healthHandler := handler.NewHealthHandler(mongoClient, configured)

		// Setup Gin router
		router := gin.New()
		router.Use(gin.Recovery())
		router.Use(middleware.RequestLogger(log))
		router.Use(corsHandler.CorsMiddleware)

		router.GET("/healthz", healthHandler.HandleHealth)

		apiV1 := router.Group("/api/v1")
		{
			apiV1.POST("/chat", chatHandler.HandleChat)
			apiV1.GET("/chat/ws", chatHandler.HandleChatWS)
			apiV1.GET("/knowledge/search", knowledgeHandler.HandleSearch)
		}

		log.Infof("Starting server on port %s...", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startServerCmd)
	startServerCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
}
