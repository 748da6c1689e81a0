/*
Copyright © 2025 medicare-vn
*/
package cmd

import (
	"context"
	"time"

	"github.com/medicare-vn/medicare-be/config"
	"github.com/medicare-vn/medicare-be/database"
	"github.com/medicare-vn/medicare-be/logger"
	"github.com/medicare-vn/medicare-be/repository"
	"github.com/medicare-vn/medicare-be/service"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// warmupCmd loads the knowledge base once and reports what is in it.
// Useful after content imports to verify the collections are readable.
var warmupCmd = &cobra.Command{
	Use:   "warmup",
	Short: "Load the knowledge base cache once and exit",
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")

		logger.Init()
		log := logger.Get()

		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		mongoClient, err := database.NewMongoClient(ctx, cfg.MongoURI)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer mongoClient.Disconnect(context.Background())

		knowledgeRepo := repository.NewKnowledgeRepo(mongoClient.Database(cfg.DatabaseName))
		store := service.NewKnowledgeStore(knowledgeRepo, cfg.KnowledgeCacheTTL, cfg.StoreTimeout, log)

		snapshot := store.GetSnapshot(ctx)
		if snapshot.Empty() {
			log.Fatal("Knowledge base is empty or unreachable")
		}
		log.WithFields(logrus.Fields{
			"articles":   len(snapshot.Articles),
			"conditions": len(snapshot.Conditions),
			"catalog":    len(snapshot.CatalogSample),
		}).Info("Knowledge base warmed up")
	},
}

func init() {
	rootCmd.AddCommand(warmupCmd)
	warmupCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
}
