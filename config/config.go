package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port         string `mapstructure:"port"`
	MongoURI     string `mapstructure:"MONGODB_URI"`
	DatabaseName string `mapstructure:"database_name"`

	OpenAIAPIKey  string `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL string `mapstructure:"openai_base_url"`
	OpenAIModel   string `mapstructure:"openai_model"`

	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"gemini_model"`

	KnowledgeCacheTTL time.Duration `mapstructure:"knowledge_cache_ttl"`
	StoreTimeout      time.Duration `mapstructure:"store_timeout"`
	ProviderTimeout   time.Duration `mapstructure:"provider_timeout"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set up Viper to read from config file
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set up Viper to read from environment variables
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("database_name", "MediCare_database")
	v.SetDefault("openai_model", "gpt-4o-mini")
	v.SetDefault("gemini_model", "gemini-pro")
	v.SetDefault("knowledge_cache_ttl", time.Hour)
	v.SetDefault("store_timeout", 10*time.Second)
	v.SetDefault("provider_timeout", 30*time.Second)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Bind environment variables
	v.BindEnv("MONGODB_URI")
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("GEMINI_API_KEY")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}
