package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port          string          `mapstructure:"port"`
	UploadDir     string          `mapstructure:"upload_dir"`
	MongoURI      string          `mapstructure:"MONGODB_URI"`
	MongoDatabase string          `mapstructure:"mongo_database"`
	OpenAIAPIKey  string          `mapstructure:"OPENAI_API_KEY"`
	GeminiAPIKeys string          `mapstructure:"GEMINI_API_KEYS"` // comma separated
	AI            AIConfig        `mapstructure:"ai"`
	Chunking      ChunkingConfig  `mapstructure:"chunking"`
	Retrieval     RetrievalConfig `mapstructure:"retrieval"`
}

type AIConfig struct {
	Provider string `mapstructure:"provider"` // "openai" or "gemini"
	Endpoint string `mapstructure:"endpoint"` // OpenAI-compatible base URL
	Model    string `mapstructure:"model"`
}

type ChunkingConfig struct {
	TargetSize int `mapstructure:"target_size"`
	Overlap    int `mapstructure:"overlap"`
}

type RetrievalConfig struct {
	TopK            int `mapstructure:"top_k"`
	MaxContextChars int `mapstructure:"max_context_chars"`
	HistoryTail     int `mapstructure:"history_tail"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set up Viper to read from config file
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set up Viper to read from environment variables
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Bind environment variables
	v.BindEnv("MONGODB_URI")
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("GEMINI_API_KEYS")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}
