/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tieubaoca/docstudy-be/config"
	"github.com/tieubaoca/docstudy-be/database"
	"github.com/tieubaoca/docstudy-be/handler"
	"github.com/tieubaoca/docstudy-be/repository"
	"github.com/tieubaoca/docstudy-be/service"
	"github.com/tieubaoca/docstudy-be/types"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the document study server",
	Long:  `Starts the HTTP server that handles document ingestion, retrieval, chat and explanations`,
	Run: func(cmd *cobra.Command, args []string) {
		cfgPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.LoadConfig(cfgPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		mongoClient, err := database.NewMongoClient(cfg.MongoURI)
		if err != nil {
			log.Fatalf("Failed to create MongoDB client: %v", err)
		}
		if err := mongoClient.Ping(context.Background(), nil); err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		mongoDb := mongoClient.Database(cfg.MongoDatabase)

		// init repos
		documentRepo := repository.NewDocumentRepo(mongoDb.Collection("documents"))
		historyRepo := repository.NewChatHistoryRepo(mongoDb)

		// init services
		chunker := service.NewChunkerService(types.ChunkingConfig{
			TargetSize: cfg.Chunking.TargetSize,
			Overlap:    cfg.Chunking.Overlap,
		})
		assembler := service.NewContextAssembler(cfg.Retrieval.MaxContextChars, cfg.Retrieval.HistoryTail)
		aiService := newAIService(cfg)
		studyService := service.NewStudyService(chunker, assembler, aiService, documentRepo, historyRepo, cfg.Retrieval.TopK)
		fileService := service.NewFileService(cfg.UploadDir, documentRepo, studyService)
		wsService := service.NewWebSocketService(studyService)

		// init handlers
		corsHandler := handler.NewCorsHandler()
		documentHandler := handler.NewDocumentHandler(fileService, documentRepo)
		retrieveHandler := handler.NewRetrieveHandler(studyService)
		chatHandler := handler.NewChatHandler(studyService)
		explainHandler := handler.NewExplainHandler(studyService)

		mux := http.NewServeMux()
		mux.Handle("POST /api/v1/documents", documentHandler.HandleUpload())
		mux.Handle("GET /api/v1/documents/{id}/chunks", documentHandler.HandleGetChunks())
		mux.Handle("POST /api/v1/retrieve", retrieveHandler.HandleRetrieve())
		mux.Handle("POST /api/v1/chat", chatHandler.HandleChat())
		mux.Handle("GET /api/v1/history", chatHandler.HandleHistory())
		mux.Handle("POST /api/v1/explain", explainHandler.HandleExplain())
		mux.Handle("POST /api/v1/summarize", explainHandler.HandleSummarize())
		mux.HandleFunc("GET /ws/chat", wsService.HandleChat)
		mux.Handle("GET /health", wsService.Health())

		log.Printf("Starting server on port %s...\n", cfg.Port)
		if err := http.ListenAndServe(":"+cfg.Port, corsHandler.Middleware(mux)); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

// newAIService picks the generation gateway implementation from config.
func newAIService(cfg *config.Config) service.AIService {
	switch cfg.AI.Provider {
	case "gemini":
		keys := strings.Split(cfg.GeminiAPIKeys, ",")
		gemini, err := service.NewGeminiService(keys, cfg.AI.Model)
		if err != nil {
			log.Fatalf("Failed to create Gemini service: %v", err)
		}
		return gemini
	default:
		return service.NewOpenAIService(cfg.AI.Endpoint, cfg.OpenAIAPIKey, cfg.AI.Model)
	}
}

func init() {
	rootCmd.AddCommand(startServerCmd)
	startServerCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
}
