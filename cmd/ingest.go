/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tieubaoca/docstudy-be/config"
	"github.com/tieubaoca/docstudy-be/database"
	"github.com/tieubaoca/docstudy-be/repository"
	"github.com/tieubaoca/docstudy-be/service"
	"github.com/tieubaoca/docstudy-be/types"
	"github.com/tieubaoca/docstudy-be/utils"
)

// ingestCmd ingests an extracted-text file into a document from the
// command line, without going through the upload endpoint.
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest a text file as a study document",
	Long: `Reads an extracted-text file (.txt or .md), creates a document and
builds its chunks. With --dry-run the chunks are printed instead of
persisted, which is useful for tuning chunk size and overlap.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfgPath, _ := cmd.Flags().GetString("config")
		filePath, _ := cmd.Flags().GetString("file")
		title, _ := cmd.Flags().GetString("title")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		if filePath == "" {
			log.Fatal("--file is required")
		}
		ext := strings.ToLower(filepath.Ext(filePath))
		if ext != ".txt" && ext != ".md" {
			log.Fatalf("Unsupported file type %s, expected .txt or .md", ext)
		}

		cfg, err := config.LoadConfig(cfgPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		data, err := os.ReadFile(filePath)
		if err != nil {
			log.Fatalf("Failed to read file: %v", err)
		}
		if title == "" {
			title = strings.TrimSuffix(filepath.Base(filePath), ext)
		}

		chunker := service.NewChunkerService(types.ChunkingConfig{
			TargetSize: cfg.Chunking.TargetSize,
			Overlap:    cfg.Chunking.Overlap,
		})

		if dryRun {
			chunks := chunker.ChunkText(string(data))
			fmt.Printf("%q would produce %d chunks:\n", title, len(chunks))
			for _, ch := range chunks {
				fmt.Printf("  [%d] %d..%d (%d chars)\n", ch.Index, ch.StartOffset, ch.EndOffset, len(ch.Content))
			}
			return
		}

		mongoClient, err := database.NewMongoClient(cfg.MongoURI)
		if err != nil {
			log.Fatalf("Failed to create MongoDB client: %v", err)
		}
		if err := mongoClient.Ping(context.Background(), nil); err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		mongoDb := mongoClient.Database(cfg.MongoDatabase)

		documentRepo := repository.NewDocumentRepo(mongoDb.Collection("documents"))
		historyRepo := repository.NewChatHistoryRepo(mongoDb)
		assembler := service.NewContextAssembler(cfg.Retrieval.MaxContextChars, cfg.Retrieval.HistoryTail)
		// The generation gateway is never called during ingestion.
		studyService := service.NewStudyService(chunker, assembler, nil, documentRepo, historyRepo, cfg.Retrieval.TopK)
		fileService := service.NewFileService(cfg.UploadDir, documentRepo, studyService)

		archived, err := utils.ArchiveFile(filePath, cfg.UploadDir)
		if err != nil {
			log.Fatalf("Failed to archive file: %v", err)
		}

		resp, err := fileService.IngestText(context.Background(), title, filePath, string(data))
		if err != nil {
			log.Fatalf("Failed to ingest document: %v", err)
		}
		fmt.Printf("Ingested document %s (%q) with %d chunks, archived at %s\n",
			resp.DocumentID, resp.Title, resp.ChunkCount, archived)
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringP("file", "f", "", "Path to the extracted-text file")
	ingestCmd.Flags().StringP("title", "t", "", "Document title (defaults to the file name)")
	ingestCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
	ingestCmd.Flags().Bool("dry-run", false, "Print chunk boundaries without persisting")
}
