/*
Copyright © 2025 adityapawar327
*/
package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/adityapawar327/ongc-assistant-be/config"
	"github.com/adityapawar327/ongc-assistant-be/service"
)

// ingestDocumentCmd represents the ingest command
var ingestDocumentCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Index documents from the command line",
	Long: `Extracts, chunks and indexes one or more documents into the
configured vector store without going through the HTTP API.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		store, err := newVectorStore(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize vector store: %v", err)
		}

		chunker := service.NewChunker(cfg.Chunking)
		extractor := service.NewDocumentExtractor()
		fileService := service.NewFileService(cfg.UploadDir, extractor, chunker, store)

		total := 0
		for _, path := range args {
			added, err := fileService.IngestFile(context.Background(), path)
			if err != nil {
				log.Printf("Failed to ingest %s: %v", path, err)
				continue
			}
			log.Printf("Ingested %s: %d chunk(s)", path, added)
			total += added
		}
		log.Printf("Done, %d chunk(s) added", total)
	},
}

func init() {
	rootCmd.AddCommand(ingestDocumentCmd)
}
