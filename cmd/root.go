/*
Copyright © 2025 adityapawar327
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ongc-assistant-be",
	Short: "Document question answering backend",
	Long: `Backend for the ONGC document assistant. Uploaded documents are
chunked and indexed into a vector store, and questions are answered
from the retrieved passages by a Gemini or OpenAI model.

Run "start" to serve the HTTP and WebSocket API, or "ingest" to index
documents from the command line.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config/config.yaml", "config file")
}
