// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the researchmate CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yuga-i2/Researchmate/internal/secrets"
	"github.com/yuga-i2/Researchmate/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
// Environment variables take precedence over file contents.
var loadedSecrets secrets.Store

// rootCmd is the base command for the researchmate CLI.
var rootCmd = &cobra.Command{
	Use:   "researchmate",
	Short: "Research paper retrieval and synthesis assistant",
	Long: `researchmate collects papers from arXiv and Semantic Scholar, embeds
their text, and stores the vectors locally for similarity search.

Each stage is a subcommand: ingest fetches and indexes papers for one or
more topics, query retrieves the closest stored papers for a question,
and summarize synthesizes an answer from the retrieved excerpts.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; absence is not an error.
		_ = godotenv.Load()

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./researchmate.yaml or ~/.config/researchmate/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("researchmate")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "researchmate"))
		}
	}

	viper.SetDefault("collect.max_results", 5)
	viper.SetDefault("collect.user_agent", "researchmate/0.1")
	viper.SetDefault("embedding.dimension", 768)
	viper.SetDefault("store.dir", "vectorstore")
	viper.SetDefault("papers.dir", filepath.Join("data", "papers"))
	viper.SetDefault("papers.requests_per_second", 1.0)
	viper.SetDefault("summary.max_retries", 3)

	viper.SetEnvPrefix("RESEARCHMATE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig assembles stage configuration from viper and secrets.
func pipelineConfig() types.PipelineConfig {
	userAgent := viper.GetString("collect.user_agent")
	geminiKey := loadedSecrets.Get("gemini-api-key")

	return types.PipelineConfig{
		Collect: types.CollectConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("collect.timeout"),
				UserAgent: userAgent,
			},
			MaxResults:             viper.GetInt("collect.max_results"),
			ArxivTimeout:           viper.GetDuration("collect.arxiv_timeout"),
			SemanticScholarTimeout: viper.GetDuration("collect.semantic_scholar_timeout"),
			SemanticScholarAPIKey:  loadedSecrets.Get("semantic-scholar-api-key"),
		},
		Embedding: types.EmbeddingConfig{
			Model:     viper.GetString("embedding.model"),
			Dimension: viper.GetInt("embedding.dimension"),
			APIKey:    geminiKey,
		},
		Store: types.StoreConfig{
			Dir:        viper.GetString("store.dir"),
			Collection: viper.GetString("store.collection"),
		},
		Papers: types.PapersConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   15 * time.Second,
				UserAgent: userAgent,
			},
			Dir:               viper.GetString("papers.dir"),
			RequestsPerSecond: viper.GetFloat64("papers.requests_per_second"),
		},
		Summary: types.SummaryConfig{
			Model:      viper.GetString("summary.model"),
			APIKey:     geminiKey,
			MaxRetries: viper.GetInt("summary.max_retries"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
