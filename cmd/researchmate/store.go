// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yuga-i2/Researchmate/internal/vectorstore"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Inspect and export the local vector store",
}

var storeInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show collection name and document count",
	RunE:  runStoreInfo,
}

func runStoreInfo(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()

	store, err := vectorstore.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	count, err := store.Count(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("directory:  %s\n", cfg.Store.Dir)
	fmt.Printf("collection: %s\n", store.Collection())
	fmt.Printf("documents:  %d\n", count)
	return nil
}

var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored documents to YAML or JSON",
	RunE:  runStoreExport,
}

func runStoreExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")

	cfg := pipelineConfig()

	store, err := vectorstore.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	switch format {
	case "yaml", "":
		if outPath == "" {
			outPath = filepath.Join(cfg.Store.Dir, "export.yaml")
		}
		if err := store.ExportYAML(ctx, outPath); err != nil {
			return err
		}
	case "json":
		if outPath == "" {
			outPath = filepath.Join(cfg.Store.Dir, "export.json")
		}
		if err := store.ExportJSON(ctx, outPath); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	fmt.Println("Exported to", outPath)
	return nil
}

func init() {
	storeExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	storeExportCmd.Flags().String("out", "", "output path (default: <store-dir>/export.<format>)")

	storeCmd.AddCommand(storeInfoCmd)
	storeCmd.AddCommand(storeExportCmd)

	rootCmd.AddCommand(storeCmd)
}
