package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/venek/scenery/internal/dataset"
)

var outDir string

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "export every scene as a standalone SVG file",
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, scenes, _, err := loadSetup()
	if err != nil {
		return err
	}
	ds, err := dataset.Load(cmd.Context(), cfg.Data.Source)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	for i, sc := range scenes {
		view, err := sc.Build(ds)
		if err != nil {
			return fmt.Errorf("scene %d: %w", i, err)
		}
		file := filepath.Join(outDir, fmt.Sprintf("scene-%d.svg", i+1))
		if err := os.WriteFile(file, view.SVG, 0o644); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), file)
	}
	return nil
}
