// Command scenery serves a four-scene data story about urbanization,
// energy consumption and CO2 emissions, or exports the scenes as SVG.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/venek/scenery/chart"
	"github.com/venek/scenery/internal/config"
	"github.com/venek/scenery/internal/dataset"
	"github.com/venek/scenery/internal/scene"
)

var (
	configPath string
	version    = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "scenery",
	Short:   "scene-driven charts over a yearly global trends dataset",
	Version: version,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadSetup() (config.Config, []scene.Scene, dataset.Metric, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, nil, "", err
	}
	metric, err := dataset.ParseMetric(cfg.Data.Metric)
	if err != nil {
		return cfg, nil, "", err
	}
	geom := scene.Geometry{
		Width:  cfg.Chart.Width,
		Height: cfg.Chart.Height,
		Pad: chart.Padding{
			Top:    cfg.Chart.Padding.Top,
			Right:  cfg.Chart.Padding.Right,
			Bottom: cfg.Chart.Padding.Bottom,
			Left:   cfg.Chart.Padding.Left,
		},
	}
	return cfg, scene.Sequence(geom, metric), metric, nil
}
