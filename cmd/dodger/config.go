package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/drone-dodger/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Load the configuration the other commands would use, apply flag
overrides, validate it and print it as YAML.

Examples:
  dodger config
  dodger config --config ./my-dodger.yaml --seed 42`,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
