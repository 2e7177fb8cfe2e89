// Package cmd wires the gen and schedule commands described in §6 ("CLI
// shape — reference, not part of the core").
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jgoldverg/green-transfer-scheduler/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "green-transfer-scheduler",
	Short: "Carbon-aware bulk data-transfer scheduling",
}

// Execute runs the CLI, exiting non-zero on any command error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML run config (§10.3); defaults are used for any field it omits")
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(scheduleCmd)
}

// loadRunConfig reads --config if given, otherwise returns config.Default().
func loadRunConfig() (config.RunConfig, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

func configureLogging(level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Fatalf("invalid log level %q", level)
	}
	logrus.SetLevel(parsed)
}
