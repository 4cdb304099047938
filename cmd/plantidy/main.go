package main

import (
	"fmt"
	"os"

	"github.com/piwi3910/PlanTidy/internal/project"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	logFormat  string
	backupPath string
)

var rootCmd = &cobra.Command{
	Use:   "plantidy",
	Short: "Clean up architectural CAD drawings",
	Long: `plantidy tidies DXF plan drawings before printing. It joins loose curve
ends, flags redundant overlapping lines, groups similar furniture blocks,
sorts objects onto standard layers and adds a scaled print frame with legends.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", project.DefaultConfigPath(), "configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&backupPath, "backup", "", "write a compressed backup of the configuration and result drawing")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
