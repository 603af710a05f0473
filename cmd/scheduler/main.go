package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/squad-scheduler/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfg     config.Config
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Compose WhatsApp scheduling messages for league matches",
	Long: `Keeps the roster of opponents, the host's weekly availability and
composes the scheduling message sent to an opponent over WhatsApp.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
		cfg = config.Load()
		return cfg.Validate()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
