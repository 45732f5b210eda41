package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	root := &cobra.Command{
		Use:   "certificados",
		Short: "Certificate OCR extraction and filing service",
		Long: "certificados ingests scanned certificate documents (PDF, JPEG, PNG or ZIP\n" +
			"bundles), extracts holder data via OCR and pattern matching, and files each\n" +
			"document into a level-based folder hierarchy.",
		SilenceUsage: true,
	}

	root.AddCommand(newServeCommand(), newProcessCommand(), newVersionCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("certificados %s\n", Version)
			fmt.Printf("Commit: %s\n", Commit)
			fmt.Printf("Build Date: %s\n", BuildDate)
		},
	}
}
