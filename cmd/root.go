// Package cmd contains the CLI entry points for the agent API service.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "strands-agent",
	Short: "HTTP API for a tool-using conversational agent",
	Long: `strands-agent exposes a Genkit-backed conversational agent over a small
REST surface and an OpenAI-compatible chat endpoint.

Running without a subcommand starts the HTTP server.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
