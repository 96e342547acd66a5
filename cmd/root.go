// Package cmd implements the rgl command line.
package cmd

import (
	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "rgl",
	Short: "Rails Girls London registrations",
	Long: `rgl runs the registrations API for Rails Girls London workshops: applications,
selection, invitations, RSVPs and feedback, plus the organiser tooling around it.`,
	Version:      version,
	SilenceUsage: true,
}

// SetVersion sets the version reported by --version.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
