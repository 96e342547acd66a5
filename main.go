// Package main is the entry point for the rgl registrations service.
//
//	@title						Rails Girls London registrations API
//	@version					1.0
//	@description				Workshop applications, selection, invitations, RSVPs and feedback.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"fmt"
	"os"

	"rglregistrations/cmd"
	_ "rglregistrations/docs"
)

// Build information injected via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersion(fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date))
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
