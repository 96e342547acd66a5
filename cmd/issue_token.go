package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"rglregistrations/config"
	"rglregistrations/internal/adapters/auth"
	"rglregistrations/internal/domain"
)

var issueTokenExpiry time.Duration

var issueTokenCmd = &cobra.Command{
	Use:   "issue-token",
	Short: "Print an organiser bearer token",
	Long: `Sign an organiser token with JWT_SECRET for ADMIN_EMAIL without going through
POST /auth/login. Useful for scripts and smoke tests.

Example:
  curl -H "Authorization: Bearer $(rgl issue-token --expiry 10m)" localhost:8080/admin/registrations`,
	RunE: runIssueToken,
}

func init() {
	rootCmd.AddCommand(issueTokenCmd)

	issueTokenCmd.Flags().DurationVar(&issueTokenExpiry, "expiry", time.Hour, "token lifetime")
}

func runIssueToken(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.AdminEmail == "" {
		return errors.New("ADMIN_EMAIL is not set")
	}
	if issueTokenExpiry <= 0 {
		return fmt.Errorf("--expiry must be positive, got %s", issueTokenExpiry)
	}

	token, err := auth.NewJWTIssuer(cfg.JWTSecret).Issue(cfg.AdminEmail, cfg.AdminEmail, []string{domain.RoleAdmin}, issueTokenExpiry)
	if err != nil {
		return fmt.Errorf("signing token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
