package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rglregistrations/internal/adapters/auth"
)

var hashPasswordCost int

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <email>",
	Short: "Generate organiser credentials",
	Long: `Read a password from stdin and print the environment lines for the organiser
account: ADMIN_EMAIL, ADMIN_PASSWORD_SALT and ADMIN_PASSWORD_HASH.

Example:
  echo 'correct horse' | rgl hash-password organiser@railsgirls.london >> .env`,
	Args: cobra.ExactArgs(1),
	RunE: runHashPassword,
}

func init() {
	rootCmd.AddCommand(hashPasswordCmd)

	hashPasswordCmd.Flags().IntVar(&hashPasswordCost, "cost", 0, "bcrypt cost (0 uses the default)")
}

func runHashPassword(cmd *cobra.Command, args []string) error {
	email := strings.ToLower(strings.TrimSpace(args[0]))
	if email == "" {
		return errors.New("email is required")
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("reading password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return errors.New("password is required")
	}

	creds, err := auth.NewCredentials(auth.NewBcryptHasher(hashPasswordCost), email, password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ADMIN_EMAIL=%s\n", creds.Email)
	fmt.Fprintf(out, "ADMIN_PASSWORD_SALT=%s\n", creds.PasswordSalt)
	fmt.Fprintf(out, "ADMIN_PASSWORD_HASH=%s\n", creds.PasswordHash)
	return nil
}
