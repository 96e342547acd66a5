package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"rglregistrations/internal/adapters/auth"
	"rglregistrations/internal/domain"
)

func envLines(t *testing.T, out string) map[string]string {
	t.Helper()
	vals := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		k, v, ok := strings.Cut(line, "=")
		require.True(t, ok, "line %q", line)
		vals[k] = v
	}
	return vals
}

func TestHashPassword(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader("s3cret pass\n"))
	rootCmd.SetArgs([]string{"hash-password", "--cost", "4", " Organiser@Example.com "})
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		hashPasswordCost = 0
	})

	require.NoError(t, rootCmd.Execute())

	vals := envLines(t, out.String())
	require.Equal(t, "organiser@example.com", vals["ADMIN_EMAIL"])
	require.NotEmpty(t, vals["ADMIN_PASSWORD_SALT"])
	cost, err := bcrypt.Cost([]byte(vals["ADMIN_PASSWORD_HASH"]))
	require.NoError(t, err)
	require.Equal(t, 4, cost)

	hasher := auth.NewBcryptHasher(4)
	require.NoError(t, hasher.Compare(vals["ADMIN_PASSWORD_HASH"], vals["ADMIN_PASSWORD_SALT"], "s3cret pass"))
	require.Error(t, hasher.Compare(vals["ADMIN_PASSWORD_HASH"], vals["ADMIN_PASSWORD_SALT"], "s3cret"))
}

func TestHashPassword_EmptyPassword(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader("\n"))
	rootCmd.SetArgs([]string{"hash-password", "organiser@example.com"})
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	require.ErrorContains(t, rootCmd.Execute(), "password is required")
}

func TestIssueToken(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("JWT_SECRET", "cmd-test-secret")
	t.Setenv("ADMIN_EMAIL", "organiser@example.com")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"issue-token", "--expiry", "5m"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		issueTokenExpiry = time.Hour
	})

	require.NoError(t, rootCmd.Execute())

	subject, err := auth.NewJWTVerifier("cmd-test-secret", domain.RoleAdmin).Verify(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	require.Equal(t, "organiser@example.com", subject)
}

func TestIssueToken_RequiresAdminEmail(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("ADMIN_EMAIL", "")

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"issue-token"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	require.ErrorContains(t, rootCmd.Execute(), "ADMIN_EMAIL is not set")
}

func TestMigrateDown_RejectsNonPositiveSteps(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"migrate", "down", "--steps", "0"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		migrateSteps = 1
	})

	require.ErrorContains(t, rootCmd.Execute(), "--steps must be at least 1")
}
