package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inmohub/listings/shared/utils"
)

// clearEnv unsets keys for the test and restores them afterwards, so values
// loaded from an env file do not leak into other tests.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeEnvFile(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600))
	return path
}

func TestEnvFileFlagReachesEverySubcommand(t *testing.T) {
	for _, name := range []string{"serve", "migrate", "token"} {
		t.Run(name, func(t *testing.T) {
			root, envFile := buildRootCommand()
			cmd, _, err := root.Find([]string{name})
			require.NoError(t, err)
			require.Equal(t, name, cmd.Name())

			require.NoError(t, cmd.ParseFlags([]string{"--env-file", "custom.env"}))
			assert.Equal(t, "custom.env", envFile.GetString())
		})
	}
}

func TestEnvFileFlagDefault(t *testing.T) {
	root, envFile := buildRootCommand()
	cmd, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	require.NoError(t, cmd.ParseFlags(nil))

	assert.Equal(t, ".env", envFile.GetString())
}

func TestTokenLoadsSecretFromEnvFile(t *testing.T) {
	clearEnv(t, "AUTH_JWT_SECRET", "AUTH_JWT_ISSUER")
	path := writeEnvFile(t, "AUTH_JWT_SECRET=file-secret", "AUTH_JWT_ISSUER=file-idp")

	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"token", "--env-file", path, "--subject", "ext-agent", "--email", "agent@example.com"})
	require.NoError(t, root.Execute())

	identity, err := utils.ParseJWT(strings.TrimSpace(out.String()), []byte("file-secret"), "file-idp")
	require.NoError(t, err)
	assert.Equal(t, "ext-agent", identity.ExternalID)
	assert.Equal(t, "agent@example.com", identity.Email)
}

func TestMigrateLoadsDatabaseFromEnvFile(t *testing.T) {
	clearEnv(t, "DB_DRIVER", "DATABASE_URL")
	dbPath := filepath.Join(t.TempDir(), "listings.db")
	path := writeEnvFile(t, "DB_DRIVER=sqlite", "DATABASE_URL="+dbPath)

	root := newRootCommand()
	root.SetArgs([]string{"migrate", "--env-file", path})
	require.NoError(t, root.Execute())

	assert.FileExists(t, dbPath)
}
