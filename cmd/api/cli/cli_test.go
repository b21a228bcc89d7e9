package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedCommand(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite:///"+filepath.Join(t.TempDir(), "wallet.db"))
	t.Setenv("LOG_LEVEL", "error")

	run := func() string {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"seed", "--config", t.TempDir()})
		require.NoError(t, rootCmd.Execute())
		return out.String()
	}

	assert.Equal(t, "inserted 3 users\n", run())
	assert.Equal(t, "inserted 0 users\n", run())
}

func TestSeedCommand_InvalidDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "mysql://localhost/wallet")
	t.Setenv("LOG_LEVEL", "error")

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"seed"})
	assert.Error(t, rootCmd.Execute())
}
