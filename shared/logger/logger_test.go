package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePathExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ResolvePath("~/.aws-inventory/vpc.log")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".aws-inventory", "vpc.log"), got)

	got, err = ResolvePath("/tmp/x/../run.log")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/run.log", got)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, lvl)

	lvl, err = ParseLevel(" DEBUG ")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, lvl)

	_, err = ParseLevel("chatty")
	require.Error(t, err)
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "rds.log")

	log, closer, err := New(path, "warn")
	require.NoError(t, err)
	log.Info().Msg("dropped")
	log.Warn().Str("region", "us-east-1").Msg("kept")
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(b), "\n"))
	assert.Contains(t, string(b), `"region":"us-east-1"`)
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "~/.aws-inventory/vpc.log", DefaultPath("vpc"))
}
