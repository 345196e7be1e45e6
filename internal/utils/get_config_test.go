package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigEnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	yamlBody := "DB_HOST: yaml-host\nDB_NAME: pantry\nEXTERNAL_TIMEOUT_SECONDS: 3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yamlBody), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("DB_HOST", "env-host")
	config = Config{}
	LoadConfig()

	assert.Equal(t, "env-host", GetConfig("DB_HOST"))
	assert.Equal(t, "pantry", GetConfig("DB_NAME"))
	assert.Equal(t, 3*time.Second, ExternalTimeout())
}

func TestLoadConfigDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	config = Config{}
	LoadConfig()

	assert.Equal(t, "jwt", GetConfig("AUTH_PROVIDER"))
	assert.Equal(t, "expo", GetConfig("PUSH_PROVIDER"))
	assert.Equal(t, 10*time.Second, ExternalTimeout())
	assert.Equal(t, 24*time.Hour, SweepInterval())
	assert.Equal(t, 24*time.Hour, ShelfLifeCacheTTL())
	assert.Equal(t, "", GetConfig("UNKNOWN_KEY"))
}
