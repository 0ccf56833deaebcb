package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ivsite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join([]string{
		"name: IVS",
		"url: https://ivs.example",
		"analytics_enabled: false",
		"thumb_cache_ttl: 90s",
		"retention_days: 30",
	}, "\n")), 0o644))

	t.Setenv("SITE_URL", "https://override.example")
	t.Setenv("ADMIN_PASSWORD", "secret")

	cfgFile = path
	t.Cleanup(func() { cfgFile = "" })
	require.NoError(t, loadConfig())

	require.Equal(t, "IVS", siteCfg.Name)
	require.Equal(t, "https://override.example", siteCfg.URL)
	require.Equal(t, "secret", siteCfg.AdminPassword)
	require.False(t, siteCfg.AnalyticsEnabled)
	require.Equal(t, 90*time.Second, siteCfg.ThumbCacheTTL)
	require.Equal(t, 30, siteCfg.RetentionDays)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	cfgFile = filepath.Join(t.TempDir(), "missing.yaml")
	t.Cleanup(func() { cfgFile = "" })
	require.Error(t, loadConfig())
}

func TestPostsCommandListsCatalog(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"posts"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 7)
	require.True(t, strings.HasPrefix(lines[0], "ID"))
	require.Contains(t, out.String(), "Cybersecurity Best Practices for Remote Learning")
}
