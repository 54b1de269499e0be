package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// isolate points every config location at temporary directories.
func isolate(t *testing.T) (workingDir string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvToken, "")
	return t.TempDir()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	wd := isolate(t)

	cfg, err := Load(wd, "", false)
	require.NoError(t, err)
	require.Equal(t, defaultBaseURL, cfg.API.BaseURL)
	require.Empty(t, cfg.API.Token)
	require.Equal(t, DefaultPerPage, cfg.PerPage())
	require.Equal(t, DefaultTimeout, cfg.Timeout())
	require.False(t, cfg.Options.Debug)
	require.Equal(t, filepath.Dir(GlobalConfigData()), cfg.DataDir())
	require.Equal(t, wd, cfg.WorkingDir())
}

func TestLoadMergesInOrder(t *testing.T) {
	wd := isolate(t)

	writeFile(t, GlobalConfig(), `{"api":{"base_url":"https://global.example.com"},"options":{"per_page":25,"request_timeout":30}}`)
	writeFile(t, GlobalConfigData(), `{"api":{"token":"from-login"}}`)
	writeFile(t, filepath.Join(wd, ".ledgerlens.json"), `{"api":{"base_url":"https://project.example.com"}}`)

	cfg, err := Load(wd, "", true)
	require.NoError(t, err)
	require.Equal(t, "https://project.example.com", cfg.API.BaseURL)
	require.Equal(t, "from-login", cfg.API.Token)
	require.Equal(t, 25, cfg.PerPage())
	require.Equal(t, 30*time.Second, cfg.Timeout())
	require.True(t, cfg.Options.Debug)
}

func TestLoadEnvironment(t *testing.T) {
	wd := isolate(t)

	writeFile(t, filepath.Join(wd, ".env"), "BANK_TOKEN=dotenv-secret\n")
	writeFile(t, filepath.Join(wd, "ledgerlens.json"), `{"api":{"token":"$BANK_TOKEN"}}`)

	cfg, err := Load(wd, "", false)
	require.NoError(t, err)
	require.Equal(t, "dotenv-secret", cfg.API.Token)

	t.Setenv("BANK_TOKEN", "process-secret")
	t.Setenv(EnvAPIURL, "https://override.example.com")
	cfg, err = Load(wd, "", false)
	require.NoError(t, err)
	require.Equal(t, "process-secret", cfg.API.Token, "process environment wins over .env")
	require.Equal(t, "https://override.example.com", cfg.API.BaseURL)

	t.Setenv(EnvToken, "direct")
	cfg, err = Load(wd, "", false)
	require.NoError(t, err)
	require.Equal(t, "direct", cfg.API.Token)
}

func TestLoadUnsetTokenVariable(t *testing.T) {
	wd := isolate(t)

	writeFile(t, filepath.Join(wd, ".ledgerlens.json"), `{"api":{"token":"${LEDGERLENS_TEST_MISSING}"}}`)
	cfg, err := Load(wd, "", false)
	require.NoError(t, err)
	require.Empty(t, cfg.API.Token)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"base url":  `{"api":{"base_url":"ftp://nope"}}`,
		"per page":  `{"options":{"per_page":-1}}`,
		"timeout":   `{"options":{"request_timeout":-5}}`,
		"malformed": `{"api":`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			wd := isolate(t)
			writeFile(t, filepath.Join(wd, ".ledgerlens.json"), content)
			_, err := Load(wd, "", false)
			require.Error(t, err)
		})
	}
}

func TestPerPage(t *testing.T) {
	t.Parallel()

	var nilCfg *Config
	require.Equal(t, DefaultPerPage, nilCfg.PerPage())
	require.Equal(t, DefaultPerPage, (&Config{Options: &Options{}}).PerPage())
	require.Equal(t, 3, (&Config{Options: &Options{PerPage: 3}}).PerPage())
}

func TestConfigFields(t *testing.T) {
	wd := isolate(t)
	dataDir := t.TempDir()

	cfg, err := Load(wd, dataDir, false)
	require.NoError(t, err)
	require.Equal(t, dataDir, cfg.DataDir())
	require.Equal(t, filepath.Join(dataDir, "ledgerlens.json"), cfg.ConfigFile())
	require.Equal(t, filepath.Join(dataDir, "logs", "ledgerlens.log"), cfg.LogFile())

	require.Empty(t, cfg.GetConfigField("api.token"))
	require.NoError(t, cfg.SetConfigField("api.token", "t-123"))
	require.NoError(t, cfg.SetConfigField("options.per_page", 20))
	require.Equal(t, "t-123", cfg.GetConfigField("api.token"))
	require.Equal(t, "20", cfg.GetConfigField("options.per_page"))

	reloaded, err := Load(wd, dataDir, false)
	require.NoError(t, err)
	require.Equal(t, "t-123", reloaded.API.Token)
	require.Equal(t, 20, reloaded.PerPage())

	require.NoError(t, cfg.RemoveConfigField("api.token"))
	require.Empty(t, cfg.GetConfigField("api.token"))
	require.Equal(t, "20", cfg.GetConfigField("options.per_page"))
}

func TestInitAndGet(t *testing.T) {
	wd := isolate(t)
	writeFile(t, filepath.Join(wd, ".ledgerlens.json"), `{"options":{"per_page":7}}`)

	cfg, err := Init(wd, "", false)
	require.NoError(t, err)
	require.Same(t, cfg, Get())
	require.Equal(t, 7, Get().PerPage())
}

func TestSchema(t *testing.T) {
	t.Parallel()

	data, err := Schema()
	require.NoError(t, err)
	require.Contains(t, string(data), `"base_url"`)
	require.Contains(t, string(data), `"per_page"`)
	require.Contains(t, string(data), SchemaURL)
}
