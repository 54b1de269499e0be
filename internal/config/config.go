package config

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/ledgerlens/ledgerlens/internal/home"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	appName        = "ledgerlens"
	defaultBaseURL = "http://localhost:8787"

	// DefaultPerPage is the page size used when none is configured.
	DefaultPerPage = 10

	// DefaultTimeout bounds a single backend request.
	DefaultTimeout = 15 * time.Second
)

// Environment variables that override the configuration files.
const (
	EnvAPIURL                   = "LEDGERLENS_API_URL"
	EnvToken                    = "LEDGERLENS_TOKEN"
	EnvDisableCatalogAutoUpdate = "LEDGERLENS_DISABLE_CATALOG_AUTO_UPDATE"
)

var projectConfigNames = []string{
	".ledgerlens.json",
	"ledgerlens.json",
}

// API configures the connection to the core banking backend.
type API struct {
	BaseURL string `json:"base_url,omitempty" jsonschema:"description=Base URL of the compliance backend,format=uri,default=http://localhost:8787,example=https://compliance.example.com"`
	Token   string `json:"token,omitempty" jsonschema:"description=Bearer token sent with every request. Supports $VAR references,example=$LEDGERLENS_TOKEN"`
}

// Options holds dashboard preferences.
type Options struct {
	Debug                    bool   `json:"debug,omitempty" jsonschema:"description=Enable debug logging,default=false"`
	PerPage                  int    `json:"per_page,omitempty" jsonschema:"description=Rows or cards per page. 0 uses the default,minimum=0,default=10"`
	RequestTimeout           int    `json:"request_timeout,omitempty" jsonschema:"description=Request timeout in seconds. 0 uses the default,minimum=0,default=15"`
	DataDirectory            string `json:"data_directory,omitempty" jsonschema:"description=Directory for logs and cached reference data"`
	DisableCatalogAutoUpdate bool   `json:"disable_catalog_auto_update,omitempty" jsonschema:"description=Use the cached or bundled reference catalog without asking the backend,default=false"`
}

// Config is the merged configuration of the dashboard.
type Config struct {
	Schema  string   `json:"$schema,omitempty"`
	API     *API     `json:"api,omitempty" jsonschema:"description=Backend connection"`
	Options *Options `json:"options,omitempty" jsonschema:"description=Dashboard options"`

	workingDir string
	dataConfig string
}

var instance atomic.Pointer[Config]

// Init loads the configuration and makes it available through [Get].
func Init(workingDir, dataDir string, debug bool) (*Config, error) {
	cfg, err := Load(workingDir, dataDir, debug)
	if err != nil {
		return nil, err
	}
	instance.Store(cfg)
	return cfg, nil
}

// Get returns the configuration loaded by [Init]. It returns defaults when
// Init was not called.
func Get() *Config {
	if cfg := instance.Load(); cfg != nil {
		return cfg
	}
	cfg := &Config{}
	cfg.setDefaults("", "")
	return cfg
}

// WorkingDir returns the directory the configuration was loaded for.
func (c *Config) WorkingDir() string {
	return c.workingDir
}

// PerPage returns the configured page size, or [DefaultPerPage] when unset.
func (c *Config) PerPage() int {
	if c == nil || c.Options == nil || c.Options.PerPage == 0 {
		return DefaultPerPage
	}
	return c.Options.PerPage
}

// Timeout returns the configured request timeout.
func (c *Config) Timeout() time.Duration {
	if c == nil || c.Options == nil || c.Options.RequestTimeout <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.Options.RequestTimeout) * time.Second
}

// DataDir returns the directory for logs and caches.
func (c *Config) DataDir() string {
	if c == nil || c.Options == nil || c.Options.DataDirectory == "" {
		return filepath.Dir(GlobalConfigData())
	}
	return c.Options.DataDirectory
}

// LogFile returns the path of the dashboard log.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir(), "logs", appName+".log")
}

// ConfigFile returns the writable configuration file.
func (c *Config) ConfigFile() string {
	return cmp.Or(c.dataConfig, GlobalConfigData())
}

// SetConfigField writes value at the dotted key path of the writable
// configuration file, creating it when missing.
func (c *Config) SetConfigField(key string, value any) error {
	path := c.ConfigFile()
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		data = []byte("{}")
	}

	updated, err := sjson.SetBytes(data, key, value)
	if err != nil {
		return fmt.Errorf("failed to set config field %s: %w", key, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory %q: %w", path, err)
	}
	if err := os.WriteFile(path, updated, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// RemoveConfigField deletes the dotted key path from the writable
// configuration file.
func (c *Config) RemoveConfigField(key string) error {
	path := c.ConfigFile()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	updated, err := sjson.DeleteBytes(data, key)
	if err != nil {
		return fmt.Errorf("failed to delete config field %s: %w", key, err)
	}
	if err := os.WriteFile(path, updated, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GetConfigField reads the dotted key path from the writable configuration
// file. It returns an empty string when the file or the key is missing.
func (c *Config) GetConfigField(key string) string {
	data, err := os.ReadFile(c.ConfigFile())
	if err != nil {
		return ""
	}
	return gjson.GetBytes(data, key).String()
}

// GlobalConfig returns the user configuration file.
func GlobalConfig() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, appName+".json")
	}
	if runtime.GOOS == "windows" {
		return filepath.Join(localAppData(), appName, appName+".json")
	}
	return filepath.Join(home.Dir(), ".config", appName, appName+".json")
}

// GlobalConfigData returns the configuration file written by commands such
// as login.
func GlobalConfigData() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, appName+".json")
	}
	if runtime.GOOS == "windows" {
		return filepath.Join(localAppData(), appName, appName+".json")
	}
	return filepath.Join(home.Dir(), ".local", "share", appName, appName+".json")
}

func localAppData() string {
	return cmp.Or(
		os.Getenv("LOCALAPPDATA"),
		filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local"),
	)
}
