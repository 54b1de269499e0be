package config

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/qjebbs/go-jsons"
)

// Load reads and merges the configuration files for workingDir. Later files
// win: the global config, the data config written by login, then the
// project config. dataDir, when set, replaces the data directory.
func Load(workingDir, dataDir string, debug bool) (*Config, error) {
	dataConfig := GlobalConfigData()
	if dataDir != "" {
		dataConfig = filepath.Join(dataDir, appName+".json")
	}

	paths := []string{GlobalConfig(), dataConfig}
	for _, name := range projectConfigNames {
		paths = append(paths, filepath.Join(workingDir, name))
	}

	cfg, err := loadFromConfigPaths(paths)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.dataConfig = dataConfig
	cfg.setDefaults(workingDir, dataDir)
	if debug {
		cfg.Options.Debug = true
	}

	env, err := loadEnv(workingDir)
	if err != nil {
		return nil, err
	}
	if err := cfg.resolve(env); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFromConfigPaths(paths []string) (*Config, error) {
	var readers []io.Reader
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if len(bytes.TrimSpace(data)) == 0 {
			continue
		}
		readers = append(readers, bytes.NewReader(data))
	}
	return loadFromReaders(readers)
}

func loadFromReaders(readers []io.Reader) (*Config, error) {
	if len(readers) == 0 {
		return &Config{}, nil
	}
	merged, err := jsons.Merge(readers)
	if err != nil {
		return nil, fmt.Errorf("failed to merge config files: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(merged, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) setDefaults(workingDir, dataDir string) {
	c.workingDir = workingDir
	if c.API == nil {
		c.API = &API{}
	}
	if c.Options == nil {
		c.Options = &Options{}
	}
	if dataDir != "" {
		c.Options.DataDirectory = dataDir
	}
	if c.Options.DataDirectory == "" {
		c.Options.DataDirectory = filepath.Dir(GlobalConfigData())
	}
	c.API.BaseURL = cmp.Or(c.API.BaseURL, defaultBaseURL)
}

// environment looks variables up in the process environment first and in
// the .env file second.
type environment struct {
	dotenv map[string]string
}

func loadEnv(workingDir string) (environment, error) {
	values, err := godotenv.Read(filepath.Join(workingDir, ".env"))
	if errors.Is(err, os.ErrNotExist) {
		return environment{}, nil
	}
	if err != nil {
		return environment{}, fmt.Errorf("failed to read .env: %w", err)
	}
	return environment{dotenv: values}, nil
}

func (e environment) Get(key string) (string, bool) {
	if v, ok := os.LookupEnv(key); ok {
		return v, true
	}
	v, ok := e.dotenv[key]
	return v, ok
}

// expand replaces $VAR and ${VAR} references. Unset variables are an error.
func (e environment) expand(field, value string) (string, error) {
	var missing []string
	out := os.Expand(value, func(name string) string {
		v, ok := e.Get(name)
		if !ok {
			missing = append(missing, name)
		}
		return v
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("%s references unset variable $%s", field, strings.Join(missing, ", $"))
	}
	return out, nil
}

func (c *Config) resolve(env environment) error {
	if v, ok := env.Get(EnvAPIURL); ok && v != "" {
		c.API.BaseURL = v
	}
	if v, ok := env.Get(EnvToken); ok && v != "" {
		c.API.Token = v
	}
	if v, ok := env.Get(EnvDisableCatalogAutoUpdate); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Options.DisableCatalogAutoUpdate = b
		}
	}

	var err error
	if c.API.BaseURL, err = env.expand("api.base_url", c.API.BaseURL); err != nil {
		return err
	}
	if c.API.Token, err = env.expand("api.token", c.API.Token); err != nil {
		slog.Warn("Could not resolve API token", "error", err)
		c.API.Token = ""
	}
	return nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api.base_url %q: must be an http or https URL", c.API.BaseURL)
	}
	if c.Options.PerPage < 0 {
		return fmt.Errorf("invalid options.per_page %d: must not be negative", c.Options.PerPage)
	}
	if c.Options.RequestTimeout < 0 {
		return fmt.Errorf("invalid options.request_timeout %d: must not be negative", c.Options.RequestTimeout)
	}
	return nil
}
