package config

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/x/etag"
	"github.com/ledgerlens/ledgerlens/internal/api"
	"github.com/ledgerlens/ledgerlens/internal/bank"
	"github.com/ledgerlens/ledgerlens/internal/csync"
)

//go:embed catalog.json
var embeddedCatalog []byte

type CatalogClient interface {
	Reference(ctx context.Context, tag string) (bank.Catalog, string, error)
}

var (
	catalogOnce  sync.Once
	catalogValue bank.Catalog
	catalogErr   error
)

// EmbeddedCatalog returns the reference catalog bundled with the binary.
func EmbeddedCatalog() bank.Catalog {
	var c bank.Catalog
	if err := json.Unmarshal(embeddedCatalog, &c); err != nil {
		panic(fmt.Sprintf("invalid embedded catalog: %v", err))
	}
	return c
}

// file to cache catalog data
func catalogCacheFile(cfg *Config) string {
	return filepath.Join(cfg.DataDir(), "catalog.json")
}

func saveCatalogInCache(path string, catalog bank.Catalog) error {
	slog.Info("Saving catalog to disk", "path", path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for catalog cache: %w", err)
	}

	data, err := json.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write catalog to cache: %w", err)
	}
	return nil
}

func loadCatalogFromCache(path string) (bank.Catalog, string, error) {
	var catalog bank.Catalog
	data, err := os.ReadFile(path)
	if err != nil {
		return catalog, "", fmt.Errorf("failed to read catalog cache file: %w", err)
	}

	if err := json.Unmarshal(data, &catalog); err != nil {
		return catalog, "", fmt.Errorf("failed to unmarshal catalog from cache: %w", err)
	}

	return catalog, etag.Of(data), nil
}

func emptyCatalog(c bank.Catalog) bool {
	return len(c.Currencies) == 0 && len(c.Countries) == 0
}

// UpdateCatalog refreshes the catalog cache from a file, a backend URL or
// the embedded copy.
func UpdateCatalog(cfg *Config, pathOrURL string) error {
	var catalog bank.Catalog
	if pathOrURL == "" {
		pathOrURL = cfg.API.BaseURL
	}

	switch {
	case pathOrURL == "embedded":
		catalog = EmbeddedCatalog()
	case strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://"):
		client := api.New(pathOrURL, csync.NewValue(cfg.API.Token), api.WithTimeout(cfg.Timeout()))
		var err error
		catalog, _, err = client.Reference(context.Background(), "")
		if err != nil {
			return fmt.Errorf("failed to fetch catalog from %s: %w", pathOrURL, err)
		}
	default:
		content, err := os.ReadFile(pathOrURL)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		if err := json.Unmarshal(content, &catalog); err != nil {
			return fmt.Errorf("failed to unmarshal catalog: %w", err)
		}
	}
	if emptyCatalog(catalog) {
		return errors.New("no reference data found in the provided source")
	}

	cachePath := catalogCacheFile(cfg)
	if err := saveCatalogInCache(cachePath, catalog); err != nil {
		return fmt.Errorf("failed to save catalog to cache: %w", err)
	}

	slog.Info("Catalog updated successfully", "currencies", len(catalog.Currencies), "from", pathOrURL, "to", cachePath)
	return nil
}

// Catalog returns the reference catalog, resolved once per process.
//
// It will:
// 1. return the embedded catalog when auto update is disabled and nothing
// is cached.
// 2. load the cached catalog.
// 3. ask the backend with the cached ETag, and return the fresh catalog,
// the cached one, or the embedded one if all others fail.
func Catalog(cfg *Config, client CatalogClient) (bank.Catalog, error) {
	catalogOnce.Do(func() {
		path := catalogCacheFile(cfg)

		cached, tag, cachedErr := loadCatalogFromCache(path)
		if cachedErr != nil || emptyCatalog(cached) {
			cached, tag = EmbeddedCatalog(), ""
		}

		if cfg.Options.DisableCatalogAutoUpdate {
			slog.Info("Using cached or embedded catalog")
			catalogValue, catalogErr = cached, nil
			return
		}

		catalogValue, catalogErr = loadCatalog(client, tag, path)
		switch {
		case errors.Is(catalogErr, api.ErrNotModified):
			slog.Info("Catalog not modified")
			catalogValue, catalogErr = cached, nil
		case catalogErr != nil:
			slog.Warn("Falling back to cached catalog", "error", catalogErr)
			catalogValue, catalogErr = cached, nil
		}
	})
	return catalogValue, catalogErr
}

func loadCatalog(client CatalogClient, tag, path string) (bank.Catalog, error) {
	slog.Info("Fetching catalog from backend", "path", path)
	catalog, _, err := client.Reference(context.Background(), tag)
	if err != nil {
		return bank.Catalog{}, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	if emptyCatalog(catalog) {
		return bank.Catalog{}, errors.New("empty catalog from backend")
	}
	if err := saveCatalogInCache(path, catalog); err != nil {
		return bank.Catalog{}, err
	}
	return catalog, nil
}
