package config

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/charmbracelet/x/etag"
	"github.com/ledgerlens/ledgerlens/internal/api"
	"github.com/ledgerlens/ledgerlens/internal/bank"
	"github.com/ledgerlens/ledgerlens/internal/mockapi"
	"github.com/stretchr/testify/require"
)

type mockCatalogClient struct {
	shouldFail      bool
	shouldReturnErr error
	empty           bool
	etag            string
}

func (m *mockCatalogClient) Reference(_ context.Context, tag string) (bank.Catalog, string, error) {
	m.etag = tag
	if m.shouldReturnErr != nil {
		return bank.Catalog{}, tag, m.shouldReturnErr
	}
	if m.shouldFail {
		return bank.Catalog{}, "", errors.New("failed to load catalog")
	}
	if m.empty {
		return bank.Catalog{}, "", nil
	}
	return bank.Catalog{Currencies: []string{"SEK"}, Countries: []string{"SE"}}, `"fresh"`, nil
}

func resetCatalogState() {
	catalogOnce = sync.Once{}
	catalogValue = bank.Catalog{}
	catalogErr = nil
}

func testConfig(t *testing.T) *Config {
	t.Helper()
	cfg := &Config{}
	cfg.setDefaults(t.TempDir(), t.TempDir())
	return cfg
}

func TestCatalog_loadCatalogNoIssues(t *testing.T) {
	client := &mockCatalogClient{}
	tmpPath := filepath.Join(t.TempDir(), "catalog.json")
	catalog, err := loadCatalog(client, "", tmpPath)
	require.NoError(t, err)
	require.Equal(t, []string{"SEK"}, catalog.Currencies)

	// check if file got saved
	fileInfo, err := os.Stat(tmpPath)
	require.NoError(t, err)
	require.False(t, fileInfo.IsDir(), "Expected a file, not a directory")
}

func TestCatalog_loadCatalogEmptyResult(t *testing.T) {
	client := &mockCatalogClient{empty: true}
	tmpPath := filepath.Join(t.TempDir(), "catalog.json")

	_, err := loadCatalog(client, "", tmpPath)
	require.ErrorContains(t, err, "empty catalog from backend")
	require.NoFileExists(t, tmpPath, "Cache file should not exist for empty results")
}

func TestCatalog_loadCatalogNotModified(t *testing.T) {
	client := &mockCatalogClient{shouldReturnErr: api.ErrNotModified}
	_, err := loadCatalog(client, "abc", filepath.Join(t.TempDir(), "catalog.json"))
	require.ErrorIs(t, err, api.ErrNotModified)
	require.Equal(t, "abc", client.etag)
}

func TestCatalog_DisableAutoUpdate(t *testing.T) {
	resetCatalogState()
	defer resetCatalogState()

	cfg := testConfig(t)
	cfg.Options.DisableCatalogAutoUpdate = true
	client := &mockCatalogClient{}

	catalog, err := Catalog(cfg, client)
	require.NoError(t, err)
	require.Equal(t, EmbeddedCatalog(), catalog)
	require.Empty(t, client.etag)
}

func TestCatalog_NotModifiedUsesCached(t *testing.T) {
	resetCatalogState()
	defer resetCatalogState()

	cfg := testConfig(t)
	cached := bank.Catalog{Currencies: []string{"JPY"}, Countries: []string{"JP"}}
	data, err := json.Marshal(cached)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(catalogCacheFile(cfg), data, 0o644))

	client := &mockCatalogClient{shouldReturnErr: api.ErrNotModified}
	catalog, err := Catalog(cfg, client)
	require.NoError(t, err)
	require.Equal(t, cached, catalog)
	require.Equal(t, etag.Of(data), client.etag, "cached ETag is sent")
}

func TestCatalog_FailureFallsBackToEmbedded(t *testing.T) {
	resetCatalogState()
	defer resetCatalogState()

	catalog, err := Catalog(testConfig(t), &mockCatalogClient{shouldFail: true})
	require.NoError(t, err)
	require.Equal(t, EmbeddedCatalog(), catalog)
}

func TestEmbeddedCatalog(t *testing.T) {
	t.Parallel()

	c := EmbeddedCatalog()
	require.Contains(t, c.Currencies, "EUR")
	require.Contains(t, c.HighRiskCountries, "KP")
	require.Equal(t, "10000", c.LargeAmountTrigger)
}

func TestUpdateCatalog(t *testing.T) {
	srv := httptest.NewServer(mockapi.New())
	t.Cleanup(srv.Close)

	cfg := testConfig(t)
	require.NoError(t, UpdateCatalog(cfg, srv.URL))
	cached, tag, err := loadCatalogFromCache(catalogCacheFile(cfg))
	require.NoError(t, err)
	require.Contains(t, cached.Currencies, "NOK")

	_, _, err = api.New(srv.URL, nil).Reference(t.Context(), tag)
	require.ErrorIs(t, err, api.ErrNotModified, "cache and backend agree on the ETag")

	require.NoError(t, UpdateCatalog(cfg, "embedded"))

	empty := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{}`), 0o644))
	require.Error(t, UpdateCatalog(cfg, empty))
}
