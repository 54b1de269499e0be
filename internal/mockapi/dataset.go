package mockapi

import (
	_ "embed"
	"fmt"
	"slices"

	"github.com/ledgerlens/ledgerlens/internal/bank"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var fixtures []byte

// Dataset is everything the mock backend serves.
type Dataset struct {
	Operator     bank.Operator      `yaml:"operator"`
	Catalog      bank.Catalog       `yaml:"catalog"`
	Clients      []bank.Client      `yaml:"clients"`
	Transactions []bank.Transaction `yaml:"transactions"`
	Alerts       []bank.Alert       `yaml:"alerts"`
}

// LoadDataset decodes a YAML dataset.
func LoadDataset(data []byte) (Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return ds, fmt.Errorf("failed to decode dataset: %w", err)
	}
	return ds, nil
}

// DefaultDataset returns a fresh copy of the embedded development dataset.
func DefaultDataset() Dataset {
	ds, err := LoadDataset(fixtures)
	if err != nil {
		panic(err)
	}
	return ds
}

func (d *Dataset) client(id string) (bank.Client, bool) {
	i := slices.IndexFunc(d.Clients, func(c bank.Client) bool { return c.ID == id })
	if i < 0 {
		return bank.Client{}, false
	}
	return d.Clients[i], true
}

func (d *Dataset) highRisk(country string) bool {
	return slices.Contains(d.Catalog.HighRiskCountries, country)
}
