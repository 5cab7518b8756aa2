package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/vitos/coin_wallet/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Coins []domain.CoinRecord `yaml:"coins"`
}

// YAMLCatalog reads the coin list from a YAML document with a top-level
// "coins" sequence.
type YAMLCatalog struct {
	open func() (io.ReadCloser, error)
	name string
}

// NewYAMLFile reads the catalog from a file on disk.
func NewYAMLFile(path string) *YAMLCatalog {
	return &YAMLCatalog{
		name: path,
		open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// Default is the catalog compiled into the binary.
func Default() *YAMLCatalog {
	return &YAMLCatalog{
		name: "embedded",
		open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(defaultCatalog)), nil },
	}
}

func (c *YAMLCatalog) ListCoins(ctx context.Context) ([]domain.CoinRecord, error) {
	f, err := c.open()
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", c.name, err)
	}
	defer f.Close()

	var doc catalogFile
	if err := yaml.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", c.name, err)
	}
	return doc.Coins, nil
}

func (c *YAMLCatalog) String() string {
	return "yaml:" + c.name
}
