package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covenscan/nft-indexer/pkg/marketplace"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
nats:
  url: nats://127.0.0.1:4222
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "covenscan", cfg.NATS.Stream)
	assert.Equal(t, "covenscan.transfers", cfg.NATS.Subject)
	assert.Equal(t, "transfer-indexer", cfg.NATS.Consumer)
	assert.Equal(t, "data/badger", cfg.Storage.Directory)
	assert.Equal(t, ":8080", cfg.API.ListenAddr)
	assert.Equal(t, "0x5180db8f5c931aae63c74266b211f580155ecac8", cfg.Contract.Address)
}

func TestLoad_MarketplaceOverrides(t *testing.T) {
	path := writeConfig(t, `
marketplaces:
  - name: Blur
    addresses:
      - "0xAAA0000000000000000000000000000000000001"
  - name: SeaPort
    addresses:
      - "0xbbb0000000000000000000000000000000000002"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	book := cfg.AddressBook()
	// Overridden table replaces the defaults entirely, order preserved.
	require.Len(t, book.Entries(), 2)
	assert.Equal(t, marketplace.Blur, book.Classify("0xaaa0000000000000000000000000000000000001", "0xccc"))
	assert.Equal(t, marketplace.SeaPort, book.Classify("0xbbb0000000000000000000000000000000000002", "0xccc"))
	assert.Equal(t, marketplace.Unknown, book.Classify("0x7be8076f4ea4a4ad08075c2508e481d6c946d12b", "0xccc"))
}

func TestLoad_DefaultAddressBookWhenOmitted(t *testing.T) {
	path := writeConfig(t, `
nats:
  url: nats://127.0.0.1:4222
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	book := cfg.AddressBook()
	assert.Equal(t, marketplace.OpenSeaV1, book.Classify("0x7be8076f4ea4a4ad08075c2508e481d6c946d12b", "0xccc"))
}

func TestLoad_RejectsUnknownMarketplace(t *testing.T) {
	path := writeConfig(t, `
marketplaces:
  - name: MagicEden
    addresses:
      - "0xaaa"
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsEmptyAddressList(t *testing.T) {
	path := writeConfig(t, `
marketplaces:
  - name: Blur
    addresses: []
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
