package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/covenscan/nft-indexer/pkg/marketplace"
)

type Config struct {
	NATS         NATSConfig         `yaml:"nats"`
	Storage      StorageConfig      `yaml:"storage"`
	API          APIConfig          `yaml:"api"`
	Contract     ContractConfig     `yaml:"contract"`
	Marketplaces []MarketplaceEntry `yaml:"marketplaces"`
}

type NATSConfig struct {
	URL      string `yaml:"url"`
	Stream   string `yaml:"stream"`
	Subject  string `yaml:"subject"`
	Consumer string `yaml:"consumer"`
}

type StorageConfig struct {
	Directory string `yaml:"directory"`
	Prefix    string `yaml:"prefix"`
}

type APIConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

type ContractConfig struct {
	Address string `yaml:"address"`
}

// MarketplaceEntry overrides one row of the known-address table. Order in the
// config file is classification priority order.
type MarketplaceEntry struct {
	Name      string   `yaml:"name"`
	Addresses []string `yaml:"addresses"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	applyDefaults(&config)

	for _, entry := range config.Marketplaces {
		if !marketplace.Valid(entry.Name) {
			return nil, fmt.Errorf("unknown marketplace %q in config", entry.Name)
		}
		if len(entry.Addresses) == 0 {
			return nil, fmt.Errorf("marketplace %q has no addresses", entry.Name)
		}
	}

	return &config, nil
}

func applyDefaults(config *Config) {
	if config.NATS.Stream == "" {
		config.NATS.Stream = "covenscan"
	}
	if config.NATS.Subject == "" {
		config.NATS.Subject = "covenscan.transfers"
	}
	if config.NATS.Consumer == "" {
		config.NATS.Consumer = "transfer-indexer"
	}
	if config.Storage.Directory == "" {
		config.Storage.Directory = "data/badger"
	}
	if config.API.ListenAddr == "" {
		config.API.ListenAddr = ":8080"
	}
	if config.Contract.Address == "" {
		config.Contract.Address = "0x5180db8f5c931aae63c74266b211f580155ecac8"
	}
}

// AddressBook builds the classification table. An empty marketplaces section
// falls back to the compiled-in mainnet defaults.
func (c *Config) AddressBook() marketplace.AddressBook {
	if len(c.Marketplaces) == 0 {
		return marketplace.Default()
	}
	entries := make([]marketplace.Entry, 0, len(c.Marketplaces))
	for _, e := range c.Marketplaces {
		entries = append(entries, marketplace.Entry{
			Tag:       marketplace.Tag(e.Name),
			Addresses: e.Addresses,
		})
	}
	return marketplace.New(entries)
}
