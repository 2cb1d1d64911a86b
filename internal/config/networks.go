package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"arc59-send-receive-go/internal/models"
)

// Built-in network registry. The router application ids are the deployed
// ARC-59 instances; endpoints are the public Algonode gateways.
var builtinNetworks = []networkEntry{
	{
		Name:        "testnet",
		AlgodURL:    "https://testnet-api.algonode.cloud",
		IndexerURL:  "https://testnet-idx.algonode.cloud",
		RouterAppID: 643020148,
	},
	{
		Name:        "mainnet",
		AlgodURL:    "https://mainnet-api.algonode.cloud",
		IndexerURL:  "https://mainnet-idx.algonode.cloud",
		RouterAppID: 2449590623,
	},
}

type networkEntry struct {
	Name         string `yaml:"name"`
	AlgodURL     string `yaml:"algod_url"`
	AlgodToken   string `yaml:"algod_token"`
	IndexerURL   string `yaml:"indexer_url"`
	IndexerToken string `yaml:"indexer_token"`
	RouterAppID  uint64 `yaml:"router_app_id"`
}

type networksFile struct {
	Networks []networkEntry `yaml:"networks"`
}

// ResolveNetwork returns the network configuration for the given name,
// consulting the optional YAML registry file before the built-in registry.
func ResolveNetwork(name, networksFilePath string) (models.NetworkConfig, error) {
	entries := builtinNetworks
	if networksFilePath != "" {
		loaded, err := loadNetworksFile(networksFilePath)
		if err != nil {
			return models.NetworkConfig{}, err
		}
		entries = append(loaded, entries...)
	}

	for _, entry := range entries {
		if strings.EqualFold(entry.Name, name) {
			return models.NetworkConfig{
				Name:         entry.Name,
				AlgodURL:     entry.AlgodURL,
				AlgodToken:   entry.AlgodToken,
				IndexerURL:   entry.IndexerURL,
				IndexerToken: entry.IndexerToken,
				RouterAppID:  entry.RouterAppID,
			}, nil
		}
	}
	return models.NetworkConfig{}, fmt.Errorf("unknown network %q", name)
}

func loadNetworksFile(networksFilePath string) ([]networkEntry, error) {
	var path string
	if filepath.IsAbs(networksFilePath) {
		path = networksFilePath
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		path = filepath.Join(wd, networksFilePath)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", networksFilePath, err)
	}

	var file networksFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", networksFilePath, err)
	}

	for i, entry := range file.Networks {
		if entry.Name == "" {
			return nil, fmt.Errorf("network at index %d missing name", i)
		}
		if entry.RouterAppID == 0 {
			return nil, fmt.Errorf("network %q missing router_app_id", entry.Name)
		}
		if entry.AlgodURL == "" || entry.IndexerURL == "" {
			return nil, fmt.Errorf("network %q missing algod_url or indexer_url", entry.Name)
		}
	}

	return file.Networks, nil
}
