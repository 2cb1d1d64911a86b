package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"NETWORK", "NETWORKS_FILE",
		"ALGOD_URL", "ALGOD_TOKEN", "INDEXER_URL", "INDEXER_TOKEN",
		"CONFIRMATION_ROUNDS", "SERVER_ADDR",
		"PAGE_LIMIT", "ENRICH_CONCURRENCY", "ENRICH_RATE", "ASSET_CACHE_TTL",
		"HOT_WALLET_MNEMONIC", "KMD_URL", "KMD_TOKEN", "KMD_WALLET_PASSWORD",
	}
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Network.Name != "testnet" {
		t.Errorf("default network = %q, want testnet", cfg.Network.Name)
	}
	if cfg.Network.RouterAppID != 643020148 {
		t.Errorf("testnet router app = %d, want 643020148", cfg.Network.RouterAppID)
	}
	if cfg.Network.ConfirmationRounds != 4 {
		t.Errorf("confirmation rounds = %d, want 4", cfg.Network.ConfirmationRounds)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("server addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Directory.PageLimit != 1000 {
		t.Errorf("page limit = %d, want 1000", cfg.Directory.PageLimit)
	}
	if cfg.Directory.EnrichConcurrency != 4 {
		t.Errorf("enrich concurrency = %d, want 4", cfg.Directory.EnrichConcurrency)
	}
	if cfg.Directory.EnrichRate != 20 {
		t.Errorf("enrich rate = %v, want 20", cfg.Directory.EnrichRate)
	}
	if cfg.Directory.CacheTTL != 5*time.Minute {
		t.Errorf("cache ttl = %v, want 5m", cfg.Directory.CacheTTL)
	}
}

func TestLoadMainnet(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("NETWORK", "mainnet")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Network.RouterAppID != 2449590623 {
		t.Errorf("mainnet router app = %d, want 2449590623", cfg.Network.RouterAppID)
	}
	if cfg.Network.AlgodURL != "https://mainnet-api.algonode.cloud" {
		t.Errorf("mainnet algod url = %q", cfg.Network.AlgodURL)
	}
}

func TestLoadEndpointOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("ALGOD_URL", "http://localhost:4001")
	t.Setenv("ALGOD_TOKEN", "local-token")
	t.Setenv("CONFIRMATION_ROUNDS", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Network.AlgodURL != "http://localhost:4001" {
		t.Errorf("algod url override not applied: %q", cfg.Network.AlgodURL)
	}
	if cfg.Network.AlgodToken != "local-token" {
		t.Errorf("algod token override not applied: %q", cfg.Network.AlgodToken)
	}
	if cfg.Network.ConfirmationRounds != 10 {
		t.Errorf("confirmation rounds = %d, want 10", cfg.Network.ConfirmationRounds)
	}
	// The indexer endpoint keeps its registry value.
	if cfg.Network.IndexerURL != "https://testnet-idx.algonode.cloud" {
		t.Errorf("indexer url = %q", cfg.Network.IndexerURL)
	}
}

func TestLoadUnknownNetwork(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("NETWORK", "devnet")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown network")
	}
}

func TestLoadBadDuration(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("ASSET_CACHE_TTL", "five minutes")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed duration")
	}
}

func TestLoadNonPositiveEnrichRate(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("ENRICH_RATE", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero enrich rate")
	}
}

func TestResolveNetworkFromFile(t *testing.T) {
	clearConfigEnv(t)
	path := filepath.Join(t.TempDir(), "networks.yaml")
	content := `networks:
  - name: localnet
    algod_url: http://localhost:4001
    algod_token: aaaa
    indexer_url: http://localhost:8980
    router_app_id: 1002
  - name: testnet
    algod_url: http://localhost:4001
    indexer_url: http://localhost:8980
    router_app_id: 9999
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write networks file: %v", err)
	}

	network, err := ResolveNetwork("localnet", path)
	if err != nil {
		t.Fatalf("resolve localnet: %v", err)
	}
	if network.RouterAppID != 1002 || network.AlgodToken != "aaaa" {
		t.Errorf("localnet = %+v", network)
	}

	// File entries shadow built-ins of the same name.
	network, err = ResolveNetwork("testnet", path)
	if err != nil {
		t.Fatalf("resolve testnet: %v", err)
	}
	if network.RouterAppID != 9999 {
		t.Errorf("file entry did not shadow the built-in: app id %d", network.RouterAppID)
	}
}

func TestResolveNetworkFileValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing name", "networks:\n  - algod_url: http://a\n    indexer_url: http://b\n    router_app_id: 1\n"},
		{"missing app id", "networks:\n  - name: localnet\n    algod_url: http://a\n    indexer_url: http://b\n"},
		{"missing endpoints", "networks:\n  - name: localnet\n    router_app_id: 1\n"},
		{"malformed yaml", "networks: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "networks.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatalf("write networks file: %v", err)
			}
			if _, err := ResolveNetwork("localnet", path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestResolveNetworkMissingFile(t *testing.T) {
	if _, err := ResolveNetwork("testnet", filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for unreadable networks file")
	}
}
