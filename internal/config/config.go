package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"arc59-send-receive-go/internal/models"
)

func Load() (*models.Config, error) {
	network, err := ResolveNetwork(
		getEnvString("NETWORK", "testnet"),
		getEnvString("NETWORKS_FILE", ""),
	)
	if err != nil {
		return nil, err
	}

	// Endpoint overrides take precedence over the registry.
	network.AlgodURL = getEnvString("ALGOD_URL", network.AlgodURL)
	network.AlgodToken = getEnvString("ALGOD_TOKEN", network.AlgodToken)
	network.IndexerURL = getEnvString("INDEXER_URL", network.IndexerURL)
	network.IndexerToken = getEnvString("INDEXER_TOKEN", network.IndexerToken)
	network.ConfirmationRounds = getEnvUint64("CONFIRMATION_ROUNDS", 4)

	cacheTTL, err := getEnvDuration("ASSET_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	enrichRate, err := getEnvFloat("ENRICH_RATE", 20)
	if err != nil {
		return nil, err
	}
	if enrichRate <= 0 {
		return nil, fmt.Errorf("ENRICH_RATE must be positive, got %v", enrichRate)
	}

	return &models.Config{
		Network: network,
		Server: models.ServerConfig{
			Addr: getEnvString("SERVER_ADDR", ":8080"),
		},
		Directory: models.DirectoryConfig{
			PageLimit:         getEnvUint64("PAGE_LIMIT", 1000),
			EnrichConcurrency: getEnvInt("ENRICH_CONCURRENCY", 4),
			EnrichRate:        enrichRate,
			CacheTTL:          cacheTTL,
		},
		Wallet: models.WalletConfig{
			Mnemonic:          getEnvString("HOT_WALLET_MNEMONIC", ""),
			KmdURL:            getEnvString("KMD_URL", ""),
			KmdToken:          getEnvString("KMD_TOKEN", ""),
			KmdWalletPassword: getEnvString("KMD_WALLET_PASSWORD", ""),
		},
	}, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	if value := os.Getenv(key); value != "" {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %q (%w)", key, value, err)
		}
		return duration, nil
	}
	return defaultValue, nil
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvUint64(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if uintValue, err := strconv.ParseUint(value, 10, 64); err == nil {
			return uintValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	if value := os.Getenv(key); value != "" {
		floatValue, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number for %s: %q (%w)", key, value, err)
		}
		return floatValue, nil
	}
	return defaultValue, nil
}
