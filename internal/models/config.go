package models

import "time"

// Config represents the application configuration
type Config struct {
	Network   NetworkConfig
	Server    ServerConfig
	Directory DirectoryConfig
	Wallet    WalletConfig
}

// NetworkConfig selects the chain endpoints and the ARC-59 router
// application instance to use.
type NetworkConfig struct {
	Name               string
	AlgodURL           string
	AlgodToken         string
	IndexerURL         string
	IndexerToken       string
	RouterAppID        uint64
	ConfirmationRounds uint64
}

// ServerConfig holds HTTP shell settings
type ServerConfig struct {
	Addr string
}

// DirectoryConfig holds asset directory client settings
type DirectoryConfig struct {
	PageLimit         uint64
	EnrichConcurrency int
	EnrichRate        float64 // indexer requests per second across all enrichment
	CacheTTL          time.Duration
}

// WalletConfig holds wallet provider settings
type WalletConfig struct {
	Mnemonic          string
	KmdURL            string
	KmdToken          string
	KmdWalletPassword string
}
