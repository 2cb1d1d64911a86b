package common

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"arc59-send-receive-go/internal/algonode"
	"arc59-send-receive-go/internal/api"
	"arc59-send-receive-go/internal/directory"
	"arc59-send-receive-go/internal/inbox"
	"arc59-send-receive-go/internal/models"
	"arc59-send-receive-go/internal/wallet"
)

// init loads environment variables from .env file if it exists
func init() {
	// Environment variables can also be set via other means (shell export,
	// docker, etc.), so a missing .env is fine.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment variables from .env file")
	}
}

// Services bundles everything the server binary runs on.
type Services struct {
	Directory *directory.Client
	Wallets   *wallet.Manager
	Transfers *api.TransferService
}

func InitializeLogger() (*zap.Logger, func()) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

func InitializeServices(cfg *models.Config) (*Services, error) {
	zap.L().Info("Using network",
		zap.String("network", cfg.Network.Name),
		zap.Uint64("router_app_id", cfg.Network.RouterAppID))

	algodClient, err := algonode.NewAlgodClient(cfg.Network)
	if err != nil {
		return nil, err
	}
	indexerClient, err := algonode.NewIndexerClient(cfg.Network)
	if err != nil {
		return nil, err
	}

	directoryClient := directory.NewClient(
		directory.NewIndexerQuerier(indexerClient), cfg.Directory)

	routerClient := inbox.NewClient(
		algodClient, cfg.Network.RouterAppID, cfg.Network.ConfirmationRounds)
	planner := inbox.NewPlanner(routerClient)
	builder := inbox.NewBuilder(routerClient)

	wallets, err := buildWallets(cfg.Wallet)
	if err != nil {
		return nil, err
	}
	manager := wallet.NewManager(wallets...)

	transfers := api.NewTransferService(directoryClient, planner, builder, manager)

	return &Services{
		Directory: directoryClient,
		Wallets:   manager,
		Transfers: transfers,
	}, nil
}

func buildWallets(cfg models.WalletConfig) ([]wallet.Wallet, error) {
	var wallets []wallet.Wallet

	if cfg.Mnemonic != "" {
		hot, err := wallet.NewMnemonicWallet(cfg.Mnemonic)
		if err != nil {
			return nil, fmt.Errorf("hot wallet: %w", err)
		}
		wallets = append(wallets, hot)
	}

	if cfg.KmdURL != "" {
		kmdClient, err := algonode.NewKmdClient(cfg.KmdURL, cfg.KmdToken)
		if err != nil {
			return nil, err
		}
		kmdWallets, err := wallet.DiscoverKmdWallets(kmdClient, cfg.KmdWalletPassword)
		if err != nil {
			return nil, err
		}
		for _, w := range kmdWallets {
			wallets = append(wallets, w)
		}
	}

	if len(wallets) == 0 {
		return nil, fmt.Errorf("no wallet providers configured: set HOT_WALLET_MNEMONIC or KMD_URL")
	}
	return wallets, nil
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
