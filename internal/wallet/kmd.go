package wallet

import (
	"context"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/client/kmd"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"go.uber.org/zap"
)

// KmdWallet exposes one wallet of a local KMD daemon. Signing happens inside
// the daemon; key material never enters this process.
type KmdWallet struct {
	client   kmd.Client
	walletID string
	name     string
	password string

	handle   string
	accounts []Account
}

// DiscoverKmdWallets lists the daemon's wallets and wraps each as a
// provider.
func DiscoverKmdWallets(client kmd.Client, password string) ([]*KmdWallet, error) {
	response, err := client.ListWallets()
	if err != nil {
		return nil, fmt.Errorf("list kmd wallets: %w", err)
	}

	wallets := make([]*KmdWallet, 0, len(response.Wallets))
	for _, w := range response.Wallets {
		wallets = append(wallets, &KmdWallet{
			client:   client,
			walletID: w.ID,
			name:     w.Name,
			password: password,
		})
	}
	return wallets, nil
}

func (w *KmdWallet) ID() string   { return "kmd:" + w.walletID }
func (w *KmdWallet) Name() string { return "KMD " + w.name }

func (w *KmdWallet) Connect(ctx context.Context) ([]Account, error) {
	handleResponse, err := w.client.InitWalletHandle(w.walletID, w.password)
	if err != nil {
		return nil, fmt.Errorf("init wallet handle: %w", err)
	}
	keysResponse, err := w.client.ListKeys(handleResponse.WalletHandleToken)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}

	w.handle = handleResponse.WalletHandleToken
	w.accounts = make([]Account, 0, len(keysResponse.Addresses))
	for _, address := range keysResponse.Addresses {
		w.accounts = append(w.accounts, Account{Address: address})
	}
	return w.accounts, nil
}

func (w *KmdWallet) Disconnect(ctx context.Context) error {
	if w.handle == "" {
		return nil
	}
	if _, err := w.client.ReleaseWalletHandle(w.handle); err != nil {
		// Best-effort release; the handle expires server-side anyway.
		zap.L().Warn("Failed to release kmd wallet handle",
			zap.String("wallet", w.walletID), zap.Error(err))
	}
	w.handle = ""
	w.accounts = nil
	return nil
}

func (w *KmdWallet) Accounts() []Account { return w.accounts }

func (w *KmdWallet) Signer(address string) (transaction.TransactionSigner, error) {
	if w.handle == "" {
		return nil, fmt.Errorf("wallet %s is not connected", w.walletID)
	}
	for _, account := range w.accounts {
		if account.Address == address {
			return &kmdSigner{wallet: w, address: address}, nil
		}
	}
	return nil, fmt.Errorf("unknown account %s", address)
}

type kmdSigner struct {
	wallet  *KmdWallet
	address string
}

func (s *kmdSigner) SignTransactions(txGroup []types.Transaction, indexesToSign []int) ([][]byte, error) {
	signed := make([][]byte, 0, len(indexesToSign))
	for _, index := range indexesToSign {
		if index < 0 || index >= len(txGroup) {
			return nil, fmt.Errorf("sign index %d out of range", index)
		}
		response, err := s.wallet.client.SignTransaction(
			s.wallet.handle, s.wallet.password, txGroup[index])
		if err != nil {
			return nil, fmt.Errorf("kmd sign txn %d: %w", index, err)
		}
		signed = append(signed, response.SignedTransaction)
	}
	return signed, nil
}

func (s *kmdSigner) Equals(other transaction.TransactionSigner) bool {
	otherSigner, ok := other.(*kmdSigner)
	if !ok {
		return false
	}
	return s.wallet.walletID == otherSigner.wallet.walletID && s.address == otherSigner.address
}
