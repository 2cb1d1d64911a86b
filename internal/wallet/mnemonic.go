package wallet

import (
	"context"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/mnemonic"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
)

// MnemonicWallet is a single-account hot wallet restored from a 25-word
// mnemonic, intended for development and test networks.
type MnemonicWallet struct {
	account crypto.Account
}

func NewMnemonicWallet(phrase string) (*MnemonicWallet, error) {
	key, err := mnemonic.ToPrivateKey(phrase)
	if err != nil {
		return nil, fmt.Errorf("invalid mnemonic: %w", err)
	}
	account, err := crypto.AccountFromPrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("derive account: %w", err)
	}
	return &MnemonicWallet{account: account}, nil
}

func (w *MnemonicWallet) ID() string   { return "mnemonic" }
func (w *MnemonicWallet) Name() string { return "Hot wallet" }

func (w *MnemonicWallet) Connect(ctx context.Context) ([]Account, error) {
	return w.Accounts(), nil
}

func (w *MnemonicWallet) Disconnect(ctx context.Context) error { return nil }

func (w *MnemonicWallet) Accounts() []Account {
	return []Account{{Address: w.account.Address.String(), Name: "hot"}}
}

func (w *MnemonicWallet) Signer(address string) (transaction.TransactionSigner, error) {
	if address != w.account.Address.String() {
		return nil, fmt.Errorf("unknown account %s", address)
	}
	return transaction.BasicAccountTransactionSigner{Account: w.account}, nil
}
