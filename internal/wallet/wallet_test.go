package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/mnemonic"
	"github.com/algorand/go-algorand-sdk/v2/transaction"

	"arc59-send-receive-go/internal/models"
)

type stubWallet struct {
	id         string
	accounts   []Account
	connectErr error
	signer     transaction.TransactionSigner
}

func (s *stubWallet) ID() string   { return s.id }
func (s *stubWallet) Name() string { return "stub " + s.id }

func (s *stubWallet) Connect(ctx context.Context) ([]Account, error) {
	if s.connectErr != nil {
		return nil, s.connectErr
	}
	return s.accounts, nil
}

func (s *stubWallet) Disconnect(ctx context.Context) error { return nil }
func (s *stubWallet) Accounts() []Account                  { return s.accounts }

func (s *stubWallet) Signer(address string) (transaction.TransactionSigner, error) {
	for _, account := range s.accounts {
		if account.Address == address {
			return s.signer, nil
		}
	}
	return nil, errors.New("unknown account")
}

func stubAccounts(n int) []Account {
	accounts := make([]Account, n)
	for i := range accounts {
		accounts[i] = Account{Address: crypto.GenerateAccount().Address.String()}
	}
	return accounts
}

func TestManagerListReportsConnectionState(t *testing.T) {
	first := &stubWallet{id: "first", accounts: stubAccounts(1)}
	second := &stubWallet{id: "second", accounts: stubAccounts(2)}
	m := NewManager(first, second)

	if _, err := m.Connect(context.Background(), "second"); err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	infos := m.List()
	if len(infos) != 2 {
		t.Fatalf("got %d providers, want 2", len(infos))
	}
	if infos[0].Connected || len(infos[0].Accounts) != 0 {
		t.Error("unconnected provider should not expose accounts")
	}
	if !infos[1].Connected || len(infos[1].Accounts) != 2 {
		t.Errorf("connected provider: connected=%v accounts=%d", infos[1].Connected, len(infos[1].Accounts))
	}
}

func TestManagerConnectPromotesFirstAccount(t *testing.T) {
	w := &stubWallet{id: "stub", accounts: stubAccounts(2)}
	m := NewManager(w)

	accounts, err := m.Connect(context.Background(), "stub")
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("got %d accounts, want 2", len(accounts))
	}

	active := m.Active()
	if active.WalletID != "stub" || active.Address != w.accounts[0].Address {
		t.Errorf("active = %+v, want first account of stub", active)
	}
}

func TestManagerConnectKeepsExistingActive(t *testing.T) {
	first := &stubWallet{id: "first", accounts: stubAccounts(1)}
	second := &stubWallet{id: "second", accounts: stubAccounts(1)}
	m := NewManager(first, second)

	if _, err := m.Connect(context.Background(), "first"); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if _, err := m.Connect(context.Background(), "second"); err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	if active := m.Active(); active.WalletID != "first" {
		t.Errorf("connecting a second provider moved the active account to %q", active.WalletID)
	}
}

func TestManagerSetActive(t *testing.T) {
	w := &stubWallet{id: "stub", accounts: stubAccounts(2)}
	m := NewManager(w)

	if err := m.SetActive("stub", w.accounts[1].Address); err == nil {
		t.Error("expected error selecting an account on an unconnected wallet")
	}

	if _, err := m.Connect(context.Background(), "stub"); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if err := m.SetActive("stub", w.accounts[1].Address); err != nil {
		t.Fatalf("set active failed: %v", err)
	}
	if active := m.Active(); active.Address != w.accounts[1].Address {
		t.Errorf("active address = %s, want %s", active.Address, w.accounts[1].Address)
	}

	if err := m.SetActive("stub", crypto.GenerateAccount().Address.String()); err == nil {
		t.Error("expected error for an address the wallet does not hold")
	}
	if err := m.SetActive("ghost", w.accounts[0].Address); err == nil {
		t.Error("expected error for an unknown wallet")
	}
}

func TestManagerDisconnectClearsActive(t *testing.T) {
	w := &stubWallet{id: "stub", accounts: stubAccounts(1)}
	m := NewManager(w)

	if _, err := m.Connect(context.Background(), "stub"); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if err := m.Disconnect(context.Background(), "stub"); err != nil {
		t.Fatalf("disconnect failed: %v", err)
	}

	if active := m.Active(); active != (Session{}) {
		t.Errorf("active session survived disconnect: %+v", active)
	}
	if _, err := m.ActiveSender(); !errors.Is(err, models.ErrNoActiveAccount) {
		t.Errorf("got %v, want ErrNoActiveAccount", err)
	}
}

func TestManagerActiveSender(t *testing.T) {
	account := crypto.GenerateAccount()
	signer := transaction.BasicAccountTransactionSigner{Account: account}
	w := &stubWallet{
		id:       "stub",
		accounts: []Account{{Address: account.Address.String()}},
		signer:   signer,
	}
	m := NewManager(w)

	if _, err := m.ActiveSender(); !errors.Is(err, models.ErrNoActiveAccount) {
		t.Fatalf("got %v, want ErrNoActiveAccount before connect", err)
	}

	if _, err := m.Connect(context.Background(), "stub"); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	sender, err := m.ActiveSender()
	if err != nil {
		t.Fatalf("active sender failed: %v", err)
	}
	if sender.Address != account.Address.String() {
		t.Errorf("sender address = %s, want %s", sender.Address, account.Address)
	}
	if sender.Signer == nil {
		t.Error("sender has no signer")
	}
}

func TestManagerConnectFailure(t *testing.T) {
	w := &stubWallet{id: "stub", connectErr: errors.New("provider offline")}
	m := NewManager(w)

	if _, err := m.Connect(context.Background(), "stub"); err == nil {
		t.Fatal("expected connect error")
	}
	if m.List()[0].Connected {
		t.Error("failed connect left the provider marked connected")
	}
}

func TestMnemonicWalletRoundTrip(t *testing.T) {
	account := crypto.GenerateAccount()
	phrase, err := mnemonic.FromPrivateKey(account.PrivateKey)
	if err != nil {
		t.Fatalf("derive mnemonic: %v", err)
	}

	w, err := NewMnemonicWallet(phrase)
	if err != nil {
		t.Fatalf("restore wallet: %v", err)
	}

	accounts := w.Accounts()
	if len(accounts) != 1 || accounts[0].Address != account.Address.String() {
		t.Fatalf("restored accounts = %+v, want %s", accounts, account.Address)
	}

	if _, err := w.Signer(accounts[0].Address); err != nil {
		t.Errorf("signer lookup failed: %v", err)
	}
	if _, err := w.Signer(crypto.GenerateAccount().Address.String()); err == nil {
		t.Error("expected error for a foreign address")
	}
}

func TestMnemonicWalletRejectsBadPhrase(t *testing.T) {
	if _, err := NewMnemonicWallet("not a valid phrase"); err == nil {
		t.Error("expected error for malformed mnemonic")
	}
}
