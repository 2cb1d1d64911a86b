package wallet

import (
	"context"
	"fmt"
	"sync"

	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"go.uber.org/zap"

	"arc59-send-receive-go/internal/models"
)

// Account is one signable address offered by a wallet provider.
type Account struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
}

// Wallet is the capability every provider implements. Providers differ in
// connect and signing mechanics; callers only see this interface.
type Wallet interface {
	ID() string
	Name() string
	Connect(ctx context.Context) ([]Account, error)
	Disconnect(ctx context.Context) error
	Accounts() []Account
	Signer(address string) (transaction.TransactionSigner, error)
}

// Info is the listing view of one provider.
type Info struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Connected bool      `json:"connected"`
	Accounts  []Account `json:"accounts,omitempty"`
}

// Session is the current active selection.
type Session struct {
	WalletID string `json:"wallet_id,omitempty"`
	Address  string `json:"address,omitempty"`
}

// Manager owns the wallet session: which providers exist, which are
// connected and which single account is active. The active sender is handed
// out as an explicit value; nothing downstream reads session state
// ambiently.
type Manager struct {
	mu        sync.Mutex
	wallets   []Wallet
	connected map[string]bool
	active    Session
}

func NewManager(wallets ...Wallet) *Manager {
	return &Manager{
		wallets:   wallets,
		connected: make(map[string]bool),
	}
}

// List returns every registered provider with its connection state.
func (m *Manager) List() []Info {
	m.mu.Lock()
	defer m.mu.Unlock()

	infos := make([]Info, 0, len(m.wallets))
	for _, w := range m.wallets {
		info := Info{ID: w.ID(), Name: w.Name(), Connected: m.connected[w.ID()]}
		if info.Connected {
			info.Accounts = w.Accounts()
		}
		infos = append(infos, info)
	}
	return infos
}

// Connect connects a provider and, when no account is active yet, promotes
// the provider's first account to active.
func (m *Manager) Connect(ctx context.Context, walletID string) ([]Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, err := m.find(walletID)
	if err != nil {
		return nil, err
	}

	accounts, err := w.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect wallet %s: %w", walletID, err)
	}
	m.connected[walletID] = true

	if m.active.Address == "" && len(accounts) > 0 {
		m.active = Session{WalletID: walletID, Address: accounts[0].Address}
		zap.L().Info("Active account set",
			zap.String("wallet", walletID),
			zap.String("address", accounts[0].Address))
	}
	return accounts, nil
}

// Disconnect disconnects a provider and clears the active selection if it
// pointed at this provider.
func (m *Manager) Disconnect(ctx context.Context, walletID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, err := m.find(walletID)
	if err != nil {
		return err
	}
	if err := w.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect wallet %s: %w", walletID, err)
	}
	delete(m.connected, walletID)
	if m.active.WalletID == walletID {
		m.active = Session{}
	}
	return nil
}

// SetActive selects one connected account as the session's sender.
func (m *Manager) SetActive(walletID, address string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, err := m.find(walletID)
	if err != nil {
		return err
	}
	if !m.connected[walletID] {
		return fmt.Errorf("wallet %s is not connected", walletID)
	}
	for _, account := range w.Accounts() {
		if account.Address == address {
			m.active = Session{WalletID: walletID, Address: address}
			return nil
		}
	}
	return fmt.Errorf("wallet %s does not hold account %s", walletID, address)
}

// Active returns the current session selection.
func (m *Manager) Active() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// ActiveSender resolves the active account into an explicit sender value for
// planner and builder calls.
func (m *Manager) ActiveSender() (models.Sender, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active.Address == "" {
		return models.Sender{}, models.ErrNoActiveAccount
	}
	w, err := m.find(m.active.WalletID)
	if err != nil {
		return models.Sender{}, err
	}
	signer, err := w.Signer(m.active.Address)
	if err != nil {
		return models.Sender{}, fmt.Errorf("signer for %s: %w", m.active.Address, err)
	}
	return models.Sender{Address: m.active.Address, Signer: signer}, nil
}

func (m *Manager) find(walletID string) (Wallet, error) {
	for _, w := range m.wallets {
		if w.ID() == walletID {
			return w, nil
		}
	}
	return nil, fmt.Errorf("unknown wallet %q", walletID)
}
