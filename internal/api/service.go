package api

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"arc59-send-receive-go/internal/models"
)

// AssetLister is the directory capability the service consumes.
type AssetLister interface {
	ListDetailedHoldings(ctx context.Context, address string) ([]models.AssetDetails, error)
}

// TransferPlanner simulates a transfer and derives the plan.
type TransferPlanner interface {
	Plan(ctx context.Context, req models.TransferRequest, sender models.Sender) (models.TransferPlan, error)
}

// GroupSubmitter assembles, signs and submits the planned group.
type GroupSubmitter interface {
	BuildAndSubmit(ctx context.Context, req models.TransferRequest, sender models.Sender, plan models.TransferPlan) (models.SubmissionReceipt, error)
}

// SenderSource resolves the session's active signing account.
type SenderSource interface {
	ActiveSender() (models.Sender, error)
}

// TransferService drives the full client protocol: list assets, validate a
// request locally, plan under simulation, then build and submit the atomic
// group. One transfer may be in flight at a time.
type TransferService struct {
	directory AssetLister
	planner   TransferPlanner
	builder   GroupSubmitter
	session   SenderSource

	mu       sync.Mutex
	inFlight bool

	// Last complete directory pass per address. This is the displayed
	// balance that local validation checks against, and the only state the
	// service keeps.
	holdingsMu   sync.Mutex
	lastHoldings map[string][]models.AssetDetails
}

func NewTransferService(directory AssetLister, planner TransferPlanner, builder GroupSubmitter, session SenderSource) *TransferService {
	return &TransferService{
		directory:    directory,
		planner:      planner,
		builder:      builder,
		session:      session,
		lastHoldings: make(map[string][]models.AssetDetails),
	}
}

// ListAssets runs a complete directory pass for an address and remembers the
// result as the displayed balances.
func (s *TransferService) ListAssets(ctx context.Context, address string) ([]models.AssetDetails, error) {
	details, err := s.directory.ListDetailedHoldings(ctx, address)
	if err != nil {
		zap.L().Error("Asset directory pass failed",
			zap.String("address", address), zap.Error(err))
		return nil, err
	}

	s.holdingsMu.Lock()
	s.lastHoldings[address] = details
	s.holdingsMu.Unlock()
	return details, nil
}

func (s *TransferService) displayedHolding(address string, assetID uint64) (models.AssetDetails, bool) {
	s.holdingsMu.Lock()
	defer s.holdingsMu.Unlock()
	for _, detail := range s.lastHoldings[address] {
		if detail.AssetID == assetID {
			return detail, true
		}
	}
	return models.AssetDetails{}, false
}

func (s *TransferService) invalidateHoldings(address string) {
	s.holdingsMu.Lock()
	defer s.holdingsMu.Unlock()
	delete(s.lastHoldings, address)
}

func (s *TransferService) acquireInFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return false
	}
	s.inFlight = true
	return true
}

func (s *TransferService) releaseInFlight() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}
