package api

import (
	"context"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"arc59-send-receive-go/internal/models"
)

// Send validates a transfer request against the displayed balances, plans it
// under simulation and submits the atomic group. Every attempt starts from a
// fresh plan; nothing from a failed attempt is reused.
func (s *TransferService) Send(ctx context.Context, req models.TransferRequest) (models.SubmissionReceipt, error) {
	if !s.acquireInFlight() {
		return models.SubmissionReceipt{}, models.ErrTransferInFlight
	}
	defer s.releaseInFlight()

	attemptID := uuid.New().String()

	sender, err := s.session.ActiveSender()
	if err != nil {
		return models.SubmissionReceipt{}, &models.ValidationError{Reason: "no connected signer"}
	}

	if err := s.validate(req, sender); err != nil {
		zap.L().Info("Transfer request rejected",
			zap.String("attempt_id", attemptID),
			zap.Uint64("asset_id", req.AssetID),
			zap.Uint64("amount", req.Amount),
			zap.String("receiver", req.Receiver),
			zap.Error(err))
		return models.SubmissionReceipt{}, err
	}

	zap.L().Info("Processing transfer",
		zap.String("attempt_id", attemptID),
		zap.String("sender", sender.Address),
		zap.Uint64("asset_id", req.AssetID),
		zap.Uint64("amount", req.Amount),
		zap.String("receiver", req.Receiver))

	plan, err := s.planner.Plan(ctx, req, sender)
	if err != nil {
		zap.L().Error("Transfer planning failed",
			zap.String("attempt_id", attemptID), zap.Error(err))
		return models.SubmissionReceipt{}, err
	}

	receipt, err := s.builder.BuildAndSubmit(ctx, req, sender, plan)
	if err != nil {
		zap.L().Error("Transfer submission failed",
			zap.String("attempt_id", attemptID), zap.Error(err))
		return models.SubmissionReceipt{}, err
	}
	receipt.AttemptID = attemptID

	// The displayed balances are stale now; the next list is a fresh pass.
	s.invalidateHoldings(sender.Address)

	zap.L().Info("Transfer processed successfully",
		zap.String("attempt_id", attemptID),
		zap.Strings("tx_ids", receipt.TxIDs),
		zap.Uint64("confirmed_round", receipt.ConfirmedRound))
	return receipt, nil
}

// validate applies the local checks that must pass before any network call:
// a positive amount within the displayed balance and a well-formed receiver.
func (s *TransferService) validate(req models.TransferRequest, sender models.Sender) error {
	if req.Amount == 0 {
		return &models.ValidationError{Reason: "amount must be positive"}
	}
	if _, err := types.DecodeAddress(req.Receiver); err != nil {
		return &models.ValidationError{Reason: "malformed receiver address"}
	}

	held, ok := s.displayedHolding(sender.Address, req.AssetID)
	if !ok {
		return &models.ValidationError{
			Reason: fmt.Sprintf("asset %d: %v", req.AssetID, models.ErrAssetNotHeld),
		}
	}
	if req.Amount > held.RawAmount {
		return &models.ValidationError{
			Reason: fmt.Sprintf("amount %d exceeds held balance %d", req.Amount, held.RawAmount),
		}
	}
	return nil
}
