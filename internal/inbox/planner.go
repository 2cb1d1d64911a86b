package inbox

import (
	"context"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"go.uber.org/zap"

	"arc59-send-receive-go/internal/models"
)

// AppCaller is the slice of the router client the planner needs: read-only
// simulated method calls plus the application id for box references.
type AppCaller interface {
	SimulateMethod(ctx context.Context, signature string, args []interface{}, sender types.Address) (interface{}, error)
	AppID() uint64
}

// Planner derives a TransferPlan from two router simulations. Planning has
// no side effects and holds no state, so an attempt can always be replayed
// from scratch when on-chain facts shift.
type Planner struct {
	caller AppCaller
}

func NewPlanner(caller AppCaller) *Planner {
	return &Planner{caller: caller}
}

// Plan simulates arc59_getSendAssetInfo and arc59_getInbox for the requested
// transfer and computes the flat fee and resource references the real send
// call will need.
func (p *Planner) Plan(ctx context.Context, req models.TransferRequest, sender models.Sender) (models.TransferPlan, error) {
	senderAddr, err := types.DecodeAddress(sender.Address)
	if err != nil {
		return models.TransferPlan{}, &models.PlanningError{Stage: "decode sender", Err: err}
	}
	receiverAddr, err := types.DecodeAddress(req.Receiver)
	if err != nil {
		return models.TransferPlan{}, &models.PlanningError{Stage: "decode receiver", Err: err}
	}

	infoReturn, err := p.caller.SimulateMethod(ctx, methodGetSendAssetInfo,
		[]interface{}{req.AssetID, receiverAddr[:]}, senderAddr)
	if err != nil {
		return models.TransferPlan{}, &models.PlanningError{Stage: "get send asset info", Err: err}
	}
	outcome, err := decodeSendAssetInfo(infoReturn)
	if err != nil {
		return models.TransferPlan{}, &models.PlanningError{Stage: "decode send asset info", Err: err}
	}

	inboxReturn, err := p.caller.SimulateMethod(ctx, methodGetInbox,
		[]interface{}{receiverAddr[:]}, senderAddr)
	if err != nil {
		return models.TransferPlan{}, &models.PlanningError{Stage: "get inbox", Err: err}
	}
	inboxAddr, err := addressFromReturn(inboxReturn)
	if err != nil {
		return models.TransferPlan{}, &models.PlanningError{Stage: "decode inbox", Err: err}
	}

	plan := models.TransferPlan{
		SimulationOutcome: outcome,
		Fee:               computeFee(outcome.InnerTxnCount, outcome.ReceiverClaimFunding),
		InboxAddress:      inboxAddr.String(),
		BoxReferences: []types.AppBoxReference{
			{AppID: p.caller.AppID(), Name: receiverAddr[:]},
		},
		Accounts:      []string{req.Receiver, inboxAddr.String()},
		ForeignAssets: []uint64{req.AssetID},
	}

	zap.L().Info("Transfer planned",
		zap.Uint64("asset_id", req.AssetID),
		zap.String("receiver", req.Receiver),
		zap.Uint64("inner_txns", outcome.InnerTxnCount),
		zap.Uint64("mbr", outcome.MBRRequired),
		zap.Bool("router_opted_in", outcome.RouterOptedIn),
		zap.Bool("receiver_opted_in", outcome.ReceiverOptedIn),
		zap.Uint64("claim_funding", outcome.ReceiverClaimFunding),
		zap.Uint64("fee", plan.Fee),
		zap.String("inbox", plan.InboxAddress))
	return plan, nil
}

// computeFee covers every inner transaction the router will issue, one extra
// inner payment when claim funding is attached, and the outer call itself.
func computeFee(innerTxnCount, receiverClaimFunding uint64) uint64 {
	totalInner := innerTxnCount
	if receiverClaimFunding > 0 {
		totalInner++
	}
	return uint64(transaction.MinTxnFee) * (totalInner + 1)
}

// decodeSendAssetInfo unpacks the arc59_getSendAssetInfo 5-tuple in its
// fixed order: inner txn count, MBR, router opted in, receiver opted in,
// receiver claim funding.
func decodeSendAssetInfo(value interface{}) (models.SimulationOutcome, error) {
	tuple, ok := value.([]interface{})
	if !ok {
		return models.SimulationOutcome{}, fmt.Errorf("expected tuple, got %T", value)
	}
	if len(tuple) != 5 {
		return models.SimulationOutcome{}, fmt.Errorf("expected 5 elements, got %d", len(tuple))
	}

	var outcome models.SimulationOutcome
	var err error
	if outcome.InnerTxnCount, err = asUint64(tuple[0]); err != nil {
		return models.SimulationOutcome{}, fmt.Errorf("inner txn count: %w", err)
	}
	if outcome.MBRRequired, err = asUint64(tuple[1]); err != nil {
		return models.SimulationOutcome{}, fmt.Errorf("mbr: %w", err)
	}
	if outcome.RouterOptedIn, err = asBool(tuple[2]); err != nil {
		return models.SimulationOutcome{}, fmt.Errorf("router opted in: %w", err)
	}
	if outcome.ReceiverOptedIn, err = asBool(tuple[3]); err != nil {
		return models.SimulationOutcome{}, fmt.Errorf("receiver opted in: %w", err)
	}
	if outcome.ReceiverClaimFunding, err = asUint64(tuple[4]); err != nil {
		return models.SimulationOutcome{}, fmt.Errorf("claim funding: %w", err)
	}
	return outcome, nil
}
