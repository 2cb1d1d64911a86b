package inbox

import (
	"context"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/abi"
	"github.com/algorand/go-algorand-sdk/v2/client/v2/algod"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"go.uber.org/zap"

	"arc59-send-receive-go/internal/models"
)

// Builder assembles and submits the atomic transfer group. Assembly
// (BuildGroup) does no I/O so it can be exercised without a node; Submit
// performs the one-shot sign-and-send.
type Builder struct {
	algod              *algod.Client
	appID              uint64
	appAddress         types.Address
	confirmationRounds uint64
}

func NewBuilder(client *Client) *Builder {
	return &Builder{
		algod:              client.algod,
		appID:              client.appID,
		appAddress:         client.appAddress,
		confirmationRounds: client.confirmationRounds,
	}
}

// BuildGroup lays out the group in its required order:
//
//  1. funding payment to the router, when MBR or claim funding is owed
//  2. arc59_optRouterIn, when the router does not yet hold the asset
//  3. the asset transfer handing the amount to the router
//  4. arc59_sendAsset referencing that transfer, carrying the flat fee and
//     the box/account/asset references from the plan
//
// The asset transfer is passed to the composer as the send call's
// transaction argument, which pins it immediately before the call inside
// one atomic group.
func (b *Builder) BuildGroup(req models.TransferRequest, sender models.Sender, plan models.TransferPlan, sp types.SuggestedParams) (*transaction.AtomicTransactionComposer, error) {
	senderAddr, err := types.DecodeAddress(sender.Address)
	if err != nil {
		return nil, fmt.Errorf("decode sender: %w", err)
	}

	var atc transaction.AtomicTransactionComposer

	if funding := plan.MBRRequired + plan.ReceiverClaimFunding; funding > 0 {
		payment, err := transaction.MakePaymentTxn(
			sender.Address, b.appAddress.String(), funding, nil, "", sp)
		if err != nil {
			return nil, fmt.Errorf("build funding payment: %w", err)
		}
		if err := atc.AddTransaction(transaction.TransactionWithSigner{
			Txn:    payment,
			Signer: sender.Signer,
		}); err != nil {
			return nil, fmt.Errorf("add funding payment: %w", err)
		}
	}

	if !plan.RouterOptedIn {
		optIn, err := abi.MethodFromSignature(methodOptRouterIn)
		if err != nil {
			return nil, fmt.Errorf("parse opt-in method: %w", err)
		}
		if err := atc.AddMethodCall(transaction.AddMethodCallParams{
			AppID:           b.appID,
			Method:          optIn,
			MethodArgs:      []interface{}{req.AssetID},
			Sender:          senderAddr,
			SuggestedParams: sp,
			Signer:          sender.Signer,
		}); err != nil {
			return nil, fmt.Errorf("add router opt-in call: %w", err)
		}
	}

	assetTransfer, err := transaction.MakeAssetTransferTxn(
		sender.Address, b.appAddress.String(), req.Amount, nil, sp, "", req.AssetID)
	if err != nil {
		return nil, fmt.Errorf("build asset transfer: %w", err)
	}

	receiverAddr, err := types.DecodeAddress(req.Receiver)
	if err != nil {
		return nil, fmt.Errorf("decode receiver: %w", err)
	}

	sendAsset, err := abi.MethodFromSignature(methodSendAsset)
	if err != nil {
		return nil, fmt.Errorf("parse send-asset method: %w", err)
	}

	sendParams := sp
	sendParams.Fee = types.MicroAlgos(plan.Fee)
	sendParams.FlatFee = true

	if err := atc.AddMethodCall(transaction.AddMethodCallParams{
		AppID:  b.appID,
		Method: sendAsset,
		MethodArgs: []interface{}{
			transaction.TransactionWithSigner{Txn: assetTransfer, Signer: sender.Signer},
			receiverAddr[:],
			plan.ReceiverClaimFunding,
		},
		Sender:          senderAddr,
		SuggestedParams: sendParams,
		Signer:          sender.Signer,
		ForeignAccounts: plan.Accounts,
		ForeignAssets:   plan.ForeignAssets,
		BoxReferences:   plan.BoxReferences,
	}); err != nil {
		return nil, fmt.Errorf("add send-asset call: %w", err)
	}

	return &atc, nil
}

// Submit gathers the sender's signatures, submits the group as one unit and
// waits for confirmation. There is no retry: any failure means the caller
// must re-plan, because the simulated facts may have gone stale.
func (b *Builder) Submit(ctx context.Context, atc *transaction.AtomicTransactionComposer) (models.SubmissionReceipt, error) {
	result, err := atc.Execute(b.algod, ctx, b.confirmationRounds)
	if err != nil {
		return models.SubmissionReceipt{}, &models.SubmissionError{Stage: "execute group", Err: err}
	}

	return models.SubmissionReceipt{
		GroupSize:      atc.Count(),
		TxIDs:          result.TxIDs,
		ConfirmedRound: result.ConfirmedRound,
	}, nil
}

// BuildAndSubmit runs the full assemble-sign-submit sequence for a planned
// transfer.
func (b *Builder) BuildAndSubmit(ctx context.Context, req models.TransferRequest, sender models.Sender, plan models.TransferPlan) (models.SubmissionReceipt, error) {
	sp, err := b.algod.SuggestedParams().Do(ctx)
	if err != nil {
		return models.SubmissionReceipt{}, &models.SubmissionError{Stage: "suggested params", Err: err}
	}

	atc, err := b.BuildGroup(req, sender, plan, sp)
	if err != nil {
		return models.SubmissionReceipt{}, &models.SubmissionError{Stage: "build group", Err: err}
	}

	receipt, err := b.Submit(ctx, atc)
	if err != nil {
		return models.SubmissionReceipt{}, err
	}

	zap.L().Info("Transfer group confirmed",
		zap.Uint64("asset_id", req.AssetID),
		zap.Uint64("amount", req.Amount),
		zap.String("receiver", req.Receiver),
		zap.Int("group_size", receipt.GroupSize),
		zap.Uint64("confirmed_round", receipt.ConfirmedRound))
	return receipt, nil
}
