package models

import (
	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/shopspring/decimal"
)

// AssetHolding is one (account, asset) balance as reported by the indexer.
type AssetHolding struct {
	AssetID   uint64 `json:"asset_id"`
	RawAmount uint64 `json:"raw_amount"` // base units
}

// AssetDetails is a holding enriched with the asset's on-chain parameters.
type AssetDetails struct {
	AssetHolding
	Decimals      uint64          `json:"decimals"`
	DisplayAmount decimal.Decimal `json:"display_amount"` // RawAmount scaled by 10^-Decimals
	Name          string          `json:"name"`
	UnitName      string          `json:"unit_name"`
}

// TransferRequest describes one user-initiated asset send.
type TransferRequest struct {
	AssetID  uint64 `json:"asset_id"`
	Amount   uint64 `json:"amount"` // base units
	Receiver string `json:"receiver"`
}

// SimulationOutcome holds the facts learned by simulating
// arc59_getSendAssetInfo. It is recomputed for every attempt and never
// cached: opt-in and funding state can change between attempts.
type SimulationOutcome struct {
	InnerTxnCount        uint64 `json:"inner_txn_count"`
	MBRRequired          uint64 `json:"mbr_required"` // microalgos
	RouterOptedIn        bool   `json:"router_opted_in"`
	ReceiverOptedIn      bool   `json:"receiver_opted_in"`
	ReceiverClaimFunding uint64 `json:"receiver_claim_funding"` // microalgos
}

// TransferPlan is a SimulationOutcome plus everything derived from it that
// the group builder needs: the flat fee for the outer call, the receiver's
// inbox address and the resource references the real call requires.
type TransferPlan struct {
	SimulationOutcome

	Fee           uint64                  `json:"fee"` // microalgos, flat fee on the send call
	InboxAddress  string                  `json:"inbox_address"`
	BoxReferences []types.AppBoxReference `json:"-"`
	Accounts      []string                `json:"accounts"`
	ForeignAssets []uint64                `json:"foreign_assets"`
}

// Sender binds an address to its signing capability. The signer is supplied
// by the wallet layer; no key material lives outside it.
type Sender struct {
	Address string
	Signer  transaction.TransactionSigner
}

// SubmissionReceipt reports a confirmed atomic group submission.
type SubmissionReceipt struct {
	AttemptID      string   `json:"attempt_id"`
	GroupSize      int      `json:"group_size"`
	TxIDs          []string `json:"tx_ids"`
	ConfirmedRound uint64   `json:"confirmed_round"`
}
