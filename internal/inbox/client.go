package inbox

import (
	"context"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/abi"
	"github.com/algorand/go-algorand-sdk/v2/client/v2/algod"
	sdkmodels "github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"
	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// ARC-59 router method signatures.
const (
	methodGetSendAssetInfo = "arc59_getSendAssetInfo(uint64,address)(uint64,uint64,bool,bool,uint64)"
	methodGetInbox         = "arc59_getInbox(address)address"
	methodOptRouterIn      = "arc59_optRouterIn(uint64)void"
	methodSendAsset        = "arc59_sendAsset(axfer,address,uint64)address"
)

// Client talks to one deployed ARC-59 router application.
type Client struct {
	algod              *algod.Client
	appID              uint64
	appAddress         types.Address
	confirmationRounds uint64
}

func NewClient(algodClient *algod.Client, appID uint64, confirmationRounds uint64) *Client {
	return &Client{
		algod:              algodClient,
		appID:              appID,
		appAddress:         crypto.GetApplicationAddress(appID),
		confirmationRounds: confirmationRounds,
	}
}

func (c *Client) AppID() uint64 { return c.appID }

// AppAddress is the router application's own account, the destination of
// funding payments and asset transfers.
func (c *Client) AppAddress() types.Address { return c.appAddress }

func (c *Client) SuggestedParams(ctx context.Context) (types.SuggestedParams, error) {
	return c.algod.SuggestedParams().Do(ctx)
}

// SimulateMethod performs a read-only, unsigned app call against the router
// and returns the decoded ABI return value. No signature is required: the
// simulation runs with an empty signature, a zero fee and unnamed-resource
// discovery enabled, so it can be replayed freely without side effects.
func (c *Client) SimulateMethod(ctx context.Context, signature string, args []interface{}, sender types.Address) (interface{}, error) {
	method, err := abi.MethodFromSignature(signature)
	if err != nil {
		return nil, fmt.Errorf("bad method signature %q: %w", signature, err)
	}

	appArgs, err := encodeMethodArgs(method, args)
	if err != nil {
		return nil, fmt.Errorf("encoding args for %s: %w", method.Name, err)
	}

	sp, err := c.SuggestedParams(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching suggested params: %w", err)
	}
	sp.Fee = 0
	sp.FlatFee = true

	txn, err := transaction.MakeApplicationNoOpTx(
		c.appID, appArgs, nil, nil, nil, sp,
		sender, nil, types.Digest{}, [32]byte{}, types.ZeroAddress)
	if err != nil {
		return nil, fmt.Errorf("building %s call: %w", method.Name, err)
	}

	response, err := c.algod.SimulateTransaction(sdkmodels.SimulateRequest{
		AllowEmptySignatures:  true,
		AllowUnnamedResources: true,
		FixSigners:            true,
		TxnGroups: []sdkmodels.SimulateRequestTransactionGroup{
			{Txns: []types.SignedTxn{{Txn: txn}}},
		},
	}).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("simulating %s: %w", method.Name, err)
	}

	if len(response.TxnGroups) == 0 || len(response.TxnGroups[0].TxnResults) == 0 {
		return nil, fmt.Errorf("simulating %s: empty simulation response", method.Name)
	}
	group := response.TxnGroups[0]
	if group.FailureMessage != "" {
		return nil, fmt.Errorf("simulating %s: %s", method.Name, group.FailureMessage)
	}

	return decodeMethodReturn(method, group.TxnResults[0].TxnResult.Logs)
}
