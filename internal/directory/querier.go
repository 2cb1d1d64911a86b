package directory

import (
	"context"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"
	"github.com/algorand/go-algorand-sdk/v2/client/v2/indexer"
)

// Querier is the slice of the indexer API the directory client consumes.
type Querier interface {
	// AccountAssets returns one page of asset holdings for an address. An
	// empty nextToken requests the first page.
	AccountAssets(ctx context.Context, address, nextToken string, limit uint64) (models.AssetHoldingsResponse, error)

	// AssetByID returns the on-chain parameters of a single asset.
	AssetByID(ctx context.Context, assetID uint64) (models.Asset, error)
}

type indexerQuerier struct {
	client *indexer.Client
}

// NewIndexerQuerier wraps an indexer client as a Querier.
func NewIndexerQuerier(client *indexer.Client) Querier {
	return &indexerQuerier{client: client}
}

func (q *indexerQuerier) AccountAssets(ctx context.Context, address, nextToken string, limit uint64) (models.AssetHoldingsResponse, error) {
	query := q.client.LookupAccountAssets(address).Limit(limit)
	if nextToken != "" {
		query = query.Next(nextToken)
	}
	return query.Do(ctx)
}

func (q *indexerQuerier) AssetByID(ctx context.Context, assetID uint64) (models.Asset, error) {
	_, asset, err := q.client.LookupAssetByID(assetID).Do(ctx)
	return asset, err
}
