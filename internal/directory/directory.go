package directory

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"strconv"

	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"arc59-send-receive-go/internal/models"
)

// Client lists and enriches the fungible assets an address holds.
type Client struct {
	querier     Querier
	limiter     *rate.Limiter
	meta        *gocache.Cache
	pageLimit   uint64
	concurrency int
}

// assetMeta is the immutable slice of asset parameters worth caching.
// Holdings and balances are never cached.
type assetMeta struct {
	decimals uint64
	name     string
	unitName string
}

func NewClient(querier Querier, cfg models.DirectoryConfig) *Client {
	concurrency := cfg.EnrichConcurrency
	if concurrency < 1 {
		concurrency = 1
	}
	pageLimit := cfg.PageLimit
	if pageLimit == 0 {
		pageLimit = 1000
	}
	return &Client{
		querier:     querier,
		limiter:     rate.NewLimiter(rate.Limit(cfg.EnrichRate), 1),
		meta:        gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		pageLimit:   pageLimit,
		concurrency: concurrency,
	}
}

// ListHoldings pages through the indexer until it stops returning a
// continuation token. The token's absence is the sole termination signal; a
// full page by itself proves nothing about further data.
func (c *Client) ListHoldings(ctx context.Context, address string) ([]models.AssetHolding, error) {
	var holdings []models.AssetHolding
	seen := make(map[uint64]bool)
	nextToken := ""

	for {
		page, err := c.querier.AccountAssets(ctx, address, nextToken, c.pageLimit)
		if err != nil {
			return nil, &models.IndexingServiceError{Op: "lookup account assets", Err: err}
		}

		for _, held := range page.Assets {
			if seen[held.AssetId] {
				zap.L().Warn("Indexer returned duplicate asset holding",
					zap.String("address", address),
					zap.Uint64("asset_id", held.AssetId))
				continue
			}
			seen[held.AssetId] = true
			holdings = append(holdings, models.AssetHolding{
				AssetID:   held.AssetId,
				RawAmount: held.Amount,
			})
		}

		if page.NextToken == "" {
			return holdings, nil
		}
		nextToken = page.NextToken
	}
}

// EnrichHolding resolves the asset's decimals, name and unit name and
// computes the exact display amount.
func (c *Client) EnrichHolding(ctx context.Context, holding models.AssetHolding) (models.AssetDetails, error) {
	meta, err := c.lookupMeta(ctx, holding.AssetID)
	if err != nil {
		return models.AssetDetails{}, err
	}

	return models.AssetDetails{
		AssetHolding:  holding,
		Decimals:      meta.decimals,
		DisplayAmount: displayAmount(holding.RawAmount, meta.decimals),
		Name:          meta.name,
		UnitName:      meta.unitName,
	}, nil
}

// ListDetailedHoldings runs a complete list-and-enrich pass. Enrichment is
// fanned out with bounded concurrency under a shared request-rate envelope;
// either every holding is enriched or an error is returned, never a partial
// list.
func (c *Client) ListDetailedHoldings(ctx context.Context, address string) ([]models.AssetDetails, error) {
	holdings, err := c.ListHoldings(ctx, address)
	if err != nil {
		return nil, err
	}

	details := make([]models.AssetDetails, len(holdings))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(c.concurrency)

	for i, holding := range holdings {
		group.Go(func() error {
			enriched, err := c.EnrichHolding(groupCtx, holding)
			if err != nil {
				return err
			}
			details[i] = enriched
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(details, func(i, j int) bool {
		return details[i].AssetID < details[j].AssetID
	})

	zap.L().Debug("Asset directory pass complete",
		zap.String("address", address),
		zap.Int("assets", len(details)))
	return details, nil
}

func (c *Client) lookupMeta(ctx context.Context, assetID uint64) (assetMeta, error) {
	key := strconv.FormatUint(assetID, 10)
	if cached, ok := c.meta.Get(key); ok {
		return cached.(assetMeta), nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return assetMeta{}, &models.AssetLookupError{AssetID: assetID, Err: err}
	}

	asset, err := c.querier.AssetByID(ctx, assetID)
	if err != nil {
		return assetMeta{}, &models.AssetLookupError{AssetID: assetID, Err: err}
	}
	if asset.Index != assetID {
		return assetMeta{}, &models.AssetLookupError{
			AssetID: assetID,
			Err:     fmt.Errorf("indexer returned asset %d", asset.Index),
		}
	}

	meta := assetMeta{
		decimals: asset.Params.Decimals,
		name:     decodeText(asset.Params.NameB64, asset.Params.Name),
		unitName: decodeText(asset.Params.UnitNameB64, asset.Params.UnitName),
	}
	c.meta.SetDefault(key, meta)
	return meta, nil
}

// displayAmount scales a base-unit balance by 10^-decimals, exactly.
func displayAmount(raw uint64, decimals uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(raw), -int32(decimals))
}
