package domain

import (
	"context"
	"sort"
)

// TradeFilter narrows down the trades returned by ListTrades. Zero values
// match everything.
type TradeFilter struct {
	Status  *TradeStatus
	AssetId string
}

// TradeRepository is the abstraction for any kind of database intended to
// persist Trades. Implementations own the stored records: callers always
// receive copies, never handles into the underlying storage.
type TradeRepository interface {
	// InsertTrade adds a new trade, failing with ErrTradeExists if its id is
	// already taken.
	InsertTrade(ctx context.Context, trade *Trade) error
	// GetTrade returns the trade with the given id, or ErrTradeNotFound.
	GetTrade(ctx context.Context, tradeId string) (*Trade, error)
	// UpdateTrade atomically applies updateFn to the trade with the given id
	// and stores the result. It fails with ErrTradeConflict, leaving the
	// record untouched, if the trade status differs from expectedStatus at
	// the time of the update. Together with InsertTrade this is the only
	// mutation primitive, so no transition can ever be lost or applied twice.
	UpdateTrade(
		ctx context.Context, tradeId string, expectedStatus TradeStatus,
		updateFn func(t *Trade) (*Trade, error),
	) (*Trade, error)
	// ListTrades returns a snapshot of the trades matching the filter,
	// newest first, ties broken by id.
	ListTrades(ctx context.Context, filter TradeFilter) ([]Trade, error)
}

// SortTradesNewestFirst orders trades by descending creation time, breaking
// ties by id for a deterministic listing.
func SortTradesNewestFirst(trades []Trade) {
	sort.Slice(trades, func(i, j int) bool {
		if trades[i].CreatedAt != trades[j].CreatedAt {
			return trades[i].CreatedAt > trades[j].CreatedAt
		}
		return trades[i].Id < trades[j].Id
	})
}
