package dbbadger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/sparkle-network/sparkled/internal/core/domain"
)

type tradeRepositoryImpl struct {
	db *DbManager
}

func (r tradeRepositoryImpl) InsertTrade(
	_ context.Context, trade *domain.Trade,
) error {
	if err := r.db.store.Insert(trade.Id, trade); err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrTradeExists
		}
		return err
	}
	return nil
}

func (r tradeRepositoryImpl) GetTrade(
	_ context.Context, tradeId string,
) (*domain.Trade, error) {
	var trade domain.Trade
	if err := r.db.store.Get(tradeId, &trade); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrTradeNotFound
		}
		return nil, err
	}
	return &trade, nil
}

func (r tradeRepositoryImpl) UpdateTrade(
	_ context.Context, tradeId string, expectedStatus domain.TradeStatus,
	updateFn func(t *domain.Trade) (*domain.Trade, error),
) (*domain.Trade, error) {
	var updatedTrade *domain.Trade

	// The read, status compare and write happen within a single badger
	// transaction so concurrent updates to the same trade serialize here.
	if err := r.db.store.Badger().Update(func(tx *badger.Txn) error {
		var trade domain.Trade
		if err := r.db.store.TxGet(tx, tradeId, &trade); err != nil {
			if err == badgerhold.ErrNotFound {
				return domain.ErrTradeNotFound
			}
			return err
		}
		if trade.Status != expectedStatus {
			return domain.ErrTradeConflict
		}

		updated, err := updateFn(&trade)
		if err != nil {
			return err
		}

		if err := r.db.store.TxUpdate(tx, tradeId, *updated); err != nil {
			return err
		}
		updatedTrade = updated
		return nil
	}); err != nil {
		// A commit that loses badger's write-conflict check means another
		// update to the same trade landed first.
		if errors.Is(err, badger.ErrConflict) {
			return nil, domain.ErrTradeConflict
		}
		return nil, err
	}

	trade := *updatedTrade
	return &trade, nil
}

func (r tradeRepositoryImpl) ListTrades(
	_ context.Context, filter domain.TradeFilter,
) ([]domain.Trade, error) {
	var query *badgerhold.Query
	if filter.Status != nil {
		query = badgerhold.Where("Status").Eq(*filter.Status)
		if filter.AssetId != "" {
			query = query.And("AssetId").Eq(filter.AssetId)
		}
	} else if filter.AssetId != "" {
		query = badgerhold.Where("AssetId").Eq(filter.AssetId)
	}

	var trades []domain.Trade
	if err := r.db.store.Find(&trades, query); err != nil {
		return nil, err
	}

	domain.SortTradesNewestFirst(trades)
	return trades, nil
}
