package inmemory

import (
	"context"

	"github.com/sparkle-network/sparkled/internal/core/domain"
)

type tradeRepositoryImpl struct {
	store *tradeInmemoryStore
}

func newTradeRepositoryImpl(store *tradeInmemoryStore) domain.TradeRepository {
	return tradeRepositoryImpl{store}
}

func (r tradeRepositoryImpl) InsertTrade(
	_ context.Context, trade *domain.Trade,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if _, ok := r.store.trades[trade.Id]; ok {
		return domain.ErrTradeExists
	}

	r.store.trades[trade.Id] = *trade
	return nil
}

func (r tradeRepositoryImpl) GetTrade(
	_ context.Context, tradeId string,
) (*domain.Trade, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	trade, ok := r.store.trades[tradeId]
	if !ok {
		return nil, domain.ErrTradeNotFound
	}
	return &trade, nil
}

func (r tradeRepositoryImpl) UpdateTrade(
	_ context.Context, tradeId string, expectedStatus domain.TradeStatus,
	updateFn func(t *domain.Trade) (*domain.Trade, error),
) (*domain.Trade, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	currentTrade, ok := r.store.trades[tradeId]
	if !ok {
		return nil, domain.ErrTradeNotFound
	}
	if currentTrade.Status != expectedStatus {
		return nil, domain.ErrTradeConflict
	}

	// updateFn works on a copy, a rejected update leaves the record intact.
	updatedTrade, err := updateFn(&currentTrade)
	if err != nil {
		return nil, err
	}

	r.store.trades[tradeId] = *updatedTrade

	trade := *updatedTrade
	return &trade, nil
}

func (r tradeRepositoryImpl) ListTrades(
	_ context.Context, filter domain.TradeFilter,
) ([]domain.Trade, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	trades := make([]domain.Trade, 0, len(r.store.trades))
	for _, trade := range r.store.trades {
		if filter.Status != nil && trade.Status != *filter.Status {
			continue
		}
		if filter.AssetId != "" && trade.AssetId != filter.AssetId {
			continue
		}
		trades = append(trades, trade)
	}

	domain.SortTradesNewestFirst(trades)
	return trades, nil
}
