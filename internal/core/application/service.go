package application

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/sparkle-network/sparkled/internal/core/domain"
	"github.com/sparkle-network/sparkled/internal/core/ports"
)

// CreateTradeArgs groups the inputs needed to open a new trade. BuyerNode
// and LockTimeout are optional, the buyer may join later and the timeout
// defaults to domain.DefaultLockTimeout.
type CreateTradeArgs struct {
	AssetId     string
	SellerNode  string
	BuyerNode   string
	PriceUnits  uint64
	LockTimeout uint32
}

// Service is the coordinator facade. Every trade mutation goes through it
// under a per-trade lock, so at most one operation per trade id is in flight
// at any time, and through the repository's compare-and-transition
// primitive, so the expiry reaper can never clobber a trade that progressed
// concurrently.
type Service struct {
	repoManager ports.RepoManager
	stats       *statsAggregator
	locker      *tradeLocker
}

// NewService returns the coordinator facade backed by the given storage.
// Metrics collectors are registered against the given registry, which may be
// nil to skip metrics entirely.
func NewService(
	repoManager ports.RepoManager, metricsRegistry prometheus.Registerer,
) (*Service, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}

	return &Service{
		repoManager: repoManager,
		stats:       newStatsAggregator(metricsRegistry),
		locker:      newTradeLocker(),
	}, nil
}

// CreateTrade opens a new pending trade for the given asset.
func (s *Service) CreateTrade(
	ctx context.Context, args CreateTradeArgs,
) (*domain.Trade, error) {
	trade, err := domain.NewTrade(
		args.AssetId, args.SellerNode, args.BuyerNode,
		args.PriceUnits, args.LockTimeout,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repoManager.TradeRepository().InsertTrade(ctx, trade); err != nil {
		return nil, err
	}
	s.stats.addCreated()

	log.WithFields(log.Fields{
		"trade_id": trade.Id,
		"asset_id": trade.AssetId,
	}).Debug("trade created")

	return trade, nil
}

// SubmitSellerArtifact attaches the seller's signed transaction to a pending
// trade, advancing it to AwaitingBuyer.
func (s *Service) SubmitSellerArtifact(
	ctx context.Context, tradeId, artifact string,
) (*domain.Trade, error) {
	s.locker.lock(tradeId)
	defer s.locker.unlock(tradeId)

	return s.transition(
		ctx, tradeId, domain.TradeStatusPending,
		func(t *domain.Trade) error {
			return t.SubmitSellerArtifact(artifact)
		},
	)
}

// SubmitBuyerParticipation attaches the payment lock hash and the buyer's
// signed transaction to a trade awaiting a buyer, advancing it to
// ReadyToSettle.
func (s *Service) SubmitBuyerParticipation(
	ctx context.Context, tradeId, lockHash, artifact string,
) (*domain.Trade, error) {
	s.locker.lock(tradeId)
	defer s.locker.unlock(tradeId)

	return s.transition(
		ctx, tradeId, domain.TradeStatusAwaitingBuyer,
		func(t *domain.Trade) error {
			return t.JoinBuyer(lockHash, artifact)
		},
	)
}

// SettleTrade completes a ready trade with the reference of the broadcast
// transaction and the revealed lock preimage.
func (s *Service) SettleTrade(
	ctx context.Context, tradeId, settlementRef, preimage string,
) (*domain.Trade, error) {
	s.locker.lock(tradeId)
	defer s.locker.unlock(tradeId)

	trade, err := s.transition(
		ctx, tradeId, domain.TradeStatusReadyToSettle,
		func(t *domain.Trade) error {
			return t.Settle(settlementRef, preimage)
		},
	)
	if err != nil {
		return nil, err
	}
	s.stats.addCompleted()

	log.WithFields(log.Fields{
		"trade_id":       trade.Id,
		"settlement_ref": trade.SettlementRef,
	}).Info("trade settled")

	return trade, nil
}

// GetTrade returns the trade with the given id.
func (s *Service) GetTrade(
	ctx context.Context, tradeId string,
) (*domain.Trade, error) {
	return s.repoManager.TradeRepository().GetTrade(ctx, tradeId)
}

// ListTrades returns the trades matching the filter, newest first.
func (s *Service) ListTrades(
	ctx context.Context, filter domain.TradeFilter,
) ([]domain.Trade, error) {
	return s.repoManager.TradeRepository().ListTrades(ctx, filter)
}

// Stats returns a snapshot of the trade counters.
func (s *Service) Stats() TradeStats {
	return s.stats.snapshot()
}

// transition reads the trade to surface NotFound and illegal statuses with
// proper errors, then applies the state change through the repository's
// compare-and-transition primitive. A conflict can still leak through when
// the reaper expires the trade between the read and the update, which is
// exactly the race the primitive exists to settle.
func (s *Service) transition(
	ctx context.Context, tradeId string, requiredStatus domain.TradeStatus,
	apply func(t *domain.Trade) error,
) (*domain.Trade, error) {
	repo := s.repoManager.TradeRepository()

	current, err := repo.GetTrade(ctx, tradeId)
	if err != nil {
		return nil, err
	}
	if current.Status != requiredStatus {
		return nil, &domain.InvalidStatusError{Status: current.Status}
	}

	return repo.UpdateTrade(
		ctx, tradeId, requiredStatus,
		func(t *domain.Trade) (*domain.Trade, error) {
			if err := apply(t); err != nil {
				return nil, err
			}
			return t, nil
		},
	)
}
