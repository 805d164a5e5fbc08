package inmemory

import (
	"sync"

	"github.com/sparkle-network/sparkled/internal/core/domain"
	"github.com/sparkle-network/sparkled/internal/core/ports"
)

type tradeInmemoryStore struct {
	trades map[string]domain.Trade
	locker *sync.Mutex
}

// DbManager is the in-memory storage backend. It satisfies the repository
// contract without any durability, which makes it the reference backend for
// tests and throwaway deployments.
type DbManager struct {
	tradeStore *tradeInmemoryStore
}

// NewDbManager returns an empty in-memory storage backend.
func NewDbManager() ports.RepoManager {
	return &DbManager{
		tradeStore: &tradeInmemoryStore{
			trades: make(map[string]domain.Trade),
			locker: &sync.Mutex{},
		},
	}
}

func (d *DbManager) TradeRepository() domain.TradeRepository {
	return newTradeRepositoryImpl(d.tradeStore)
}

func (d *DbManager) Close() {}
