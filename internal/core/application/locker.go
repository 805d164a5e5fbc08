package application

import "sync"

// tradeLocker serializes the mutating operations targeting the same trade
// id. Locks are reference counted and dropped as soon as nobody holds or
// waits for them, so the map does not grow with the number of trades.
type tradeLocker struct {
	mtx     sync.Mutex
	lockers map[string]*tradeLock
}

type tradeLock struct {
	mtx  sync.Mutex
	refs int
}

func newTradeLocker() *tradeLocker {
	return &tradeLocker{lockers: make(map[string]*tradeLock)}
}

func (l *tradeLocker) lock(tradeId string) {
	l.mtx.Lock()
	entry, ok := l.lockers[tradeId]
	if !ok {
		entry = &tradeLock{}
		l.lockers[tradeId] = entry
	}
	entry.refs++
	l.mtx.Unlock()

	entry.mtx.Lock()
}

func (l *tradeLocker) unlock(tradeId string) {
	l.mtx.Lock()
	entry := l.lockers[tradeId]
	entry.refs--
	if entry.refs <= 0 {
		delete(l.lockers, tradeId)
	}
	l.mtx.Unlock()

	entry.mtx.Unlock()
}
