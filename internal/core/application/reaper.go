package application

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/sparkle-network/sparkled/internal/core/domain"
)

// Reaper periodically sweeps pending trades past their expiry time into the
// Expired status. It goes through the same compare-and-transition primitive
// as user-driven operations, so a trade advanced concurrently between the
// scan and the update simply loses the race and is skipped.
type Reaper struct {
	svc      *Service
	interval time.Duration
	quit     chan struct{}
	done     chan struct{}
}

// NewReaper returns a reaper sweeping the trades of the given coordinator at
// the given interval.
func NewReaper(svc *Service, interval time.Duration) *Reaper {
	return &Reaper{
		svc:      svc,
		interval: interval,
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start spawns the periodic sweep and returns immediately.
func (r *Reaper) Start() {
	log.WithField("interval", r.interval).Debug("trade reaper: started")
	go r.loop()
}

// Stop terminates the periodic sweep and waits for an in-flight one to
// return. A sweep that already expired some trades is not rolled back.
func (r *Reaper) Stop() {
	close(r.quit)
	<-r.done
	log.Debug("trade reaper: stopped")
}

func (r *Reaper) loop() {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.quit:
			return
		case <-ticker.C:
			count, err := r.Sweep(context.Background())
			if err != nil {
				log.WithError(err).Warn("trade reaper: sweep failed")
				continue
			}
			if count > 0 {
				log.WithField("expired", count).Info(
					"trade reaper: expired stale trades",
				)
			}
		}
	}
}

// Sweep expires every pending trade whose expiry time has passed and returns
// the number of trades expired in this run.
func (r *Reaper) Sweep(ctx context.Context) (int, error) {
	repo := r.svc.repoManager.TradeRepository()

	pending := domain.TradeStatusPending
	trades, err := repo.ListTrades(ctx, domain.TradeFilter{Status: &pending})
	if err != nil {
		return 0, err
	}

	now := time.Now().Unix()
	count := 0
	for i := range trades {
		trade := &trades[i]
		if !trade.IsExpirable(now) {
			continue
		}

		if _, err := repo.UpdateTrade(
			ctx, trade.Id, domain.TradeStatusPending,
			func(t *domain.Trade) (*domain.Trade, error) {
				if err := t.Expire(now); err != nil {
					return nil, err
				}
				return t, nil
			},
		); err != nil {
			// Losing the race against a concurrent submission is expected,
			// the trade progressed and must not be expired.
			if errors.Is(err, domain.ErrTradeConflict) {
				log.WithField("trade_id", trade.Id).Debug(
					"trade reaper: trade progressed, skipped",
				)
				continue
			}
			return count, err
		}

		r.svc.stats.addExpired()
		count++
	}

	return count, nil
}
