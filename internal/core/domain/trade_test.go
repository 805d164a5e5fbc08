package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/thanhpk/randstr"

	"github.com/sparkle-network/sparkled/internal/core/domain"
)

func TestNewTrade(t *testing.T) {
	trade, err := domain.NewTrade("asset1", "nodeS", "nodeB", 1000, 0)
	require.NoError(t, err)

	require.NotEmpty(t, trade.Id)
	require.True(t, trade.IsPending())
	require.Equal(t, "asset1", trade.AssetId)
	require.Equal(t, domain.DefaultLockTimeout, trade.LockTimeout)
	require.Equal(
		t,
		trade.CreatedAt+int64(domain.TradeTTL/time.Second),
		trade.ExpiresAt,
	)
}

func TestFailingNewTrade(t *testing.T) {
	tests := []struct {
		name        string
		assetId     string
		sellerNode  string
		priceUnits  uint64
		lockTimeout uint32
		expectedErr error
	}{
		{
			name:        "missing_asset_id",
			sellerNode:  "nodeS",
			priceUnits:  1000,
			expectedErr: domain.ErrMissingAssetId,
		},
		{
			name:        "missing_seller_node",
			assetId:     "asset1",
			priceUnits:  1000,
			expectedErr: domain.ErrMissingSellerNode,
		},
		{
			name:        "non_positive_price",
			assetId:     "asset1",
			sellerNode:  "nodeS",
			expectedErr: domain.ErrNonPositivePrice,
		},
		{
			name:        "lock_timeout_too_high",
			assetId:     "asset1",
			sellerNode:  "nodeS",
			priceUnits:  1000,
			lockTimeout: domain.MaxLockTimeout + 1,
			expectedErr: domain.ErrLockTimeoutTooHigh,
		},
	}

	for i := range tests {
		tt := tests[i]

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			trade, err := domain.NewTrade(
				tt.assetId, tt.sellerNode, "", tt.priceUnits, tt.lockTimeout,
			)
			require.Nil(t, trade)
			require.ErrorIs(t, err, tt.expectedErr)
			require.ErrorIs(t, err, domain.ErrInvalidArgs)
		})
	}
}

func TestTradeSubmitSellerArtifact(t *testing.T) {
	trade := newTradePending(t)
	artifact := randomArtifact()

	err := trade.SubmitSellerArtifact(artifact)
	require.NoError(t, err)
	require.True(t, trade.IsAwaitingBuyer())
	require.Equal(t, artifact, trade.SellerArtifact)

	// The artifact is write-once: a second submission is rejected and the
	// first value preserved.
	err = trade.SubmitSellerArtifact(randomArtifact())
	requireInvalidStatus(t, err, domain.TradeStatusAwaitingBuyer)
	require.Equal(t, artifact, trade.SellerArtifact)
}

func TestFailingTradeSubmitSellerArtifact(t *testing.T) {
	t.Run("empty_artifact", func(t *testing.T) {
		trade := newTradePending(t)

		err := trade.SubmitSellerArtifact("")
		require.ErrorIs(t, err, domain.ErrMissingSellerArtifact)
		require.True(t, trade.IsPending())
		require.Empty(t, trade.SellerArtifact)
	})

	t.Run("terminal_trade", func(t *testing.T) {
		trade := newTradeCompleted(t)

		err := trade.SubmitSellerArtifact(randomArtifact())
		requireInvalidStatus(t, err, domain.TradeStatusCompleted)
	})
}

func TestTradeJoinBuyer(t *testing.T) {
	trade := newTradeAwaitingBuyer(t)
	lockHash := randstr.Hex(32)
	artifact := randomArtifact()

	err := trade.JoinBuyer(lockHash, artifact)
	require.NoError(t, err)
	require.True(t, trade.IsReadyToSettle())
	require.Equal(t, lockHash, trade.LockHash)
	require.Equal(t, artifact, trade.BuyerArtifact)
}

func TestFailingTradeJoinBuyer(t *testing.T) {
	t.Run("before_seller_artifact", func(t *testing.T) {
		trade := newTradePending(t)

		err := trade.JoinBuyer(randstr.Hex(32), randomArtifact())
		requireInvalidStatus(t, err, domain.TradeStatusPending)
		require.True(t, trade.IsPending())
		require.Empty(t, trade.BuyerArtifact)
		require.Empty(t, trade.LockHash)
	})

	t.Run("missing_lock_hash", func(t *testing.T) {
		trade := newTradeAwaitingBuyer(t)

		err := trade.JoinBuyer("", randomArtifact())
		require.ErrorIs(t, err, domain.ErrMissingLockHash)
		require.True(t, trade.IsAwaitingBuyer())
	})

	t.Run("missing_artifact", func(t *testing.T) {
		trade := newTradeAwaitingBuyer(t)

		err := trade.JoinBuyer(randstr.Hex(32), "")
		require.ErrorIs(t, err, domain.ErrMissingBuyerArtifact)
		require.True(t, trade.IsAwaitingBuyer())
	})
}

func TestTradeSettle(t *testing.T) {
	trade := newTradeReadyToSettle(t)

	err := trade.Settle("tx1", "preimage1")
	require.NoError(t, err)
	require.True(t, trade.IsCompleted())
	require.Equal(t, "tx1", trade.SettlementRef)
	require.Equal(t, "preimage1", trade.Preimage)
	require.Greater(t, trade.CompletedAt, int64(0))
}

func TestFailingTradeSettle(t *testing.T) {
	t.Run("before_buyer_joined", func(t *testing.T) {
		trade := newTradeAwaitingBuyer(t)

		err := trade.Settle("tx1", "preimage1")
		requireInvalidStatus(t, err, domain.TradeStatusAwaitingBuyer)
	})

	t.Run("already_completed", func(t *testing.T) {
		trade := newTradeCompleted(t)
		settlementRef := trade.SettlementRef

		err := trade.Settle("tx2", "preimage2")
		requireInvalidStatus(t, err, domain.TradeStatusCompleted)
		require.Equal(t, settlementRef, trade.SettlementRef)
	})

	t.Run("missing_settlement_ref", func(t *testing.T) {
		trade := newTradeReadyToSettle(t)

		err := trade.Settle("", "preimage1")
		require.ErrorIs(t, err, domain.ErrMissingSettlementRef)
		require.True(t, trade.IsReadyToSettle())
	})

	t.Run("missing_preimage", func(t *testing.T) {
		trade := newTradeReadyToSettle(t)

		err := trade.Settle("tx1", "")
		require.ErrorIs(t, err, domain.ErrMissingPreimage)
		require.True(t, trade.IsReadyToSettle())
	})
}

func TestTradeExpire(t *testing.T) {
	trade := newTradePending(t)

	err := trade.Expire(trade.ExpiresAt)
	require.NoError(t, err)
	require.True(t, trade.IsExpired())

	// Expired is terminal, nothing moves the trade away from it.
	err = trade.SubmitSellerArtifact(randomArtifact())
	requireInvalidStatus(t, err, domain.TradeStatusExpired)
	err = trade.Expire(trade.ExpiresAt)
	requireInvalidStatus(t, err, domain.TradeStatusExpired)
}

func TestFailingTradeExpire(t *testing.T) {
	t.Run("expiry_not_reached", func(t *testing.T) {
		trade := newTradePending(t)

		err := trade.Expire(trade.ExpiresAt - 1)
		require.ErrorIs(t, err, domain.ErrTradeExpiryNotReached)
		require.True(t, trade.IsPending())
	})

	t.Run("past_pending", func(t *testing.T) {
		trade := newTradeAwaitingBuyer(t)

		err := trade.Expire(trade.ExpiresAt)
		requireInvalidStatus(t, err, domain.TradeStatusAwaitingBuyer)
		require.True(t, trade.IsAwaitingBuyer())
	})
}

func TestTradeIsExpirable(t *testing.T) {
	trade := newTradePending(t)
	require.False(t, trade.IsExpirable(trade.ExpiresAt-1))
	require.True(t, trade.IsExpirable(trade.ExpiresAt))

	trade = newTradeAwaitingBuyer(t)
	require.False(t, trade.IsExpirable(trade.ExpiresAt))
}

func TestParseTradeStatus(t *testing.T) {
	for _, name := range []string{
		"pending", "awaiting_buyer", "ready_to_settle", "completed", "expired",
	} {
		status, err := domain.ParseTradeStatus(name)
		require.NoError(t, err)
		require.Equal(t, name, status.String())
	}

	_, err := domain.ParseTradeStatus("unknown")
	require.Error(t, err)
}

func newTradePending(t *testing.T) *domain.Trade {
	t.Helper()

	trade, err := domain.NewTrade("asset1", "nodeS", "", 1000, 0)
	require.NoError(t, err)
	return trade
}

func newTradeAwaitingBuyer(t *testing.T) *domain.Trade {
	t.Helper()

	trade := newTradePending(t)
	require.NoError(t, trade.SubmitSellerArtifact(randomArtifact()))
	return trade
}

func newTradeReadyToSettle(t *testing.T) *domain.Trade {
	t.Helper()

	trade := newTradeAwaitingBuyer(t)
	require.NoError(t, trade.JoinBuyer(randstr.Hex(32), randomArtifact()))
	return trade
}

func newTradeCompleted(t *testing.T) *domain.Trade {
	t.Helper()

	trade := newTradeReadyToSettle(t)
	require.NoError(t, trade.Settle(randstr.Hex(32), randstr.Hex(32)))
	return trade
}

func randomArtifact() string {
	return randstr.Base64(100)
}

func requireInvalidStatus(
	t *testing.T, err error, expectedStatus domain.TradeStatus,
) {
	t.Helper()

	var statusErr *domain.InvalidStatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, expectedStatus, statusErr.Status)
}
