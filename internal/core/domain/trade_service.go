package domain

import "time"

// SubmitSellerArtifact brings a trade from the Pending to the AwaitingBuyer
// status by attaching the seller's signed transaction. The artifact is
// write-once: once the trade left Pending the submission is rejected and the
// stored artifact is preserved.
func (t *Trade) SubmitSellerArtifact(artifact string) error {
	if t.Status != TradeStatusPending {
		return &InvalidStatusError{Status: t.Status}
	}
	if artifact == "" {
		return ErrMissingSellerArtifact
	}

	t.SellerArtifact = artifact
	t.Status = TradeStatusAwaitingBuyer
	return nil
}

// JoinBuyer brings a trade from the AwaitingBuyer to the ReadyToSettle
// status by attaching the hash of the payment lock and the buyer's signed
// transaction.
func (t *Trade) JoinBuyer(lockHash, artifact string) error {
	if t.Status != TradeStatusAwaitingBuyer {
		return &InvalidStatusError{Status: t.Status}
	}
	if lockHash == "" {
		return ErrMissingLockHash
	}
	if artifact == "" {
		return ErrMissingBuyerArtifact
	}

	t.LockHash = lockHash
	t.BuyerArtifact = artifact
	t.Status = TradeStatusReadyToSettle
	return nil
}

// Settle brings a trade from the ReadyToSettle to the Completed status,
// recording the reference of the broadcast transaction, the revealed lock
// preimage and the completion time. Whether the preimage actually opens the
// lock is the business of the parties that produced it, not of the
// coordinator.
func (t *Trade) Settle(settlementRef, preimage string) error {
	if t.Status != TradeStatusReadyToSettle {
		return &InvalidStatusError{Status: t.Status}
	}
	if settlementRef == "" {
		return ErrMissingSettlementRef
	}
	if preimage == "" {
		return ErrMissingPreimage
	}

	t.SettlementRef = settlementRef
	t.Preimage = preimage
	t.CompletedAt = time.Now().Unix()
	t.Status = TradeStatusCompleted
	return nil
}

// Expire brings a Pending trade whose expiry time has passed to the Expired
// status. Trades that progressed past Pending never expire.
func (t *Trade) Expire(now int64) error {
	if t.Status != TradeStatusPending {
		return &InvalidStatusError{Status: t.Status}
	}
	if now < t.ExpiresAt {
		return ErrTradeExpiryNotReached
	}

	t.Status = TradeStatusExpired
	return nil
}

// IsPending returns whether the trade is in Pending status.
func (t *Trade) IsPending() bool {
	return t.Status == TradeStatusPending
}

// IsAwaitingBuyer returns whether the trade is in AwaitingBuyer status.
func (t *Trade) IsAwaitingBuyer() bool {
	return t.Status == TradeStatusAwaitingBuyer
}

// IsReadyToSettle returns whether the trade is in ReadyToSettle status.
func (t *Trade) IsReadyToSettle() bool {
	return t.Status == TradeStatusReadyToSettle
}

// IsCompleted returns whether the trade is in Completed status.
func (t *Trade) IsCompleted() bool {
	return t.Status == TradeStatusCompleted
}

// IsExpired returns whether the trade is in Expired status.
func (t *Trade) IsExpired() bool {
	return t.Status == TradeStatusExpired
}

// IsExpirable returns whether the trade is eligible for expiry at the given
// time, ie. still Pending with its expiry time passed.
func (t *Trade) IsExpirable(now int64) bool {
	return t.Status == TradeStatusPending && now >= t.ExpiresAt
}
