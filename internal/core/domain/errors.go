package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrTradeNotFound is returned when looking up a trade with an unknown id.
	ErrTradeNotFound = errors.New("trade not found")
	// ErrTradeExists is returned when inserting a trade whose id is already
	// taken. Ids are generated, so this signals a repository invariant
	// violation rather than a caller mistake.
	ErrTradeExists = errors.New("trade with the same id already exists")
	// ErrTradeConflict is returned when a trade update loses the race against
	// a concurrent one, ie. the trade status changed between the read and the
	// compare-and-transition. The caller can re-read and retry if the
	// operation still applies.
	ErrTradeConflict = errors.New("trade changed concurrently")

	// ErrInvalidArgs is the base error wrapped by all argument validation
	// errors below, so that callers can classify them with errors.Is.
	ErrInvalidArgs = errors.New("invalid arguments")

	ErrMissingAssetId        = fmt.Errorf("%w: missing asset id", ErrInvalidArgs)
	ErrMissingSellerNode     = fmt.Errorf("%w: missing seller node", ErrInvalidArgs)
	ErrNonPositivePrice      = fmt.Errorf("%w: price must be a positive integer", ErrInvalidArgs)
	ErrLockTimeoutTooHigh    = fmt.Errorf("%w: lock timeout above maximum", ErrInvalidArgs)
	ErrMissingSellerArtifact = fmt.Errorf("%w: missing seller artifact", ErrInvalidArgs)
	ErrMissingBuyerArtifact  = fmt.Errorf("%w: missing buyer artifact", ErrInvalidArgs)
	ErrMissingLockHash       = fmt.Errorf("%w: missing lock hash", ErrInvalidArgs)
	ErrMissingSettlementRef  = fmt.Errorf("%w: missing settlement reference", ErrInvalidArgs)
	ErrMissingPreimage       = fmt.Errorf("%w: missing preimage", ErrInvalidArgs)

	// ErrTradeExpiryNotReached is returned when trying to expire a trade
	// whose expiry time has not passed yet.
	ErrTradeExpiryNotReached = errors.New("trade expiry time not reached")
)

// InvalidStatusError is returned when an operation is not legal for the
// trade's current status. It carries the status for diagnostics.
type InvalidStatusError struct {
	Status TradeStatus
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("trade is %s", e.Status)
}
