package domain

import "time"

const (
	// TradeTTL is the lifetime of a trade. The expiry time of a trade is
	// fixed at creation to its creation time plus this duration.
	TradeTTL = 24 * time.Hour
	// DefaultLockTimeout is the hashed-time-lock timeout, in blocks, applied
	// to trades created without an explicit one.
	DefaultLockTimeout uint32 = 144
	// MaxLockTimeout bounds the hashed-time-lock timeout a trade can carry.
	MaxLockTimeout uint32 = 1008
)
