package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TradeStatus represents the different statuses that a trade can assume.
// Statuses only ever advance, following pending -> awaiting_buyer ->
// ready_to_settle -> completed, with expired reachable from pending only.
type TradeStatus int

const (
	// TradeStatusPending is the status of a newly created trade, waiting for
	// the seller's signed transaction.
	TradeStatusPending TradeStatus = iota
	// TradeStatusAwaitingBuyer is the status of a trade whose seller artifact
	// has been submitted, waiting for a buyer to join.
	TradeStatusAwaitingBuyer
	// TradeStatusReadyToSettle is the status of a trade with both artifacts
	// and the payment lock hash in place, ready for settlement.
	TradeStatusReadyToSettle
	// TradeStatusCompleted is the terminal status of a settled trade.
	TradeStatusCompleted
	// TradeStatusExpired is the terminal status of a pending trade abandoned
	// past its expiry time.
	TradeStatusExpired
)

var tradeStatusNames = map[TradeStatus]string{
	TradeStatusPending:       "pending",
	TradeStatusAwaitingBuyer: "awaiting_buyer",
	TradeStatusReadyToSettle: "ready_to_settle",
	TradeStatusCompleted:     "completed",
	TradeStatusExpired:       "expired",
}

func (s TradeStatus) String() string {
	if name, ok := tradeStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// IsTerminal returns whether no further transition is permitted from the
// status.
func (s TradeStatus) IsTerminal() bool {
	return s == TradeStatusCompleted || s == TradeStatusExpired
}

// MarshalJSON encodes the status with its wire name.
func (s TradeStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TradeStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	status, err := ParseTradeStatus(name)
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// ParseTradeStatus returns the status matching the given wire name.
func ParseTradeStatus(name string) (TradeStatus, error) {
	for status, statusName := range tradeStatusNames {
		if statusName == name {
			return status, nil
		}
	}
	return 0, fmt.Errorf("unknown trade status %q", name)
}

// Trade is the data structure representing a coordinated exchange of an
// off-chain hashed-time-lock payment against an on-chain signed transaction
// transferring an asset. The artifacts are opaque blobs, never inspected
// beyond presence.
type Trade struct {
	Id             string      `json:"id"`
	AssetId        string      `json:"assetId"`
	SellerNode     string      `json:"sellerNode"`
	BuyerNode      string      `json:"buyerNode,omitempty"`
	PriceUnits     uint64      `json:"priceUnits"`
	LockTimeout    uint32      `json:"lockTimeout"`
	Status         TradeStatus `json:"status"`
	SellerArtifact string      `json:"sellerArtifact,omitempty"`
	BuyerArtifact  string      `json:"buyerArtifact,omitempty"`
	LockHash       string      `json:"lockHash,omitempty"`
	Preimage       string      `json:"preimage,omitempty"`
	SettlementRef  string      `json:"settlementRef,omitempty"`
	CreatedAt      int64       `json:"createdAt"`
	ExpiresAt      int64       `json:"expiresAt"`
	CompletedAt    int64       `json:"completedAt,omitempty"`
}

// NewTrade returns a pending trade with a new id and its expiry time fixed
// to TradeTTL past its creation time, after validating the given arguments.
func NewTrade(
	assetId, sellerNode, buyerNode string, priceUnits uint64, lockTimeout uint32,
) (*Trade, error) {
	if assetId == "" {
		return nil, ErrMissingAssetId
	}
	if sellerNode == "" {
		return nil, ErrMissingSellerNode
	}
	if priceUnits == 0 {
		return nil, ErrNonPositivePrice
	}
	if lockTimeout == 0 {
		lockTimeout = DefaultLockTimeout
	}
	if lockTimeout > MaxLockTimeout {
		return nil, ErrLockTimeoutTooHigh
	}

	now := time.Now()
	return &Trade{
		Id:          uuid.New().String(),
		AssetId:     assetId,
		SellerNode:  sellerNode,
		BuyerNode:   buyerNode,
		PriceUnits:  priceUnits,
		LockTimeout: lockTimeout,
		Status:      TradeStatusPending,
		CreatedAt:   now.Unix(),
		ExpiresAt:   now.Add(TradeTTL).Unix(),
	}, nil
}
