package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TradeStatus narrows trade listings by lifecycle state.
type TradeStatus int

const (
	// StatusAny returns both open and closed trades.
	StatusAny TradeStatus = iota
	StatusOpen
	StatusClosed
)

func (s TradeStatus) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusClosed:
		return "closed"
	default:
		return "any"
	}
}

// MacroUnitExponent converts integer base units from the backend into
// display units: raw * 10^-6.
const MacroUnitExponent = -6

// TradeRecord is one perp trade. Exactly one of Open or Closed is non-nil,
// matching the trade lifecycle state.
type TradeRecord struct {
	ID       string
	Symbol   string
	IsLong   bool
	Leverage decimal.Decimal
	Open     *OpenTrade
	Closed   *ClosedTrade
}

// IsOpen reports whether the record carries the open-trade variant.
func (t TradeRecord) IsOpen() bool {
	return t.Open != nil
}

// OpenTrade holds the live state of an open position, in macro units.
type OpenTrade struct {
	PositionValue    decimal.Decimal
	PnL              decimal.Decimal
	PnLPercent       decimal.Decimal
	LiquidationPrice decimal.Decimal
	EntryPrice       decimal.Decimal
	Collateral       decimal.Decimal
	OpenedAt         time.Time
}

// ClosedTrade holds the settled figures of a finished position.
type ClosedTrade struct {
	EntryPrice decimal.Decimal
	ExitPrice  decimal.Decimal
	Collateral decimal.Decimal
	OpenedAt   time.Time
	ClosedAt   time.Time
}

// SplitByState partitions trades into open and closed groups, keeping the
// incoming order inside each group.
func SplitByState(trades []TradeRecord) (open, closed []TradeRecord) {
	for _, t := range trades {
		if t.IsOpen() {
			open = append(open, t)
		} else {
			closed = append(closed, t)
		}
	}
	return open, closed
}

// FilterBySymbol keeps the trades whose base symbol equals symbol,
// case-insensitively. An empty filter returns trades unchanged.
func FilterBySymbol(trades []TradeRecord, symbol string) []TradeRecord {
	if symbol == "" {
		return trades
	}
	out := make([]TradeRecord, 0, len(trades))
	for _, t := range trades {
		if strings.EqualFold(t.Symbol, symbol) {
			out = append(out, t)
		}
	}
	return out
}
