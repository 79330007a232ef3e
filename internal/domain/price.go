package domain

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// PriceRecord is one oracle price quote in USD.
type PriceRecord struct {
	Symbol string
	Value  decimal.Decimal
}

// popularSymbols are shown before all other tokens in price listings,
// in this exact order.
var popularSymbols = []string{"BTC", "ETH", "USDT", "USDC", "NIBI", "ATOM", "SOL", "BNB", "AVAX", "MATIC"}

func popularRank(symbol string) int {
	for i, s := range popularSymbols {
		if strings.EqualFold(symbol, s) {
			return i
		}
	}
	return -1
}

// SortByPriority orders popular symbols first, in their configured order,
// and keeps the backend order for everything else. The sort is stable.
func SortByPriority(prices []PriceRecord) {
	sort.SliceStable(prices, func(i, j int) bool {
		ri, rj := popularRank(prices[i].Symbol), popularRank(prices[j].Symbol)
		switch {
		case ri >= 0 && rj >= 0:
			return ri < rj
		case ri >= 0:
			return true
		default:
			return false
		}
	})
}

// FindPrice returns the record whose symbol equals symbol case-insensitively.
func FindPrice(prices []PriceRecord, symbol string) (PriceRecord, bool) {
	for _, p := range prices {
		if strings.EqualFold(p.Symbol, symbol) {
			return p, true
		}
	}
	return PriceRecord{}, false
}
