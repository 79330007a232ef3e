// Package formatter renders trade and price records into reply text.
// Everything here is pure string building; no I/O.
package formatter

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nibitools/saibot/internal/domain"
)

const (
	divider    = "━━━━━━━━━━━━━━━━━━━━"
	timeLayout = "2006-01-02 15:04:05 UTC"

	// NoResults is the fixed reply for empty listings and unknown symbols.
	NoResults = "No results found."
)

// HelpText lists every supported command. It also answers /start and any
// unrecognized command.
const HelpText = `Welcome to SAI Bot!

Commands:
/trades <address> [open|closed] [symbol] – View trades for a wallet
/prices [next] – Show top 10 oracle prices
/price <symbol> – Get price for a specific token
/help – Show this help message

Supported address formats:
• Nibiru: nibiru1...
• EVM: 0x...`

var (
	moneyOne  = decimal.NewFromInt(1)
	moneyTiny = decimal.RequireFromString("0.0001")
)

// Money renders a monetary value with value-dependent precision: two
// decimals with thousands separators from 1 upward, four decimals down to
// 0.0001, eight below that. Zero renders as $0.00.
func Money(v decimal.Decimal) string {
	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Abs()
	}
	switch {
	case v.IsZero() || v.GreaterThanOrEqual(moneyOne):
		return sign + "$" + groupThousands(v.StringFixed(2))
	case v.GreaterThanOrEqual(moneyTiny):
		return sign + "$" + v.StringFixed(4)
	default:
		return sign + "$" + v.StringFixed(8)
	}
}

// Percent renders a percentage with an explicit sign and two decimals.
func Percent(v decimal.Decimal) string {
	if v.IsNegative() {
		return v.StringFixed(2) + "%"
	}
	return "+" + v.StringFixed(2) + "%"
}

// groupThousands inserts comma separators into the integer part of a
// non-negative fixed decimal string.
func groupThousands(s string) string {
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	return b.String() + frac
}

// TradeListing renders one page of trades as divider-separated blocks under
// a section header. shown is the running count through this page, total the
// full section size.
func TradeListing(trades []domain.TradeRecord, address domain.WalletAddress, status domain.TradeStatus, shown, total int) string {
	if len(trades) == 0 {
		return NoResults
	}

	var b strings.Builder
	b.WriteString(listingHeader(address, status))
	fmt.Fprintf(&b, "\n(%d of %d)", shown, total)
	for _, t := range trades {
		b.WriteString("\n")
		b.WriteString(divider)
		b.WriteString("\n")
		b.WriteString(TradeBlock(t))
	}
	return b.String()
}

func listingHeader(address domain.WalletAddress, status domain.TradeStatus) string {
	switch status {
	case domain.StatusOpen:
		return fmt.Sprintf("✅ OPEN TRADES for %s", address.Short())
	case domain.StatusClosed:
		return fmt.Sprintf("❌ CLOSED TRADES for %s", address.Short())
	default:
		return fmt.Sprintf("TRADES for %s", address.Short())
	}
}

// TradeBlock renders a single trade. The populated union variant decides
// which fields appear.
func TradeBlock(t domain.TradeRecord) string {
	side := "🔴 Short"
	if t.IsLong {
		side = "🟢 Long"
	}
	state := "❌ CLOSED"
	if t.IsOpen() {
		state = "✅ OPEN"
	}

	lines := []string{
		fmt.Sprintf("Trade #%s | %s", t.ID, state),
		fmt.Sprintf("Market: %s | Side: %s | Leverage: %sx", t.Symbol, side, t.Leverage.String()),
	}

	switch {
	case t.Open != nil:
		o := t.Open
		glyph := "📈"
		if o.PnL.IsNegative() {
			glyph = "📉"
		}
		pnl := Money(o.PnL)
		if !o.PnL.IsNegative() {
			pnl = "+" + pnl
		}
		lines = append(lines,
			"Entry Price: "+Money(o.EntryPrice),
			"Liquidation Price: "+Money(o.LiquidationPrice),
			"Position Value: "+Money(o.PositionValue),
			fmt.Sprintf("PnL: %s %s (%s)", glyph, pnl, Percent(o.PnLPercent)),
			"Collateral: "+Money(o.Collateral),
		)
		if !o.OpenedAt.IsZero() {
			lines = append(lines, "Opened: "+o.OpenedAt.UTC().Format(timeLayout))
		}
	case t.Closed != nil:
		c := t.Closed
		lines = append(lines,
			"Entry Price: "+Money(c.EntryPrice),
			"Exit Price: "+Money(c.ExitPrice),
			"Collateral: "+Money(c.Collateral),
			"Opened: "+c.OpenedAt.UTC().Format(timeLayout),
			"Closed: "+c.ClosedAt.UTC().Format(timeLayout),
		)
	}

	return strings.Join(lines, "\n")
}

// PriceListing renders one page of the oracle price table. shown is the
// running count through this page, total the full listing size.
func PriceListing(page []domain.PriceRecord, shown, total int) string {
	if len(page) == 0 {
		return NoResults
	}

	lines := make([]string, 0, len(page)+1)
	lines = append(lines, fmt.Sprintf("💰 Oracle Prices (Top %d of %d)\n", shown, total))
	for _, p := range page {
		lines = append(lines, fmt.Sprintf("• %s: %s", p.Symbol, Money(p.Value)))
	}
	return strings.Join(lines, "\n")
}

// SinglePrice renders a one-symbol lookup.
func SinglePrice(p domain.PriceRecord) string {
	return fmt.Sprintf("💰 %s: %s", p.Symbol, Money(p.Value))
}
