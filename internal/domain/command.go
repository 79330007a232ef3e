package domain

import "github.com/pkg/errors"

// Failure kinds surfaced to the dispatcher boundary. Each one maps to a
// single fixed user-facing message there.
var (
	ErrConflictingFilter     = errors.New("conflicting status filter")
	ErrTooManyArguments      = errors.New("too many arguments")
	ErrUnknownArgument       = errors.New("unknown argument")
	ErrArgumentCountMismatch = errors.New("wrong number of arguments")
	ErrDataUnavailable       = errors.New("data unavailable")
	ErrEmptyResult           = errors.New("empty result")
)

// Command is the closed set of chat commands understood by the bot.
// Dispatch is an exhaustive type switch over these variants.
type Command interface {
	isCommand()
}

// TradesCommand lists one page of trades for a wallet, optionally narrowed
// by lifecycle status and base token symbol.
type TradesCommand struct {
	Address WalletAddress
	Status  TradeStatus
	// Symbol filters by base token, matched case-insensitively. Empty means
	// no filter.
	Symbol string
	Page   int
}

// PricesCommand lists one page of the oracle price table.
type PricesCommand struct {
	Page int
}

// PriceCommand looks up a single token price by exact symbol.
type PriceCommand struct {
	Symbol string
}

// HelpCommand answers with usage text. Unroutable commands land here too.
type HelpCommand struct{}

func (TradesCommand) isCommand() {}
func (PricesCommand) isCommand() {}
func (PriceCommand) isCommand()  {}
func (HelpCommand) isCommand()   {}
