// Package dispatcher orchestrates command handling: parse, fetch, filter,
// paginate, render. Every failure is converted to a fixed user-facing
// message here; nothing propagates to the transport.
package dispatcher

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nibitools/saibot/internal/domain"
	"github.com/nibitools/saibot/internal/services/formatter"
	"github.com/nibitools/saibot/internal/services/paging"
	"github.com/nibitools/saibot/internal/services/parser"
)

// Gateway reads trade and price records from the backend. Retries, if any,
// are the gateway's concern.
type Gateway interface {
	FetchTrades(ctx context.Context, address domain.WalletAddress, status domain.TradeStatus) ([]domain.TradeRecord, error)
	FetchPrices(ctx context.Context) ([]domain.PriceRecord, error)
}

// One fixed message per failure kind.
const (
	msgInvalidAddress    = "That does not look like a wallet address. Use nibiru1... or 0x... format."
	msgConflictingFilter = "Use either open or closed, not both."
	msgTooManyArguments  = "Too many arguments. Usage: /trades <address> [open|closed] [symbol]"
	msgUnknownArgument   = "Unknown argument. Usage: /prices [next]"
	msgArgumentCount     = "Wrong number of arguments for this command."
	msgDataUnavailable   = "The trading backend is unavailable right now, please try again later."
)

// tradePageSize keeps trade replies under the message size cap; trade blocks
// are several lines tall.
const tradePageSize = 5

// Reply is one rendered outgoing message. Next, when non-nil, is the command
// a continuation control re-enters the dispatcher with.
type Reply struct {
	Text string
	Next domain.Command
}

type Dispatcher struct {
	gateway  Gateway
	pageSize int
	logger   *zap.Logger
}

func New(gateway Gateway, pageSize int, logger *zap.Logger) *Dispatcher {
	if pageSize <= 0 {
		pageSize = paging.DefaultPageSize
	}
	return &Dispatcher{gateway: gateway, pageSize: pageSize, logger: logger}
}

// Dispatch parses and executes one inbound command. prevPage is the page
// carried by the continuation the command arrived on, zero for fresh
// commands. An unfiltered trade listing yields one reply per lifecycle
// section; everything else yields exactly one.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args []string, prevPage int) []Reply {
	cmd, err := parser.Parse(name, args, prevPage)
	if err != nil {
		return []Reply{{Text: d.messageFor(err)}}
	}
	return d.Handle(ctx, cmd)
}

// Handle executes an already-parsed command.
func (d *Dispatcher) Handle(ctx context.Context, cmd domain.Command) []Reply {
	switch c := cmd.(type) {
	case domain.TradesCommand:
		return d.trades(ctx, c)
	case domain.PricesCommand:
		return []Reply{d.prices(ctx, c)}
	case domain.PriceCommand:
		return []Reply{d.price(ctx, c)}
	default:
		return []Reply{{Text: formatter.HelpText}}
	}
}

func (d *Dispatcher) trades(ctx context.Context, cmd domain.TradesCommand) []Reply {
	records, err := d.gateway.FetchTrades(ctx, cmd.Address, cmd.Status)
	if err != nil {
		return []Reply{{Text: d.messageFor(err)}}
	}

	// asset filter is applied post-fetch; the backend query only narrows by
	// trader and status
	records = domain.FilterBySymbol(records, cmd.Symbol)
	if len(records) == 0 {
		return []Reply{{Text: formatter.NoResults}}
	}

	if cmd.Status != domain.StatusAny {
		return []Reply{d.tradeSection(cmd, records)}
	}

	// the unfiltered listing goes out as two sections, open first; their
	// continuations paginate independently
	open, closed := domain.SplitByState(records)
	var out []Reply
	if len(open) > 0 {
		section := cmd
		section.Status = domain.StatusOpen
		out = append(out, d.tradeSection(section, open))
	}
	if len(closed) > 0 {
		section := cmd
		section.Status = domain.StatusClosed
		out = append(out, d.tradeSection(section, closed))
	}
	return out
}

// tradeSection renders one page of a single-status trade listing. cmd.Status
// is never StatusAny here.
func (d *Dispatcher) tradeSection(cmd domain.TradesCommand, records []domain.TradeRecord) Reply {
	page := paging.Slice(records, cmd.Page, tradePageSize)
	if len(page.Visible) == 0 {
		return Reply{Text: formatter.NoResults}
	}

	shown := cmd.Page*tradePageSize + len(page.Visible)
	reply := Reply{Text: formatter.TradeListing(page.Visible, cmd.Address, cmd.Status, shown, len(records))}
	if page.HasMore {
		next := cmd
		next.Page++
		reply.Next = next
	}
	return reply
}

func (d *Dispatcher) prices(ctx context.Context, cmd domain.PricesCommand) Reply {
	records, err := d.gateway.FetchPrices(ctx)
	if err != nil {
		return Reply{Text: d.messageFor(err)}
	}

	domain.SortByPriority(records)
	page := paging.Slice(records, cmd.Page, d.pageSize)
	if len(page.Visible) == 0 {
		return Reply{Text: formatter.NoResults}
	}

	shown := cmd.Page*d.pageSize + len(page.Visible)
	reply := Reply{Text: formatter.PriceListing(page.Visible, shown, len(records))}
	if page.HasMore {
		reply.Next = domain.PricesCommand{Page: cmd.Page + 1}
	}
	return reply
}

func (d *Dispatcher) price(ctx context.Context, cmd domain.PriceCommand) Reply {
	records, err := d.gateway.FetchPrices(ctx)
	if err != nil {
		return Reply{Text: d.messageFor(err)}
	}

	p, ok := domain.FindPrice(records, cmd.Symbol)
	if !ok {
		return Reply{Text: formatter.NoResults}
	}
	return Reply{Text: formatter.SinglePrice(p)}
}

func (d *Dispatcher) messageFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyResult):
		// an empty backend result is not an error for display purposes
		return formatter.NoResults
	case errors.Is(err, domain.ErrInvalidAddress):
		return msgInvalidAddress
	case errors.Is(err, domain.ErrConflictingFilter):
		return msgConflictingFilter
	case errors.Is(err, domain.ErrTooManyArguments):
		return msgTooManyArguments
	case errors.Is(err, domain.ErrUnknownArgument):
		return msgUnknownArgument
	case errors.Is(err, domain.ErrArgumentCountMismatch):
		return msgArgumentCount
	default:
		d.logger.Error("backend request failed", zap.Error(err))
		return msgDataUnavailable
	}
}
