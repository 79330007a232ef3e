// Package parser turns raw command text into typed commands.
package parser

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/nibitools/saibot/internal/domain"
)

// Parse interprets a command name and its whitespace-split arguments.
// prevPage is the page number carried by the continuation the command
// arrived on; fresh commands pass zero. Command keywords are
// case-insensitive.
func Parse(name string, args []string, prevPage int) (domain.Command, error) {
	switch strings.ToLower(name) {
	case "trades":
		return parseTrades(args)
	case "prices":
		return parsePrices(args, prevPage)
	case "price":
		return parsePrice(args)
	default:
		// /start, /help and anything unroutable answer with usage text
		return domain.HelpCommand{}, nil
	}
}

func parseTrades(args []string) (domain.Command, error) {
	if len(args) == 0 {
		return nil, errors.Wrap(domain.ErrArgumentCountMismatch, "trades: wallet address is required")
	}

	addr, err := domain.ClassifyAddress(args[0])
	if err != nil {
		return nil, err
	}

	cmd := domain.TradesCommand{Address: addr, Status: domain.StatusAny}
	statusSet := false
	// open and closed are reserved status keywords; every other token is
	// treated as the symbol filter
	for _, arg := range args[1:] {
		switch token := strings.ToLower(strings.TrimSpace(arg)); token {
		case "open", "closed":
			if statusSet {
				return nil, errors.Wrapf(domain.ErrConflictingFilter, "status already set to %s", cmd.Status)
			}
			statusSet = true
			if token == "open" {
				cmd.Status = domain.StatusOpen
			} else {
				cmd.Status = domain.StatusClosed
			}
		case "":
		default:
			if cmd.Symbol != "" {
				return nil, errors.Wrapf(domain.ErrTooManyArguments, "unexpected argument %q", arg)
			}
			cmd.Symbol = token
		}
	}

	return cmd, nil
}

func parsePrices(args []string, prevPage int) (domain.Command, error) {
	switch len(args) {
	case 0:
		return domain.PricesCommand{}, nil
	case 1:
		if strings.EqualFold(args[0], "next") {
			return domain.PricesCommand{Page: prevPage + 1}, nil
		}
		return nil, errors.Wrapf(domain.ErrUnknownArgument, "%q", args[0])
	default:
		return nil, errors.Wrap(domain.ErrUnknownArgument, "expected at most one argument")
	}
}

func parsePrice(args []string) (domain.Command, error) {
	if len(args) != 1 {
		return nil, errors.Wrap(domain.ErrArgumentCountMismatch, "price: exactly one symbol is required")
	}
	return domain.PriceCommand{Symbol: strings.TrimSpace(args[0])}, nil
}
