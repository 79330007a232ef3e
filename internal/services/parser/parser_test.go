package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nibitools/saibot/internal/domain"
)

const testAddress = "nibiru1qypqxpq9qcrsszg2pvxq6rs0zqg3yyc5lzv7xu"

func TestParseTrades(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantStatus domain.TradeStatus
		wantSymbol string
	}{
		{"address only", []string{testAddress}, domain.StatusAny, ""},
		{"open filter", []string{testAddress, "open"}, domain.StatusOpen, ""},
		{"closed filter", []string{testAddress, "CLOSED"}, domain.StatusClosed, ""},
		{"symbol only", []string{testAddress, "btc"}, domain.StatusAny, "btc"},
		{"status then symbol", []string{testAddress, "open", "btc"}, domain.StatusOpen, "btc"},
		{"symbol then status", []string{testAddress, "eth", "closed"}, domain.StatusClosed, "eth"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := Parse("trades", tc.args, 0)
			require.NoError(t, err)

			trades, ok := cmd.(domain.TradesCommand)
			require.True(t, ok)
			require.Equal(t, testAddress, trades.Address.Value)
			require.Equal(t, tc.wantStatus, trades.Status)
			require.Equal(t, tc.wantSymbol, trades.Symbol)
		})
	}
}

func TestParseTradesErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"no address", nil, domain.ErrArgumentCountMismatch},
		{"bad address", []string{"not-an-address"}, domain.ErrInvalidAddress},
		{"conflicting status", []string{testAddress, "open", "closed"}, domain.ErrConflictingFilter},
		{"duplicate status", []string{testAddress, "open", "OPEN"}, domain.ErrConflictingFilter},
		{"two symbols", []string{testAddress, "btc", "eth"}, domain.ErrTooManyArguments},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse("trades", tc.args, 0)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestParsePrices(t *testing.T) {
	cmd, err := Parse("prices", nil, 0)
	require.NoError(t, err)
	require.Equal(t, domain.PricesCommand{Page: 0}, cmd)

	cmd, err = Parse("prices", []string{"next"}, 0)
	require.NoError(t, err)
	require.Equal(t, domain.PricesCommand{Page: 1}, cmd)

	// the continuation carries the page to advance from
	cmd, err = Parse("prices", []string{"NEXT"}, 4)
	require.NoError(t, err)
	require.Equal(t, domain.PricesCommand{Page: 5}, cmd)
}

func TestParsePricesErrors(t *testing.T) {
	_, err := Parse("prices", []string{"previous"}, 0)
	require.ErrorIs(t, err, domain.ErrUnknownArgument)

	_, err = Parse("prices", []string{"next", "next"}, 0)
	require.ErrorIs(t, err, domain.ErrUnknownArgument)
}

func TestParsePrice(t *testing.T) {
	cmd, err := Parse("price", []string{"btc"}, 0)
	require.NoError(t, err)
	require.Equal(t, domain.PriceCommand{Symbol: "btc"}, cmd)

	_, err = Parse("price", nil, 0)
	require.ErrorIs(t, err, domain.ErrArgumentCountMismatch)

	_, err = Parse("price", []string{"btc", "eth"}, 0)
	require.ErrorIs(t, err, domain.ErrArgumentCountMismatch)
}

func TestParseHelpAndUnknown(t *testing.T) {
	for _, name := range []string{"start", "help", "HELP", "bogus"} {
		cmd, err := Parse(name, nil, 0)
		require.NoError(t, err, name)
		require.IsType(t, domain.HelpCommand{}, cmd)
	}
}
