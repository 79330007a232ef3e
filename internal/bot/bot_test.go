package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nibitools/saibot/internal/domain"
)

const testAddress = "nibiru1qypqxpq9qcrsszg2pvxq6rs0zqg3yyc5lzv7xu"

func classify(t *testing.T, raw string) domain.WalletAddress {
	t.Helper()
	addr, err := domain.ClassifyAddress(raw)
	require.NoError(t, err)
	return addr
}

func TestCommandFromCallbackPrices(t *testing.T) {
	tests := []struct {
		data     string
		wantPage int
		wantOK   bool
	}{
		{"prices:1", 1, true},
		{"prices:0", 0, true},
		{"prices:42", 42, true},
		{"prices:-1", 0, false},
		{"prices:", 0, false},
		{"prices:abc", 0, false},
		{"", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.data, func(t *testing.T) {
			cmd, ok := commandFromCallback(tc.data)
			require.Equal(t, tc.wantOK, ok)
			if ok {
				require.Equal(t, domain.PricesCommand{Page: tc.wantPage}, cmd)
			}
		})
	}
}

func TestCommandFromCallbackTrades(t *testing.T) {
	cmd, ok := commandFromCallback("trades:" + testAddress + ":open:2:btc")
	require.True(t, ok)
	require.Equal(t, domain.TradesCommand{
		Address: classify(t, testAddress),
		Status:  domain.StatusOpen,
		Symbol:  "btc",
		Page:    2,
	}, cmd)

	cmd, ok = commandFromCallback("trades:" + testAddress + ":closed:1:")
	require.True(t, ok)
	require.Equal(t, domain.TradesCommand{
		Address: classify(t, testAddress),
		Status:  domain.StatusClosed,
		Page:    1,
	}, cmd)
}

func TestCommandFromCallbackTradesRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad address", "trades:garbage:open:1:"},
		{"unknown status", "trades:" + testAddress + ":any:1:"},
		{"bad page", "trades:" + testAddress + ":open:x:"},
		{"negative page", "trades:" + testAddress + ":open:-1:"},
		{"missing fields", "trades:" + testAddress + ":open"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := commandFromCallback(tc.data)
			require.False(t, ok)
		})
	}
}

func TestCallbackDataRoundTrip(t *testing.T) {
	commands := []domain.Command{
		domain.PricesCommand{Page: 3},
		domain.TradesCommand{
			Address: classify(t, testAddress),
			Status:  domain.StatusOpen,
			Symbol:  "btc",
			Page:    1,
		},
		domain.TradesCommand{
			Address: classify(t, testAddress),
			Status:  domain.StatusClosed,
			Page:    4,
		},
	}

	for _, cmd := range commands {
		data, ok := callbackData(cmd)
		require.True(t, ok)
		require.LessOrEqual(t, len(data), callbackDataLimit)

		// the payload must round-trip so a continuation never loses its place
		decoded, ok := commandFromCallback(data)
		require.True(t, ok)
		require.Equal(t, cmd, decoded)
	}
}

func TestCallbackDataOverLimit(t *testing.T) {
	longAddress := classify(t, "nibiru1"+strings.Repeat("q", 60))

	_, ok := callbackData(domain.TradesCommand{
		Address: longAddress,
		Status:  domain.StatusOpen,
		Page:    1,
	})
	require.False(t, ok)
}

func TestNextKeyboardCarriesCommand(t *testing.T) {
	markup, ok := nextKeyboard(domain.PricesCommand{Page: 3})
	require.True(t, ok)
	require.Len(t, markup.InlineKeyboard, 1)
	require.Len(t, markup.InlineKeyboard[0], 1)

	button := markup.InlineKeyboard[0][0]
	require.NotNil(t, button.CallbackData)
	require.Equal(t, "prices:3", *button.CallbackData)

	_, ok = nextKeyboard(nil)
	require.False(t, ok)

	_, ok = nextKeyboard(domain.HelpCommand{})
	require.False(t, ok)
}
