package clients

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/nibitools/saibot/internal/domain"
	"github.com/nibitools/saibot/pkg/retrier"
)

const (
	tradesLimit = 100
	pricesLimit = 200
)

const tradesQuery = `query Trades($trader: String!, $isOpen: Boolean, $limit: Int!) {
  perp {
    trades(
      where: { trader: $trader, isOpen: $isOpen }
      limit: $limit
      order_by: sequence
      order_desc: true
    ) {
      id
      isOpen
      isLong
      leverage
      openPrice
      closePrice
      openCollateralAmount
      openBlock { block block_ts }
      closeBlock { block block_ts }
      state {
        positionValue
        liquidationPrice
        pnlCollateral
        pnlPct
      }
      perpBorrowing {
        marketId
        baseToken { id name symbol }
      }
    }
  }
}`

const pricesQuery = `query Prices($limit: Int!) {
  oracle {
    tokenPricesUsd(limit: $limit, order_by: token_id) {
      priceUsd
      token { id name symbol }
    }
  }
}`

// SaiClient queries the SAI keeper GraphQL backend. It is the only component
// that talks to the network; bounded retry with backoff lives here, callers
// never retry.
type SaiClient struct {
	http     *resty.Client
	endpoint string
	retrier  *retrier.Retrier
}

// NewSaiClient creates a client for the given GraphQL endpoint.
func NewSaiClient(endpoint string, timeout time.Duration) *SaiClient {
	httpClient := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &SaiClient{
		http:     httpClient,
		endpoint: endpoint,
		retrier:  retrier.New(3, 500*time.Millisecond, 5*time.Second),
	}
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type gqlError struct {
	Message string `json:"message"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

type wireBlock struct {
	Block   json.Number `json:"block"`
	BlockTS time.Time   `json:"block_ts"`
}

type wireToken struct {
	ID     json.Number `json:"id"`
	Name   string      `json:"name"`
	Symbol string      `json:"symbol"`
}

type wireMarket struct {
	MarketID  json.Number `json:"marketId"`
	BaseToken *wireToken  `json:"baseToken"`
}

type wireTradeState struct {
	PositionValue    json.Number `json:"positionValue"`
	LiquidationPrice json.Number `json:"liquidationPrice"`
	PnlCollateral    json.Number `json:"pnlCollateral"`
	PnlPct           json.Number `json:"pnlPct"`
}

type wireTrade struct {
	ID                   json.Number     `json:"id"`
	IsOpen               bool            `json:"isOpen"`
	IsLong               bool            `json:"isLong"`
	Leverage             json.Number     `json:"leverage"`
	OpenPrice            json.Number     `json:"openPrice"`
	ClosePrice           json.Number     `json:"closePrice"`
	OpenCollateralAmount json.Number     `json:"openCollateralAmount"`
	OpenBlock            *wireBlock      `json:"openBlock"`
	CloseBlock           *wireBlock      `json:"closeBlock"`
	State                *wireTradeState `json:"state"`
	PerpBorrowing        *wireMarket     `json:"perpBorrowing"`
}

type wirePrice struct {
	PriceUsd json.Number `json:"priceUsd"`
	Token    *wireToken  `json:"token"`
}

// FetchTrades returns the trades of one wallet, newest first. An empty
// result set is surfaced as domain.ErrEmptyResult, transport and backend
// failures as domain.ErrDataUnavailable.
func (c *SaiClient) FetchTrades(ctx context.Context, address domain.WalletAddress, status domain.TradeStatus) ([]domain.TradeRecord, error) {
	variables := map[string]any{
		"trader": address.Value,
		"limit":  tradesLimit,
	}
	switch status {
	case domain.StatusOpen:
		variables["isOpen"] = true
	case domain.StatusClosed:
		variables["isOpen"] = false
	default:
		variables["isOpen"] = nil
	}

	var data struct {
		Perp struct {
			Trades []wireTrade `json:"trades"`
		} `json:"perp"`
	}
	if err := c.query(ctx, tradesQuery, variables, &data); err != nil {
		return nil, err
	}
	if len(data.Perp.Trades) == 0 {
		return nil, domain.ErrEmptyResult
	}

	records := make([]domain.TradeRecord, 0, len(data.Perp.Trades))
	for _, t := range data.Perp.Trades {
		records = append(records, t.toDomain())
	}
	return records, nil
}

// FetchPrices returns the full oracle price set; filtering and pagination
// happen in the caller.
func (c *SaiClient) FetchPrices(ctx context.Context) ([]domain.PriceRecord, error) {
	var data struct {
		Oracle struct {
			TokenPricesUsd []wirePrice `json:"tokenPricesUsd"`
		} `json:"oracle"`
	}
	if err := c.query(ctx, pricesQuery, map[string]any{"limit": pricesLimit}, &data); err != nil {
		return nil, err
	}
	if len(data.Oracle.TokenPricesUsd) == 0 {
		return nil, domain.ErrEmptyResult
	}

	records := make([]domain.PriceRecord, 0, len(data.Oracle.TokenPricesUsd))
	for _, p := range data.Oracle.TokenPricesUsd {
		records = append(records, p.toDomain())
	}
	return records, nil
}

func (c *SaiClient) query(ctx context.Context, query string, variables map[string]any, out any) error {
	resp, err := retrier.DoWithData(c.retrier, ctx, func(ctx context.Context) (*resty.Response, error) {
		resp, err := c.http.R().
			SetContext(ctx).
			SetBody(gqlRequest{Query: query, Variables: variables}).
			Post(c.endpoint)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, errors.Errorf("backend returned status %d: %s", resp.StatusCode(), resp.String())
		}
		return resp, nil
	})
	if err != nil {
		return errors.Wrap(domain.ErrDataUnavailable, err.Error())
	}

	var payload gqlResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return errors.Wrap(domain.ErrDataUnavailable, "malformed backend response")
	}
	if len(payload.Errors) > 0 {
		return errors.Wrapf(domain.ErrDataUnavailable, "backend error: %s", payload.Errors[0].Message)
	}
	if err := json.Unmarshal(payload.Data, out); err != nil {
		return errors.Wrap(domain.ErrDataUnavailable, "malformed backend response")
	}
	return nil
}

func (t wireTrade) toDomain() domain.TradeRecord {
	rec := domain.TradeRecord{
		ID:       t.ID.String(),
		IsLong:   t.IsLong,
		Leverage: plain(t.Leverage),
	}
	if t.PerpBorrowing != nil && t.PerpBorrowing.BaseToken != nil {
		rec.Symbol = t.PerpBorrowing.BaseToken.Symbol
		if rec.Symbol == "" {
			rec.Symbol = t.PerpBorrowing.BaseToken.Name
		}
	}

	if t.IsOpen {
		open := &domain.OpenTrade{
			EntryPrice: macro(t.OpenPrice),
			Collateral: macro(t.OpenCollateralAmount),
		}
		if t.State != nil {
			open.PositionValue = macro(t.State.PositionValue)
			open.LiquidationPrice = macro(t.State.LiquidationPrice)
			open.PnL = macro(t.State.PnlCollateral)
			// pnlPct arrives already in percent
			open.PnLPercent = plain(t.State.PnlPct)
		}
		if t.OpenBlock != nil {
			open.OpenedAt = t.OpenBlock.BlockTS
		}
		rec.Open = open
		return rec
	}

	closed := &domain.ClosedTrade{
		EntryPrice: macro(t.OpenPrice),
		ExitPrice:  macro(t.ClosePrice),
		Collateral: macro(t.OpenCollateralAmount),
	}
	if t.OpenBlock != nil {
		closed.OpenedAt = t.OpenBlock.BlockTS
	}
	if t.CloseBlock != nil {
		closed.ClosedAt = t.CloseBlock.BlockTS
	}
	rec.Closed = closed
	return rec
}

func (p wirePrice) toDomain() domain.PriceRecord {
	rec := domain.PriceRecord{Value: plain(p.PriceUsd)}
	if p.Token != nil {
		rec.Symbol = p.Token.Symbol
		if rec.Symbol == "" {
			rec.Symbol = p.Token.Name
		}
		if rec.Symbol == "" {
			rec.Symbol = "Token " + p.Token.ID.String()
		}
	}
	return rec
}

// macro converts integer base units into display units.
func macro(n json.Number) decimal.Decimal {
	return plain(n).Shift(domain.MacroUnitExponent)
}

// plain parses a wire number without scaling. Missing fields decode to zero.
func plain(n json.Number) decimal.Decimal {
	if n == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}
