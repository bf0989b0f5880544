package market

import (
	"context"
	"encoding/json"
	"fmt"

	"steamy/internal/assert"
	"steamy/lib/steam"
	"steamy/lib/steam/request"
	"steamy/lib/telemetry"

	"github.com/go-resty/resty/v2"
)

const (
	report_client_inventory     = "client.inventory"
	report_client_item_count    = "client.item-count"
	report_client_list_items    = "client.list-items"
	report_client_item_meta     = "client.item-meta"
	report_client_price_history = "client.price-history"
	report_client_item_price    = "client.item-price"
	report_client_bulk_price    = "client.bulk-item-price"
)

// Client reads inventories and market data for a single app.
type Client struct {
	http     *resty.Client
	cfg      steam.Config
	tel      telemetry.API
	executor request.Executor
}

func NewClient(http *resty.Client, cfg steam.Config, tel telemetry.API, opts ...request.Option) *Client {
	assert.NotNil(http)
	if tel == nil {
		tel = telemetry.NoopAPI{}
	}
	tel = telemetry.NewScopedAPI("market", tel)
	return &Client{
		http:     http,
		cfg:      cfg,
		tel:      tel,
		executor: request.NewExecutor(cfg.Retry, tel, opts...),
	}
}

// ForApp returns a copy of the client bound to another app.
func (c *Client) ForApp(appID int) *Client {
	clone := *c
	clone.cfg.AppID = appID
	return &clone
}

func (c *Client) AppID() int {
	return c.cfg.AppID
}

// get fetches `url` through the executor, an absent outcome becomes a
// MarketAPIError for `op`.
func (c *Client) get(ctx context.Context, op, url string, args ...any) (*resty.Response, error) {
	outcome := c.executor.Execute(ctx, url, func(ctx context.Context) (*resty.Response, error) {
		return c.http.R().SetContext(ctx).Get(url)
	})
	if !outcome.Present() {
		return nil, steam.NewMarketAPIError(op, steam.ErrRetriesExhausted, args...)
	}
	return outcome.Response, nil
}

func decodeJSON(op string, res *resty.Response, out any, args ...any) error {
	err := json.Unmarshal(res.Body(), out)
	if err != nil {
		return steam.NewMarketAPIError(op, fmt.Errorf("decode json: %w", err), args...)
	}
	return nil
}
