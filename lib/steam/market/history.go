package market

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"steamy/lib/steam"
)

// historyDateLayout matches the part of a price point date before the first
// colon, ex. "Nov 27 2013 01".
const historyDateLayout = "Jan 02 2006 15"

// HistoricalPriceData returns the raw price points embedded in an item's
// listing page.
func (c *Client) HistoricalPriceData(ctx context.Context, name string) ([]PricePoint, error) {
	url := c.cfg.Routes.ItemPage(c.cfg.AppID, name)
	res, err := c.get(ctx, "historical_price_data", url, name)
	if err != nil {
		c.tel.ReportBroken(report_client_price_history, err, name)
		return nil, err
	}
	body := res.String()

	patterns := c.cfg.Patterns
	if !strings.Contains(body, patterns.RawMarker) {
		return nil, steam.NewMarketAPIError("historical_price_data", steam.ErrMarkerNotFound, name)
	}
	_, after, _ := strings.Cut(body, patterns.RawPrefix)
	literal, _, _ := strings.Cut(after, ";")

	var points []PricePoint
	err = json.Unmarshal([]byte(literal), &points)
	if err != nil {
		return nil, steam.NewMarketAPIError("historical_price_data", fmt.Errorf("decode line1: %w", err), name)
	}
	return points, nil
}

// ItemPriceHistory returns the price history of an item keyed by hour (UTC).
// The trailing field of a date such as "Nov 27 2013 01: +0" is read as the
// hour of day, not as minutes.
// Later entries overwrite earlier ones that fall on the same hour.
func (c *Client) ItemPriceHistory(ctx context.Context, name string) (map[time.Time]float64, error) {
	url := c.cfg.Routes.ItemPage(c.cfg.AppID, name)
	res, err := c.get(ctx, "item_price_history", url, name)
	if err != nil {
		c.tel.ReportBroken(report_client_price_history, err, name)
		return nil, err
	}
	body := res.Body()

	patterns := c.cfg.Patterns
	if !bytes.Contains(body, []byte(patterns.HistoryMarker)) {
		return nil, steam.NewMarketAPIError("item_price_history", steam.ErrMarkerNotFound, name)
	}
	match := patterns.LineAssign.FindSubmatch(body)
	if match == nil {
		return nil, steam.NewMarketAPIError("item_price_history", steam.ErrMarkerNotFound, name)
	}

	var points []PricePoint
	err = json.Unmarshal(match[1], &points)
	if err != nil {
		return nil, steam.NewMarketAPIError("item_price_history", fmt.Errorf("decode line1: %w", err), name)
	}
	return c.priceHistory(name, points)
}

func (c *Client) priceHistory(name string, points []PricePoint) (map[time.Time]float64, error) {
	history := make(map[time.Time]float64, len(points))
	for _, p := range points {
		date, _, _ := strings.Cut(p.Date, ":")
		ts, err := time.ParseInLocation(historyDateLayout, strings.TrimSpace(date), time.UTC)
		if err != nil {
			if c.cfg.Strict {
				return nil, steam.NewMarketAPIError("item_price_history", fmt.Errorf("parse date: %w", err), name)
			}
			c.tel.ReportWarning(report_client_price_history, "unparseable date", name, p.Date)
			continue
		}
		history[ts] = p.Value
	}
	return history, nil
}
