package market

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"steamy/lib/steam"

	"github.com/PuerkitoBio/goquery"
)

func isNotDigit(r rune) bool {
	return !unicode.IsDigit(r)
}

// parsePrice reads prices like "$1,234.56" or "&#36;0.03".
func parsePrice(raw string) (float64, error) {
	parts := strings.Split(raw, ";")
	text := strings.TrimFunc(parts[len(parts)-1], isNotDigit)
	text = strings.ReplaceAll(text, ",", "")
	return strconv.ParseFloat(text, 64)
}

func parseVolume(raw string) (int, error) {
	return strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(raw), ",", ""))
}

// ItemPrice returns the price overview of an item. When the client is not
// strict, a failed request yields a zero quote, a missing volume -1 and missing
// or unreadable prices 0.
func (c *Client) ItemPrice(ctx context.Context, name string) (PriceQuote, error) {
	url := c.cfg.Routes.PriceOverview(name, c.cfg.AppID)
	res, err := c.get(ctx, "item_price", url, name)
	if err != nil {
		c.tel.ReportBroken(report_client_item_price, err, name)
		if c.cfg.Strict {
			return PriceQuote{}, err
		}
		return PriceQuote{}, nil
	}

	var body map[string]json.RawMessage
	err = decodeJSON("item_price", res, &body, name)
	if err != nil {
		if c.cfg.Strict {
			return PriceQuote{}, err
		}
		c.tel.ReportWarning(report_client_item_price, err, name)
		return PriceQuote{}, nil
	}

	quote := PriceQuote{Volume: -1}
	fieldErr := func(field string, err error) error {
		wrapped := steam.NewMarketAPIError("item_price", fmt.Errorf("%s: %w", field, err), name)
		if c.cfg.Strict {
			return wrapped
		}
		c.tel.ReportWarning(report_client_item_price, wrapped)
		return nil
	}

	if raw, ok := body["volume"]; ok {
		volume, err := parseVolume(rawNumber(raw))
		if err != nil {
			if ferr := fieldErr("volume", err); ferr != nil {
				return PriceQuote{}, ferr
			}
		} else {
			quote.Volume = volume
		}
	} else if ferr := fieldErr("volume", steam.ErrMissingField); ferr != nil {
		return PriceQuote{}, ferr
	}

	prices := []struct {
		field string
		out   *float64
	}{
		{field: "lowest_price", out: &quote.LowestPrice},
		{field: "median_price", out: &quote.MedianPrice},
	}
	for _, p := range prices {
		raw, ok := body[p.field]
		if !ok {
			if ferr := fieldErr(p.field, steam.ErrMissingField); ferr != nil {
				return PriceQuote{}, ferr
			}
			continue
		}
		price, err := parsePrice(rawNumber(raw))
		if err != nil {
			if ferr := fieldErr(p.field, err); ferr != nil {
				return PriceQuote{}, ferr
			}
			continue
		}
		*p.out = price
	}

	return quote, nil
}

// BulkItemPrice returns the sell order volume and the lowest sell order of an
// item identified by its name id (see ItemMeta).
func (c *Client) BulkItemPrice(ctx context.Context, nameID int64) (BulkPrice, error) {
	url := c.cfg.Routes.OrderHistogram(nameID)
	res, err := c.get(ctx, "bulk_item_price", url, nameID)
	if err != nil {
		c.tel.ReportBroken(report_client_bulk_price, err, nameID)
		return BulkPrice{}, err
	}

	var body struct {
		SellOrderSummary *string         `json:"sell_order_summary"`
		LowestSellOrder  json.RawMessage `json:"lowest_sell_order"`
	}
	err = decodeJSON("bulk_item_price", res, &body, nameID)
	if err != nil {
		return BulkPrice{}, err
	}
	if body.SellOrderSummary == nil {
		return BulkPrice{}, steam.NewMarketAPIError("bulk_item_price", fmt.Errorf("sell_order_summary: %w", steam.ErrMissingField), nameID)
	}
	if len(body.LowestSellOrder) == 0 || string(body.LowestSellOrder) == "null" {
		return BulkPrice{}, steam.NewMarketAPIError("bulk_item_price", fmt.Errorf("lowest_sell_order: %w", steam.ErrMissingField), nameID)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBufferString(*body.SellOrderSummary))
	if err != nil {
		return BulkPrice{}, steam.NewMarketAPIError("bulk_item_price", err, nameID)
	}
	summary := strings.Fields(doc.Find(c.cfg.Selectors.SellOrderSummary).First().Text())
	if len(summary) == 0 {
		return BulkPrice{}, steam.NewMarketAPIError("bulk_item_price", fmt.Errorf("sell order volume: %w", steam.ErrMissingField), nameID)
	}
	volume, err := parseVolume(summary[0])
	if err != nil {
		return BulkPrice{}, steam.NewMarketAPIError("bulk_item_price", fmt.Errorf("sell order volume: %w", err), nameID)
	}

	cents, err := strconv.ParseInt(rawNumber(body.LowestSellOrder), 10, 64)
	if err != nil {
		return BulkPrice{}, steam.NewMarketAPIError("bulk_item_price", fmt.Errorf("lowest_sell_order: %w", err), nameID)
	}

	return BulkPrice{Volume: volume, Price: float64(cents) / 100}, nil
}
