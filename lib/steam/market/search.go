package market

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"steamy/lib/htmlutil"
	"steamy/lib/steam"

	"github.com/PuerkitoBio/goquery"
)

// ItemCount returns how many market listings match `query`.
func (c *Client) ItemCount(ctx context.Context, query string) (int, error) {
	url := c.cfg.Routes.ItemCount(query, c.cfg.AppID)
	res, err := c.get(ctx, "item_count", url, query)
	if err != nil {
		c.tel.ReportBroken(report_client_item_count, err, query)
		return 0, err
	}

	var body struct {
		TotalCount *int `json:"total_count"`
	}
	err = decodeJSON("item_count", res, &body, query)
	if err != nil {
		return 0, err
	}
	if body.TotalCount == nil {
		return 0, steam.NewMarketAPIError("item_count", fmt.Errorf("total_count: %w", steam.ErrMissingField), query)
	}
	return *body.TotalCount, nil
}

// ListItems returns the names of the listings of a search results page. When
// the request fails and the client is not strict, it returns nil and no error.
func (c *Client) ListItems(ctx context.Context, q ListQuery) ([]string, error) {
	q = q.withDefaults()
	url := c.cfg.Routes.ListItems(q.Query, q.Start, q.Count, q.SortColumn, q.SortDir, c.cfg.AppID)

	res, err := c.get(ctx, "list_items", url, q.Query, q.Start, q.Count)
	if err != nil {
		c.tel.ReportBroken(report_client_list_items, err, url)
		if c.cfg.Strict {
			return nil, err
		}
		return nil, nil
	}

	var body struct {
		ResultsHTML string `json:"results_html"`
	}
	err = decodeJSON("list_items", res, &body, q.Query)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBufferString(body.ResultsHTML))
	if err != nil {
		return nil, steam.NewMarketAPIError("list_items", err, q.Query)
	}

	names := []string{}
	doc.Find(c.cfg.Selectors.ListingRow).Each(func(_ int, s *goquery.Selection) {
		names = append(names, strings.TrimSpace(htmlutil.SelectionLeadingText(s)))
	})
	return names, nil
}
