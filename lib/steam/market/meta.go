package market

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"steamy/lib/steam"

	"github.com/PuerkitoBio/goquery"
)

// ItemMeta scrapes the ids and preview image of an item from its listing page.
func (c *Client) ItemMeta(ctx context.Context, name string) (ItemMeta, error) {
	url := c.cfg.Routes.ItemPage(c.cfg.AppID, name)
	res, err := c.get(ctx, "item_meta", url, name)
	if err != nil {
		c.tel.ReportBroken(report_client_item_meta, err, name)
		return ItemMeta{}, err
	}
	body := res.Body()

	classMatch := c.cfg.Patterns.ClassID.FindSubmatch(body)
	if classMatch == nil {
		return ItemMeta{}, steam.NewMarketAPIError("item_meta", steam.ErrClassIDNotFound, name)
	}
	classID, err := strconv.ParseInt(string(classMatch[1]), 10, 64)
	if err != nil {
		return ItemMeta{}, steam.NewMarketAPIError("item_meta", fmt.Errorf("classid: %w", err), name)
	}
	meta := ItemMeta{ClassID: classID}

	if nameMatch := c.cfg.Patterns.NameID.FindSubmatch(body); nameMatch != nil {
		nameID, err := strconv.ParseInt(string(nameMatch[1]), 10, 64)
		if err == nil {
			meta.NameID = &nameID
		} else {
			c.tel.ReportWarning(report_client_item_meta, "unparseable nameid", name, err)
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(body))
	if err != nil {
		c.tel.ReportWarning(report_client_item_meta, "parse html", name, err)
		return meta, nil
	}
	meta.ImageURL = doc.Find(c.cfg.Selectors.LargeImage).
		First().
		Children().
		First().
		AttrOr("src", "")

	return meta, nil
}
