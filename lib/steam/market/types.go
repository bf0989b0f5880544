package market

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const DefaultContextID = 2

// Inventory is the inventory document exactly as the community returns it.
type Inventory map[string]any

func (i Inventory) Success() bool {
	switch v := i["success"].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	}
	return false
}

type ListQuery struct {
	Query      string
	Start      int
	Count      int
	SortColumn string
	SortDir    string
}

func (q ListQuery) withDefaults() ListQuery {
	if q.Count <= 0 {
		q.Count = 10
	}
	if q.SortColumn == "" {
		q.SortColumn = "quantity"
	}
	if q.SortDir == "" {
		q.SortDir = "desc"
	}
	return q
}

type ItemMeta struct {
	ClassID  int64
	NameID   *int64
	ImageURL string
}

// PriceQuote is the price overview of an item. Volume is -1 when the market
// did not report one.
type PriceQuote struct {
	Volume      int
	LowestPrice float64
	MedianPrice float64
}

type BulkPrice struct {
	Volume int
	Price  float64
}

// PricePoint is one entry of the price history embedded in an item page,
// ex. ["Nov 27 2013 01: +0", 2.456, "110"].
type PricePoint struct {
	Date   string
	Value  float64
	Volume string
}

func (p *PricePoint) UnmarshalJSON(data []byte) error {
	var fields []json.RawMessage
	err := json.Unmarshal(data, &fields)
	if err != nil {
		return err
	}
	if len(fields) < 2 {
		return fmt.Errorf("price point has %d fields, expected at least 2", len(fields))
	}

	err = json.Unmarshal(fields[0], &p.Date)
	if err != nil {
		return fmt.Errorf("price point date: %w", err)
	}
	p.Value, err = strconv.ParseFloat(rawNumber(fields[1]), 64)
	if err != nil {
		return fmt.Errorf("price point value: %w", err)
	}
	if len(fields) > 2 {
		p.Volume = rawNumber(fields[2])
	}
	return nil
}

// rawNumber returns a json number or a json string holding a number as text.
func rawNumber(raw json.RawMessage) string {
	text := strings.TrimSpace(string(raw))
	if unquoted, err := strconv.Unquote(text); err == nil {
		return unquoted
	}
	return text
}
