package pricestore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"steamy/lib/steam/market"

	_ "embed"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

// Open opens (or creates) the sqlite database at `path` and applies the schema.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// sqlite has a single writer and every connection to ":memory:" is its
	// own database
	db.SetMaxOpenConns(1)
	_, err = db.ExecContext(ctx, Schema)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

type Item struct {
	AppID int
	Name  string
}

type QuoteSnapshot struct {
	Item  Item
	Time  time.Time
	Quote market.PriceQuote
}

type HistoryPoint struct {
	Time  time.Time
	Value float64
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func itemID(ctx context.Context, q querier, item Item) (int64, error) {
	_, err := q.ExecContext(
		ctx,
		"insert into item(app_id, name) values (?, ?) on conflict(app_id, name) do nothing",
		item.AppID, item.Name,
	)
	if err != nil {
		return 0, err
	}

	var id int64
	err = q.QueryRowContext(
		ctx,
		"select id from item where app_id = ? and name = ?",
		item.AppID, item.Name,
	).Scan(&id)
	return id, err
}

// PushQuote records a price quote, a quote already recorded at the same
// second is replaced.
func (s Store) PushQuote(ctx context.Context, snapshot QuoteSnapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	id, err := itemID(ctx, tx, snapshot.Item)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(
		ctx,
		`insert or replace into quote_snapshot(item_id, time, volume, lowest_price, median_price)
		values (?, ?, ?, ?, ?)`,
		id,
		snapshot.Time.Unix(),
		snapshot.Quote.Volume,
		snapshot.Quote.LowestPrice,
		snapshot.Quote.MedianPrice,
	)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// PushHistory merges a price history into the stored one.
func (s Store) PushHistory(ctx context.Context, item Item, history map[time.Time]float64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	id, err := itemID(ctx, tx, item)
	if err != nil {
		return err
	}
	for ts, value := range history {
		_, err = tx.ExecContext(
			ctx,
			"insert or replace into price_point(item_id, time, value) values (?, ?, ?)",
			id, ts.Unix(), value,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s Store) Quotes(ctx context.Context, item Item) ([]QuoteSnapshot, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`select q.time, q.volume, q.lowest_price, q.median_price
		from quote_snapshot q
		join item i on i.id = q.item_id
		where i.app_id = ? and i.name = ?
		order by q.time`,
		item.AppID, item.Name,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []QuoteSnapshot
	for rows.Next() {
		var unix int64
		snapshot := QuoteSnapshot{Item: item}
		err = rows.Scan(&unix, &snapshot.Quote.Volume, &snapshot.Quote.LowestPrice, &snapshot.Quote.MedianPrice)
		if err != nil {
			return nil, err
		}
		snapshot.Time = time.Unix(unix, 0).UTC()
		out = append(out, snapshot)
	}
	return out, rows.Err()
}

func (s Store) History(ctx context.Context, item Item) ([]HistoryPoint, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`select p.time, p.value
		from price_point p
		join item i on i.id = p.item_id
		where i.app_id = ? and i.name = ?
		order by p.time`,
		item.AppID, item.Name,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryPoint
	for rows.Next() {
		var unix int64
		var point HistoryPoint
		err = rows.Scan(&unix, &point.Value)
		if err != nil {
			return nil, err
		}
		point.Time = time.Unix(unix, 0).UTC()
		out = append(out, point)
	}
	return out, rows.Err()
}
