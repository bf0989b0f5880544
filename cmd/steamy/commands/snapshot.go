package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"steamy/cmd/steamy/globals"
	"steamy/lib/pricestore"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var snapshotDb string

func init() {
	snapshotCmd.Flags().StringVar(&snapshotDb, "db", "prices.db", "The sqlite database to write snapshots to.")
	rootCmd.AddCommand(snapshotCmd)
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <name>... [--db <path/to/prices.db>]",
	Short: "Records the current price and price history of items in a database.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		g := globals.Get(ctx)

		db, err := pricestore.Open(ctx, snapshotDb)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer db.Close()
		store := pricestore.NewStore(db)

		t := newTable()
		t.AppendHeader(table.Row{"Name", "Volume", "Lowest", "History points"})

		var errs []error
		now := time.Now().UTC()
		for _, input := range args {
			name, err := resolveName(ctx, input)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			item := pricestore.Item{AppID: g.Config.AppID, Name: name}

			quote, err := g.Market.ItemPrice(ctx, name)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			err = store.PushQuote(ctx, pricestore.QuoteSnapshot{Item: item, Time: now, Quote: quote})
			if err != nil {
				errs = append(errs, fmt.Errorf("store quote of %s: %w", name, err))
				continue
			}

			history, err := g.Market.ItemPriceHistory(ctx, name)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			err = store.PushHistory(ctx, item, history)
			if err != nil {
				errs = append(errs, fmt.Errorf("store history of %s: %w", name, err))
				continue
			}

			t.AppendRow(table.Row{name, quote.Volume, fmt.Sprintf("%.2f", quote.LowestPrice), len(history)})
			slog.Debug("recorded snapshot", "name", name)
		}
		t.Render()

		return errors.Join(errs...)
	},
}
