package commands

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"steamy/cmd/steamy/globals"
	"steamy/lib/steam/market"
	"steamy/lib/textutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	inventoryContext int

	listStart   int
	listCount   int
	listSort    string
	listDir     string
	listMatches []string

	historyRaw bool
)

func init() {
	inventoryCmd.Flags().IntVar(&inventoryContext, "context", market.DefaultContextID, "The inventory context id.")

	listCmd.Flags().IntVar(&listStart, "start", 0, "The index of the first result.")
	listCmd.Flags().IntVar(&listCount, "count", 10, "The number of results.")
	listCmd.Flags().StringVar(&listSort, "sort", "quantity", "The column to sort by.")
	listCmd.Flags().StringVar(&listDir, "dir", "desc", "The sort direction (asc or desc).")
	listCmd.Flags().StringSliceVar(&listMatches, "match", nil, "Only show names containing one of these.")

	historyCmd.Flags().BoolVar(&historyRaw, "raw", false, "Print the price points as embedded in the page.")

	rootCmd.AddCommand(inventoryCmd, countCmd, listCmd, metaCmd, priceCmd, bulkPriceCmd, historyCmd)
}

var inventoryCmd = &cobra.Command{
	Use:   "inventory <steamid64> [--context <id>]",
	Short: "Lists the items in a user's inventory.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := globals.Get(cmd.Context()).Market
		inventory, err := client.Inventory(cmd.Context(), args[0], inventoryContext)
		if err != nil {
			return err
		}

		descriptions, _ := inventory["rgDescriptions"].(map[string]any)
		keys := make([]string, 0, len(descriptions))
		for k := range descriptions {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		t := newTable()
		t.AppendHeader(table.Row{"Class", "Name", "Tradable"})
		for _, k := range keys {
			description, ok := descriptions[k].(map[string]any)
			if !ok {
				continue
			}
			t.AppendRow(table.Row{description["classid"], description["market_hash_name"], description["tradable"]})
		}
		t.AppendFooter(table.Row{"", fmt.Sprintf("%d descriptions", len(keys)), ""})
		t.Render()
		return nil
	},
}

var countCmd = &cobra.Command{
	Use:   "count <query>",
	Short: "Prints the number of market listings matching a query.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := globals.Get(cmd.Context()).Market.ItemCount(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(count)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list [query] [--match <text>]",
	Short: "Lists the names of market search results.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := market.ListQuery{
			Start:      listStart,
			Count:      listCount,
			SortColumn: listSort,
			SortDir:    listDir,
		}
		if len(args) > 0 {
			query.Query = args[0]
		}

		names, err := globals.Get(cmd.Context()).Market.ListItems(cmd.Context(), query)
		if err != nil {
			return err
		}

		t := newTable()
		t.AppendHeader(table.Row{"#", "Name"})
		for i, name := range names {
			if !textutil.MatchName(name, listMatches) {
				continue
			}
			t.AppendRow(table.Row{listStart + i, name})
		}
		t.Render()
		return nil
	},
}

var metaCmd = &cobra.Command{
	Use:   "meta <name>",
	Short: "Prints the class id, name id and image of an item.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := resolveName(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		meta, err := globals.Get(cmd.Context()).Market.ItemMeta(cmd.Context(), name)
		if err != nil {
			return err
		}

		nameID := "-"
		if meta.NameID != nil {
			nameID = strconv.FormatInt(*meta.NameID, 10)
		}
		t := newTable()
		t.AppendRows([]table.Row{
			{"Name", name},
			{"Class ID", meta.ClassID},
			{"Name ID", nameID},
			{"Image", meta.ImageURL},
		})
		t.Render()
		return nil
	},
}

var priceCmd = &cobra.Command{
	Use:   "price <name>",
	Short: "Prints the price overview of an item.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := resolveName(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		quote, err := globals.Get(cmd.Context()).Market.ItemPrice(cmd.Context(), name)
		if err != nil {
			return err
		}

		t := newTable()
		t.AppendHeader(table.Row{"Name", "Volume", "Lowest", "Median"})
		t.AppendRow(table.Row{
			name,
			quote.Volume,
			fmt.Sprintf("%.2f", quote.LowestPrice),
			fmt.Sprintf("%.2f", quote.MedianPrice),
		})
		t.Render()
		return nil
	},
}

var bulkPriceCmd = &cobra.Command{
	Use:   "bulk-price <nameid>",
	Short: "Prints the sell order volume and lowest sell order of an item.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nameID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid name id: %w", err)
		}
		price, err := globals.Get(cmd.Context()).Market.BulkItemPrice(cmd.Context(), nameID)
		if err != nil {
			return err
		}

		t := newTable()
		t.AppendHeader(table.Row{"Name ID", "Volume", "Price"})
		t.AppendRow(table.Row{nameID, price.Volume, fmt.Sprintf("%.2f", price.Price)})
		t.Render()
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history <name> [--raw]",
	Short: "Prints the price history of an item.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client := globals.Get(ctx).Market
		name, err := resolveName(ctx, args[0])
		if err != nil {
			return err
		}

		t := newTable()
		if historyRaw {
			points, err := client.HistoricalPriceData(ctx, name)
			if err != nil {
				return err
			}
			t.AppendHeader(table.Row{"Date", "Value", "Volume"})
			for _, p := range points {
				t.AppendRow(table.Row{p.Date, p.Value, p.Volume})
			}
			t.Render()
			return nil
		}

		history, err := client.ItemPriceHistory(ctx, name)
		if err != nil {
			return err
		}
		times := make([]time.Time, 0, len(history))
		for ts := range history {
			times = append(times, ts)
		}
		sort.Slice(times, func(i, j int) bool {
			return times[i].Before(times[j])
		})

		t.AppendHeader(table.Row{"Time", "Value"})
		for _, ts := range times {
			t.AppendRow(table.Row{ts.Format(time.DateTime), history[ts]})
		}
		t.Render()
		return nil
	},
}
