package commands

import (
	"context"
	"fmt"
	"os"

	"steamy/cmd/steamy/globals"
	"steamy/lib/steam/itemname"
	"steamy/lib/steam/market"

	"github.com/jedib0t/go-pretty/v6/table"
)

var fuzzy bool

func init() {
	rootCmd.PersistentFlags().BoolVar(&fuzzy, "fuzzy", false, "Resolve item names against market search results.")
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

// resolveName returns `input` unless --fuzzy is set, in which case it is
// replaced by the closest market name found by searching for it.
func resolveName(ctx context.Context, input string) (string, error) {
	if !fuzzy {
		return input, nil
	}
	client := globals.Get(ctx).Market
	names, err := client.ListItems(ctx, market.ListQuery{Query: input, Count: 50})
	if err != nil {
		return "", err
	}
	matches := itemname.Closest(input, names, 1)
	if len(matches) == 0 {
		return "", fmt.Errorf("no market item matches %q", input)
	}
	return matches[0].Name, nil
}
