package commands

import (
	"steamy/cmd/steamy/globals"
	"steamy/lib/steam/itemname"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse <name>...",
	Short: "Breaks market names into category, skin, wear and flags.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parser := itemname.NewParser(globals.Get(cmd.Context()).Tel)

		t := newTable()
		t.AppendHeader(table.Row{"Input", "Category", "Skin", "Wear", "StatTrak", "Holo", "Music Kit", "Partial"})
		for _, raw := range args {
			name := parser.Parse(raw)
			t.AppendRow(table.Row{raw, name.Category, name.Skin, name.Wear, name.StatTrak, name.Holo, name.MusicKit, name.Partial})
		}
		t.Render()
	},
}
