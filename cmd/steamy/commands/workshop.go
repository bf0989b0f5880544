package commands

import (
	"fmt"
	"strings"

	"steamy/cmd/steamy/globals"
	"steamy/lib/steam/workshop"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(workshopCmd)
}

func appendEntity(t table.Writer, e workshop.Entity, depth int) {
	indent := strings.Repeat("  ", depth)
	row := table.Row{indent + e.ID, e.Kind, e.Title, e.GameID, e.UserID, strings.Join(e.Tags, ", "), ""}
	if e.File != nil {
		row[6] = fmt.Sprintf("%s, %d images", e.File.Size, len(e.File.Images))
	}
	t.AppendRow(row)

	if e.Collection != nil {
		for _, child := range e.Collection.Files {
			appendEntity(t, child, depth+1)
		}
	}
}

var workshopCmd = &cobra.Command{
	Use:   "workshop <id>",
	Short: "Prints a workshop file or collection (with every file in it).",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entity, err := globals.Get(cmd.Context()).Workshop.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		t := newTable()
		t.AppendHeader(table.Row{"ID", "Kind", "Title", "Game", "User", "Tags", "Details"})
		appendEntity(t, entity, 0)
		t.Render()
		return nil
	},
}
