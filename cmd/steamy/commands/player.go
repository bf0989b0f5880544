package commands

import (
	"fmt"
	"strconv"
	"time"

	"steamy/cmd/steamy/globals"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(playerCmd)
}

var playerCmd = &cobra.Command{
	Use:   "player <steamid64 | vanity name>",
	Short: "Prints a player's summary, bans and recent games (needs an api key).",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client := globals.Get(ctx).WebAPI

		steamID := args[0]
		if _, err := strconv.ParseUint(steamID, 10, 64); err != nil {
			resolved, err := client.ResolveVanityURL(ctx, steamID)
			if err != nil {
				return err
			}
			if resolved == 0 {
				return fmt.Errorf("no player with vanity name %q", steamID)
			}
			steamID = strconv.FormatUint(resolved, 10)
		}

		summary, err := client.PlayerSummary(ctx, steamID)
		if err != nil {
			return err
		}
		bans, err := client.PlayerBans(ctx, steamID)
		if err != nil {
			return err
		}

		t := newTable()
		t.AppendRows([]table.Row{
			{"Steam ID", summary.SteamID},
			{"Name", summary.PersonaName},
			{"Profile", summary.ProfileURL},
			{"Created", time.Unix(summary.TimeCreated, 0).Format(time.DateOnly)},
			{"VAC banned", bans.VACBanned},
			{"Game bans", bans.NumberOfGameBans},
			{"Economy ban", bans.EconomyBan},
		})
		t.Render()

		games, err := client.RecentGames(ctx, steamID)
		if err != nil {
			return err
		}
		gamesTable := newTable()
		gamesTable.AppendHeader(table.Row{"App", "Name", "2 weeks (min)", "Total (min)"})
		for _, g := range games {
			gamesTable.AppendRow(table.Row{g.AppID, g.Name, g.Playtime2Weeks, g.PlaytimeForever})
		}
		gamesTable.Render()
		return nil
	},
}
