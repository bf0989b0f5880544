package commands

import (
	"fmt"
	"log/slog"

	"steamy/cmd/steamy/globals"

	"github.com/spf13/cobra"
)

var (
	membersPage int
	membersAll  bool
)

func init() {
	membersCmd.Flags().IntVar(&membersPage, "page", 1, "The page of the member list.")
	membersCmd.Flags().BoolVar(&membersAll, "all", false, "Follow every page of the member list.")
	membersCmd.MarkFlagsMutuallyExclusive("page", "all")
	rootCmd.AddCommand(membersCmd)
}

var membersCmd = &cobra.Command{
	Use:   "members <group> [--page <n> | --all]",
	Short: "Prints the steam ids of a group's members, one per line.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client := globals.Get(ctx).Community

		page := membersPage
		for {
			result, err := client.GroupMembersPage(ctx, args[0], page)
			if err != nil {
				return err
			}
			for _, member := range result.Members {
				fmt.Println(member)
			}
			slog.Debug("fetched member page", "page", page, "total", result.TotalPages)

			if !membersAll || !result.HasNext() || len(result.Members) == 0 {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			page++
		}
	},
}
