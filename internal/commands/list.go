package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stahnma/gh-explorer/internal/format"
)

func (a *App) newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List searched repositories in search order",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.Dashboard(context.Background())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if n := format.WriteEntries(w, d.Entries(), a.Config.SlackMode); n == 0 {
				fmt.Fprintln(w, "No repositories yet. Add one with: search owner/repo")
			}
			return nil
		},
	}
}
