package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <owner/repo>",
		Short: "Look a repository up and add it to the list",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			identifier := ""
			if len(args) == 1 {
				identifier = args[0]
			}
			return a.runSearch(cmd, identifier)
		},
	}
}

func (a *App) runSearch(cmd *cobra.Command, identifier string) error {
	ctx := context.Background()
	d, err := a.Dashboard(ctx)
	if err != nil {
		return err
	}
	if err := d.SubmitSearch(ctx, identifier); err != nil {
		return err
	}

	repos := d.Repositories()
	added := repos[len(repos)-1]
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%d repositories)\n", added.FullName, len(repos))
	return nil
}
