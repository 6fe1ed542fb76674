package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every repository from the list",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := a.Dashboard(ctx)
			if err != nil {
				return err
			}
			if err := d.Clear(ctx); err != nil {
				return fmt.Errorf("clearing repositories: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Repositories cleared.")
			return nil
		},
	}
}
