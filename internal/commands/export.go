package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"github.com/stahnma/gh-explorer/internal/format"
)

func (a *App) newExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export the repository list in JSON format",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.ExportJSON(context.Background(), cmd.OutOrStdout())
		},
	}
}

// ExportJSON writes the repository list to w in its stored JSON shape.
func (a *App) ExportJSON(ctx context.Context, w io.Writer) error {
	d, err := a.Dashboard(ctx)
	if err != nil {
		return err
	}
	return format.WriteJSON(w, d.Repositories(), a.Config.SlackMode)
}
