package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/stahnma/gh-explorer/internal/detail"
	"github.com/stahnma/gh-explorer/internal/tui"
)

func (a *App) newBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse repositories interactively",
		Long:  `Search repositories and open their issues in a terminal UI. Use tab to move between the search input and the list.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := a.Dashboard(ctx)
			if err != nil {
				return err
			}
			client, err := a.Client()
			if err != nil {
				return err
			}
			m := tui.New(ctx, d, detail.NewLoader(client, a.Logger), a.Logger)
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
}
