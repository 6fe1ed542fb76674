package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stahnma/gh-explorer/internal/detail"
	"github.com/stahnma/gh-explorer/internal/format"
)

func (a *App) newShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <owner/repo>",
		Short: "Show a repository and its open issues",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			return a.runShow(cmd, args[0], asJSON)
		},
	}
	cmd.Flags().Bool("json", false, "Print the repository and issues as JSON")
	return cmd
}

func (a *App) runShow(cmd *cobra.Command, identifier string, asJSON bool) error {
	client, err := a.Client()
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	st, loadErr := detail.NewLoader(client, a.Logger).Load(context.Background(), identifier)
	if asJSON {
		if err := format.WriteJSON(w, st.Payload(), a.Config.SlackMode); err != nil {
			return err
		}
	} else {
		format.WriteDetail(w, st, a.Config.SlackMode)
	}
	if loadErr != nil {
		return fmt.Errorf("loading %s: %w", identifier, loadErr)
	}
	return nil
}
