package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"github.com/stahnma/gh-explorer/internal/config"
	"github.com/stahnma/gh-explorer/internal/explorer"
	ghub "github.com/stahnma/gh-explorer/internal/github"
	"github.com/stahnma/gh-explorer/internal/storage"
)

// App holds shared application state.
type App struct {
	Config   config.Config
	Store    storage.Store
	GHClient ghub.Client
	Logger   *slog.Logger
	GitSHA   string
	GitDirty string

	mu        sync.Mutex
	dashboard *explorer.Dashboard
}

// NewApp creates a new App from the given configuration. The store is opened
// on first use so that the --store flag can still change it.
func NewApp(cfg config.Config, gitSHA, gitDirty string) *App {
	return &App{
		Config:   cfg,
		Logger:   cfg.NewLogger(os.Stderr),
		GitSHA:   gitSHA,
		GitDirty: gitDirty,
	}
}

// Client returns the GitHub client, creating it if it doesn't exist.
func (a *App) Client() (ghub.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.ensureClient(); err != nil {
		return nil, err
	}
	return a.GHClient, nil
}

func (a *App) ensureClient() error {
	if a.GHClient != nil {
		return nil
	}
	client, err := ghub.NewClient(a.Config.APIURL, a.Config.GitHubToken)
	if err != nil {
		return fmt.Errorf("creating GitHub client: %w", err)
	}
	a.GHClient = client
	return nil
}

// Dashboard returns the dashboard, seeding it from the store on first use.
func (a *App) Dashboard(ctx context.Context) (*explorer.Dashboard, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.dashboard != nil {
		return a.dashboard, nil
	}
	if err := a.ensureClient(); err != nil {
		return nil, err
	}
	if a.Store == nil {
		store, err := storage.Open(ctx, a.Config)
		if err != nil {
			return nil, fmt.Errorf("opening %s store: %w", a.Config.StoreBackend, err)
		}
		a.Store = store
	}
	d, err := explorer.NewDashboard(ctx, a.GHClient, a.Store, a.Logger)
	if err != nil {
		return nil, err
	}
	a.dashboard = d
	return d, nil
}

// Close releases the store, if one was opened.
func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Store == nil {
		return nil
	}
	return storage.Close(a.Store)
}

// NewRootCommand creates the root cobra command with all subcommands.
func (a *App) NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gh-explorer",
		Short: "Search GitHub repositories and browse their open issues.",
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.PersistentFlags().StringVar(&a.Config.StoreBackend, "store", a.Config.StoreBackend, "Store backend: file, bolt, s3 or memory")
	rootCmd.PersistentFlags().StringVar(&a.Config.StorePath, "store-path", a.Config.StorePath, "Path of the file or bolt store")

	rootCmd.AddCommand(a.newSearchCommand())
	rootCmd.AddCommand(a.newListCommand())
	rootCmd.AddCommand(a.newShowCommand())
	rootCmd.AddCommand(a.newExportCommand())
	rootCmd.AddCommand(a.newClearCommand())
	rootCmd.AddCommand(a.newServeCommand())
	rootCmd.AddCommand(a.newBrowseCommand())
	rootCmd.AddCommand(a.newVersionCommand())

	return rootCmd
}
