// Package explorer implements the dashboard: searching repositories by
// identifier and keeping the searched list in a persistent store.
package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"sync"

	ghub "github.com/stahnma/gh-explorer/internal/github"
	"github.com/stahnma/gh-explorer/internal/storage"
)

// StorageKey is the store key holding the JSON list of repositories.
const StorageKey = "@GithubExplorer:repositories"

// Entry is one navigable row of the dashboard.
type Entry struct {
	Index      int
	Repository ghub.Repository
	Path       string
}

// RepositoryPath is the detail route for a repository.
func RepositoryPath(fullName string) string {
	return "/repositories/" + fullName
}

// Dashboard holds the ordered list of searched repositories and mirrors it
// into a store on every change.
type Dashboard struct {
	client ghub.Client
	store  storage.Store
	logger *slog.Logger

	mu           sync.RWMutex
	repositories []ghub.Repository
	inputErr     *InputError
}

// NewDashboard seeds a dashboard from the list stored under StorageKey.
// A missing key gives an empty list; so does an unparsable value, which is
// logged and overwritten by the next change.
func NewDashboard(ctx context.Context, client ghub.Client, store storage.Store, logger *slog.Logger) (*Dashboard, error) {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dashboard{
		client:       client,
		store:        store,
		logger:       logger,
		repositories: []ghub.Repository{},
	}

	raw, found, err := store.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("reading stored repositories: %w", err)
	}
	if !found {
		logger.Debug("store miss", "key", StorageKey)
		return d, nil
	}
	logger.Debug("store hit", "key", StorageKey)

	var repos []ghub.Repository
	if err := json.Unmarshal([]byte(raw), &repos); err != nil {
		logger.Warn("ignoring unparsable stored repositories", "key", StorageKey, "error", err)
		return d, nil
	}
	if repos != nil {
		d.repositories = repos
	}
	return d, nil
}

// SubmitSearch looks identifier up and appends the result to the list.
// It returns an *InputError when identifier is empty or the lookup fails;
// the list is untouched in both cases. Duplicates are appended as-is.
func (d *Dashboard) SubmitSearch(ctx context.Context, identifier string) error {
	if identifier == "" {
		return d.fail(&InputError{Kind: EmptyIdentifier})
	}

	raw, _, err := d.client.GetRepository(ctx, identifier)
	var repo ghub.Repository
	if err == nil {
		repo, err = ghub.NormalizeRepository(raw)
	}
	if err != nil {
		d.logger.Debug("repository lookup failed", "identifier", identifier, "error", err)
		return d.fail(&InputError{Kind: NotFound, Cause: err})
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	next := append(slices.Clone(d.repositories), repo)
	if err := d.persistLocked(ctx, next); err != nil {
		return err
	}
	d.repositories = next
	d.inputErr = nil
	return nil
}

// Clear empties the list.
func (d *Dashboard) Clear(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.persistLocked(ctx, []ghub.Repository{}); err != nil {
		return err
	}
	d.repositories = []ghub.Repository{}
	d.inputErr = nil
	return nil
}

// Repositories returns a copy of the list in search order.
func (d *Dashboard) Repositories() []ghub.Repository {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.repositories)
}

// Entries yields one entry per repository. Each iteration starts from a
// fresh snapshot, so the sequence can be ranged over again.
func (d *Dashboard) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for i, repo := range d.Repositories() {
			if !yield(Entry{Index: i, Repository: repo, Path: RepositoryPath(repo.FullName)}) {
				return
			}
		}
	}
}

// InputError returns the error of the last failed search, or nil once a
// search has succeeded since.
func (d *Dashboard) InputError() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.inputErr == nil {
		return nil
	}
	return d.inputErr
}

func (d *Dashboard) fail(err *InputError) error {
	d.mu.Lock()
	d.inputErr = err
	d.mu.Unlock()
	return err
}

func (d *Dashboard) persistLocked(ctx context.Context, repos []ghub.Repository) error {
	data, err := json.Marshal(repos)
	if err != nil {
		return fmt.Errorf("encoding repositories: %w", err)
	}
	if err := d.store.Set(ctx, StorageKey, string(data)); err != nil {
		return fmt.Errorf("storing repositories: %w", err)
	}
	return nil
}
