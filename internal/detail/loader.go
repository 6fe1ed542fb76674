// Package detail loads a repository together with its open issues for the
// detail screen.
package detail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	gh "github.com/google/go-github/v68/github"
	ghub "github.com/stahnma/gh-explorer/internal/github"
	"golang.org/x/sync/errgroup"
)

// ErrStale is returned by Load when a newer Load started before this one
// finished. The stale result is dropped.
var ErrStale = errors.New("stale repository load discarded")

// Loader owns the state of one detail screen. Only the most recent Load may
// write that state.
type Loader struct {
	client ghub.Client
	logger *slog.Logger

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	state  State
}

// NewLoader creates a Loader in the NotLoaded state.
func NewLoader(client ghub.Client, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		client: client,
		logger: logger,
		state:  State{Issues: []ghub.Issue{}},
	}
}

// Load fetches identifier's repository and issues and replaces the state
// with both, or with Failed if either fetch fails. Starting a Load cancels
// the previous one and resets the state to NotLoaded for identifier.
func (l *Loader) Load(ctx context.Context, identifier string) (State, error) {
	return l.Start(ctx, identifier)()
}

// Start performs the reset half of Load immediately and returns the fetch
// half. Callers that run the fetch elsewhere, such as a tea.Cmd, use it to
// keep the ordering of loads the same as the ordering of calls.
func (l *Loader) Start(ctx context.Context, identifier string) func() (State, error) {
	ctx, seq := l.begin(ctx, identifier)
	return func() (State, error) {
		repo, issues, err := Fetch(ctx, l.client, identifier)
		return l.finish(seq, identifier, repo, issues, err)
	}
}

// Cancel abandons the current load, if any, and returns to NotLoaded. A
// load in flight will report ErrStale.
func (l *Loader) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.seq++
	l.state = State{Issues: []ghub.Issue{}, Seq: l.seq}
}

// State returns the current state.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Loader) begin(ctx context.Context, identifier string) (context.Context, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
	ctx, l.cancel = context.WithCancel(ctx)
	l.seq++
	l.state = State{Identifier: identifier, Issues: []ghub.Issue{}, Seq: l.seq}
	return ctx, l.seq
}

func (l *Loader) finish(seq uint64, identifier string, repo *ghub.RepositoryDetail, issues []ghub.Issue, err error) (State, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if seq != l.seq {
		l.logger.Debug("discarding stale load", "identifier", identifier, "seq", seq, "current", l.seq)
		return l.state, ErrStale
	}
	l.cancel()
	l.cancel = nil

	if err != nil {
		l.logger.Debug("repository load failed", "identifier", identifier, "error", err)
		l.state = State{Status: Failed, Identifier: identifier, Issues: []ghub.Issue{}, Err: err, Seq: seq}
		return l.state, err
	}
	l.state = State{Status: Loaded, Identifier: identifier, Repository: repo, Issues: issues, Seq: seq}
	return l.state, nil
}

// Fetch requests the repository and its issues concurrently and returns
// both normalized, or the first error. Issues keep the API's order.
func Fetch(ctx context.Context, client ghub.Client, identifier string) (*ghub.RepositoryDetail, []ghub.Issue, error) {
	var (
		rawRepo   *gh.Repository
		rawIssues []*gh.Issue
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, _, err := client.GetRepository(ctx, identifier)
		if err != nil {
			return fmt.Errorf("fetching repository %s: %w", identifier, err)
		}
		rawRepo = r
		return nil
	})
	g.Go(func() error {
		is, _, err := client.ListIssues(ctx, identifier)
		if err != nil {
			return fmt.Errorf("fetching issues of %s: %w", identifier, err)
		}
		rawIssues = is
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	repo, err := ghub.NormalizeRepositoryDetail(rawRepo)
	if err != nil {
		return nil, nil, fmt.Errorf("repository %s: %w", identifier, err)
	}
	issues, err := ghub.NormalizeIssues(rawIssues)
	if err != nil {
		return nil, nil, fmt.Errorf("issues of %s: %w", identifier, err)
	}
	return &repo, issues, nil
}
