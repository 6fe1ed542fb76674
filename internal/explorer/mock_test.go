package explorer

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	gh "github.com/google/go-github/v68/github"
)

// mockClient implements ghub.Client for testing.
type mockClient struct {
	mu              sync.Mutex
	calls           []string
	getRepositoryFn func(ctx context.Context, identifier string) (*gh.Repository, *gh.Response, error)
	listIssuesFn    func(ctx context.Context, identifier string) ([]*gh.Issue, *gh.Response, error)
}

func (m *mockClient) GetRepository(ctx context.Context, identifier string) (*gh.Repository, *gh.Response, error) {
	m.mu.Lock()
	m.calls = append(m.calls, identifier)
	m.mu.Unlock()
	return m.getRepositoryFn(ctx, identifier)
}

func (m *mockClient) ListIssues(ctx context.Context, identifier string) ([]*gh.Issue, *gh.Response, error) {
	return m.listIssuesFn(ctx, identifier)
}

func (m *mockClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func okResponse() *gh.Response {
	return &gh.Response{Response: &http.Response{StatusCode: http.StatusOK}}
}

// makeRepository builds a repository payload for owner/name.
func makeRepository(owner, name string) *gh.Repository {
	return &gh.Repository{
		FullName:    gh.Ptr(owner + "/" + name),
		Description: gh.Ptr("description of " + name),
		Owner: &gh.User{
			Login:     gh.Ptr(owner),
			AvatarURL: gh.Ptr("https://avatars.example.com/" + owner),
		},
	}
}

// repoClient answers every lookup with a repository named after the
// identifier, except for identifiers in missing.
func repoClient(missing ...string) *mockClient {
	return &mockClient{
		getRepositoryFn: func(_ context.Context, identifier string) (*gh.Repository, *gh.Response, error) {
			for _, m := range missing {
				if m == identifier {
					return nil, &gh.Response{Response: &http.Response{StatusCode: http.StatusNotFound}}, errors.New("404 Not Found")
				}
			}
			owner, name, _ := strings.Cut(identifier, "/")
			return makeRepository(owner, name), okResponse(), nil
		},
	}
}
