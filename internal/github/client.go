package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	gh "github.com/google/go-github/v68/github"
	"github.com/gregjones/httpcache"
	"golang.org/x/oauth2"
)

// DefaultBaseURL is the public GitHub REST API.
const DefaultBaseURL = "https://api.github.com/"

// Client defines the GitHub API methods used by this application.
// Identifiers are passed through verbatim as "owner/name".
type Client interface {
	GetRepository(ctx context.Context, identifier string) (*gh.Repository, *gh.Response, error)
	ListIssues(ctx context.Context, identifier string) ([]*gh.Issue, *gh.Response, error)
}

// realClient wraps the go-github client to implement Client.
type realClient struct {
	inner *gh.Client
}

// NewClient creates a GitHub API client for baseURL. The transport stack is
//  1. httpcache (ETag revalidation)
//  2. oauth2, only when token is non-empty
//  3. go-github-ratelimit (sleeps on secondary rate limits)
//
// An empty token makes anonymous requests.
func NewClient(baseURL, token string) (Client, error) {
	var transport http.RoundTripper = httpcache.NewMemoryCacheTransport()
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		transport = &oauth2.Transport{Source: ts, Base: transport}
	}
	return NewClientWithHTTPClient(github_ratelimit.NewClient(transport), baseURL)
}

// NewClientWithHTTPClient creates a Client over httpClient. Tests use it to
// point the client at an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (Client, error) {
	inner := gh.NewClient(httpClient)
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("parsing base URL: %w", err)
		}
		inner.BaseURL = u
	}
	return &realClient{inner: inner}, nil
}

func (c *realClient) GetRepository(ctx context.Context, identifier string) (*gh.Repository, *gh.Response, error) {
	req, err := c.inner.NewRequest(http.MethodGet, "repos/"+identifier, nil)
	if err != nil {
		return nil, nil, err
	}
	repo := new(gh.Repository)
	resp, err := c.inner.Do(ctx, req, repo)
	if err != nil {
		return nil, resp, err
	}
	return repo, resp, nil
}

func (c *realClient) ListIssues(ctx context.Context, identifier string) ([]*gh.Issue, *gh.Response, error) {
	req, err := c.inner.NewRequest(http.MethodGet, "repos/"+identifier+"/issues", nil)
	if err != nil {
		return nil, nil, err
	}
	var issues []*gh.Issue
	resp, err := c.inner.Do(ctx, req, &issues)
	if err != nil {
		return nil, resp, err
	}
	return issues, resp, nil
}
