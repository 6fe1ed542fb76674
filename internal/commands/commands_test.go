package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	gh "github.com/google/go-github/v68/github"
	"github.com/stahnma/gh-explorer/internal/config"
	"github.com/stahnma/gh-explorer/internal/detail"
	"github.com/stahnma/gh-explorer/internal/explorer"
	ghub "github.com/stahnma/gh-explorer/internal/github"
	"github.com/stahnma/gh-explorer/internal/storage"
)

// mockClient implements ghub.Client for testing commands.
type mockClient struct {
	getRepositoryFn func(ctx context.Context, identifier string) (*gh.Repository, *gh.Response, error)
	listIssuesFn    func(ctx context.Context, identifier string) ([]*gh.Issue, *gh.Response, error)
}

func (m *mockClient) GetRepository(ctx context.Context, identifier string) (*gh.Repository, *gh.Response, error) {
	return m.getRepositoryFn(ctx, identifier)
}

func (m *mockClient) ListIssues(ctx context.Context, identifier string) ([]*gh.Issue, *gh.Response, error) {
	return m.listIssuesFn(ctx, identifier)
}

func emptyResponse() *gh.Response {
	return &gh.Response{Response: &http.Response{StatusCode: 200}}
}

func newTestApp(client ghub.Client) *App {
	return &App{
		Config: config.Config{
			StoreBackend: storage.BackendMemory,
		},
		Store:    storage.NewMemory(),
		GHClient: client,
		Logger:   config.Config{}.NewLogger(io.Discard),
		GitSHA:   "abc1234",
		GitDirty: "",
	}
}

// defaultMockClient knows every repository except nobody/*.
func defaultMockClient() *mockClient {
	return &mockClient{
		getRepositoryFn: func(_ context.Context, identifier string) (*gh.Repository, *gh.Response, error) {
			if strings.HasPrefix(identifier, "nobody/") {
				return nil, nil, errors.New("404 Not Found")
			}
			owner, _, _ := strings.Cut(identifier, "/")
			return &gh.Repository{
				FullName:        gh.Ptr(identifier),
				Description:     gh.Ptr("about " + identifier),
				Owner:           &gh.User{Login: gh.Ptr(owner), AvatarURL: gh.Ptr("https://avatars.example.com/" + owner)},
				StargazersCount: gh.Ptr(42),
				ForksCount:      gh.Ptr(5),
				OpenIssuesCount: gh.Ptr(1),
			}, emptyResponse(), nil
		},
		listIssuesFn: func(_ context.Context, identifier string) ([]*gh.Issue, *gh.Response, error) {
			return []*gh.Issue{{
				ID:      gh.Ptr(int64(101)),
				Title:   gh.Ptr("Typo in README"),
				HTMLURL: gh.Ptr("https://github.com/" + identifier + "/issues/101"),
				User:    &gh.User{Login: gh.Ptr("erin")},
			}}, emptyResponse(), nil
		},
	}
}

func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	cmd := app.NewRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// --- Version ---

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, newTestApp(nil), "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "abc1234") {
		t.Errorf("expected SHA in output, got:\n%s", out)
	}
	if strings.Contains(out, "Dirty") {
		t.Error("expected no dirty flag when GitDirty is empty")
	}
}

func TestVersionCommand_Dirty(t *testing.T) {
	app := newTestApp(nil)
	app.GitDirty = "true"
	out, err := execute(t, app, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Dirty: true") {
		t.Errorf("expected dirty flag, got:\n%s", out)
	}
}

// --- Search / List ---

func TestSearchCommand(t *testing.T) {
	app := newTestApp(defaultMockClient())

	out, err := execute(t, app, "search", "facebook/react")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Added facebook/react (1 repositories)") {
		t.Errorf("unexpected output:\n%s", out)
	}

	raw, found, err := app.Store.Get(context.Background(), explorer.StorageKey)
	if err != nil || !found {
		t.Fatalf("expected stored list, found=%v err=%v", found, err)
	}
	if !strings.Contains(raw, `"fullName":"facebook/react"`) {
		t.Errorf("stored list missing repository: %s", raw)
	}
}

func TestSearchCommand_InputErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		kind explorer.InputErrorKind
	}{
		{"no argument", []string{"search"}, explorer.EmptyIdentifier},
		{"empty argument", []string{"search", ""}, explorer.EmptyIdentifier},
		{"unknown repository", []string{"search", "nobody/nothing"}, explorer.NotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(defaultMockClient())
			_, err := execute(t, app, tt.args...)
			if !explorer.IsKind(err, tt.kind) {
				t.Errorf("expected input error kind %v, got %v", tt.kind, err)
			}
			d, _ := app.Dashboard(context.Background())
			if n := len(d.Repositories()); n != 0 {
				t.Errorf("expected empty list, got %d", n)
			}
		})
	}
}

func TestListCommand_Empty(t *testing.T) {
	out, err := execute(t, newTestApp(defaultMockClient()), "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No repositories yet") {
		t.Errorf("expected empty message, got:\n%s", out)
	}
}

func TestListCommand_KeepsSearchOrder(t *testing.T) {
	app := newTestApp(defaultMockClient())
	for _, id := range []string{"golang/go", "facebook/react", "golang/go"} {
		if _, err := execute(t, app, "search", id); err != nil {
			t.Fatal(err)
		}
	}

	out, err := execute(t, app, "list")
	if err != nil {
		t.Fatal(err)
	}
	first := strings.Index(out, "golang/go")
	second := strings.Index(out, "facebook/react")
	if first < 0 || second < first {
		t.Errorf("expected search order, got:\n%s", out)
	}
	if strings.Count(out, "/repositories/golang/go") != 2 {
		t.Errorf("expected duplicate entry preserved, got:\n%s", out)
	}
}

func TestListCommand_SlackMode(t *testing.T) {
	app := newTestApp(defaultMockClient())
	app.Config.SlackMode = true
	if _, err := execute(t, app, "search", "golang/go"); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, app, "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "```") {
		t.Errorf("expected slack code fence, got:\n%s", out)
	}
}

// --- Show ---

func TestShowCommand(t *testing.T) {
	out, err := execute(t, newTestApp(defaultMockClient()), "show", "golang/go")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"golang/go", "Stars: 42", "Forks: 5", "Typo in README", "erin"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestShowCommand_JSON(t *testing.T) {
	out, err := execute(t, newTestApp(defaultMockClient()), "show", "--json", "golang/go")
	if err != nil {
		t.Fatal(err)
	}
	var p detail.Payload
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if p.Status != "loaded" || p.Repository == nil || len(p.Issues) != 1 {
		t.Errorf("unexpected payload: %+v", p)
	}
}

func TestShowCommand_Failed(t *testing.T) {
	out, err := execute(t, newTestApp(defaultMockClient()), "show", "nobody/nothing")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(out, "could not load repository nobody/nothing") {
		t.Errorf("expected failure message, got:\n%s", out)
	}
}

// --- Export / Clear ---

func TestExportJSON(t *testing.T) {
	app := newTestApp(defaultMockClient())
	if _, err := execute(t, app, "search", "golang/go"); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := app.ExportJSON(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	var repos []ghub.Repository
	if err := json.Unmarshal(buf.Bytes(), &repos); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(repos) != 1 || repos[0].FullName != "golang/go" {
		t.Errorf("unexpected export: %+v", repos)
	}
}

func TestExportJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := newTestApp(defaultMockClient()).ExportJSON(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("expected empty array, got %q", buf.String())
	}
}

func TestClearCommand(t *testing.T) {
	app := newTestApp(defaultMockClient())
	if _, err := execute(t, app, "search", "golang/go"); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, app, "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Repositories cleared.") {
		t.Errorf("unexpected output:\n%s", out)
	}
	raw, _, _ := app.Store.Get(context.Background(), explorer.StorageKey)
	if raw != "[]" {
		t.Errorf("expected stored empty list, got %q", raw)
	}
}

// --- App ---

func TestDashboard_SeededFromStore(t *testing.T) {
	app := newTestApp(defaultMockClient())
	stored := `[{"fullName":"golang/go","description":null,"owner":{"login":"golang","avatarUrl":"https://avatars.example.com/golang"}}]`
	if err := app.Store.Set(context.Background(), explorer.StorageKey, stored); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, app, "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "golang/go") {
		t.Errorf("expected seeded repository, got:\n%s", out)
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	app := newTestApp(defaultMockClient())
	app.Config.ListenAddr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- app.Serve(ctx) }()
	cancel()

	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
