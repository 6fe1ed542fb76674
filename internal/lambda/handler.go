// Package lambda exposes the dashboard and detail operations as an AWS Lambda
// handler.
package lambda

import (
	"context"
	"errors"
	"fmt"

	"github.com/stahnma/gh-explorer/internal/commands"
	"github.com/stahnma/gh-explorer/internal/detail"
	"github.com/stahnma/gh-explorer/internal/explorer"
	ghub "github.com/stahnma/gh-explorer/internal/github"
)

// Actions accepted in Request.Action.
const (
	ActionSearch = "search"
	ActionList   = "list"
	ActionDetail = "detail"
)

// Request is the event payload.
type Request struct {
	Action     string `json:"action"`
	Repository string `json:"repository,omitempty"`
}

// Response carries the repository list for search and list, or the detail
// payload for detail. Input errors are reported in Error rather than failing
// the invocation.
type Response struct {
	Repositories []ghub.Repository `json:"repositories"`
	Detail       *detail.Payload   `json:"detail,omitempty"`
	Error        string            `json:"error,omitempty"`
}

// NewHandler returns a Lambda handler function backed by app's store and client.
func NewHandler(app *commands.App) func(context.Context, Request) (Response, error) {
	return func(ctx context.Context, req Request) (Response, error) {
		switch req.Action {
		case ActionSearch, ActionList:
			d, err := app.Dashboard(ctx)
			if err != nil {
				return Response{}, err
			}
			if req.Action == ActionSearch {
				if err := d.SubmitSearch(ctx, req.Repository); err != nil {
					var ie *explorer.InputError
					if !errors.As(err, &ie) {
						return Response{}, fmt.Errorf("search: %w", err)
					}
					return Response{Repositories: d.Repositories(), Error: ie.Error()}, nil
				}
			}
			return Response{Repositories: d.Repositories()}, nil

		case ActionDetail:
			client, err := app.Client()
			if err != nil {
				return Response{}, err
			}
			st, err := detail.NewLoader(client, app.Logger).Load(ctx, req.Repository)
			p := st.Payload()
			resp := Response{Detail: &p}
			if err != nil {
				resp.Error = p.Error
			}
			return resp, nil

		default:
			return Response{}, fmt.Errorf("unknown action %q", req.Action)
		}
	}
}
