package github

import (
	"errors"
	"fmt"
	"strconv"

	gh "github.com/google/go-github/v68/github"
)

// ErrMalformedPayload is returned when a payload lacks a nested object the
// normalized record needs.
var ErrMalformedPayload = errors.New("malformed payload")

// NormalizeRepository maps the repository wire fields full_name, description,
// owner.login and owner.avatar_url onto a Repository. Values are not altered.
func NormalizeRepository(r *gh.Repository) (Repository, error) {
	if r == nil || r.Owner == nil {
		return Repository{}, fmt.Errorf("%w: repository without owner", ErrMalformedPayload)
	}
	var description *string
	if r.Description != nil {
		d := *r.Description
		description = &d
	}
	return Repository{
		FullName:    r.GetFullName(),
		Description: description,
		Owner: Owner{
			Login:     r.Owner.GetLogin(),
			AvatarURL: r.Owner.GetAvatarURL(),
		},
	}, nil
}

// NormalizeRepositoryDetail extends NormalizeRepository with stargazers_count,
// forks_count and open_issues_count.
func NormalizeRepositoryDetail(r *gh.Repository) (RepositoryDetail, error) {
	repo, err := NormalizeRepository(r)
	if err != nil {
		return RepositoryDetail{}, err
	}
	return RepositoryDetail{
		Repository:      repo,
		StargazersCount: r.GetStargazersCount(),
		ForksCount:      r.GetForksCount(),
		OpenIssuesCount: r.GetOpenIssuesCount(),
	}, nil
}

// NormalizeIssue maps id, title, html_url and user.login onto an Issue.
func NormalizeIssue(i *gh.Issue) (Issue, error) {
	if i == nil || i.User == nil {
		return Issue{}, fmt.Errorf("%w: issue without user", ErrMalformedPayload)
	}
	return Issue{
		ID:      strconv.FormatInt(i.GetID(), 10),
		Title:   i.GetTitle(),
		HTMLURL: i.GetHTMLURL(),
		User:    IssueUser{Login: i.User.GetLogin()},
	}, nil
}

// NormalizeIssues normalizes every issue, keeping the order the API returned.
func NormalizeIssues(issues []*gh.Issue) ([]Issue, error) {
	out := make([]Issue, 0, len(issues))
	for n, raw := range issues {
		issue, err := NormalizeIssue(raw)
		if err != nil {
			return nil, fmt.Errorf("issue %d: %w", n, err)
		}
		out = append(out, issue)
	}
	return out, nil
}
