package detail

import (
	ghub "github.com/stahnma/gh-explorer/internal/github"
)

// Status is the lifecycle of a detail screen.
type Status int

const (
	NotLoaded Status = iota
	Loaded
	Failed
)

func (s Status) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "not_loaded"
	}
}

// State is what a detail screen renders. Repository is set only when
// Status is Loaded; Err only when it is Failed.
type State struct {
	Status     Status
	Identifier string
	Repository *ghub.RepositoryDetail
	Issues     []ghub.Issue
	Err        error
	Seq        uint64
}

// Payload is the JSON form of a State.
type Payload struct {
	Status     string                 `json:"status"`
	Identifier string                 `json:"identifier"`
	Repository *ghub.RepositoryDetail `json:"repository"`
	Issues     []ghub.Issue           `json:"issues"`
	Error      string                 `json:"error,omitempty"`
}

// Payload converts s for JSON output.
func (s State) Payload() Payload {
	p := Payload{
		Status:     s.Status.String(),
		Identifier: s.Identifier,
		Repository: s.Repository,
		Issues:     s.Issues,
	}
	if p.Issues == nil {
		p.Issues = []ghub.Issue{}
	}
	if s.Err != nil {
		p.Error = "could not load repository"
	}
	return p
}
