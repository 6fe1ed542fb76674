package format

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"

	"github.com/stahnma/gh-explorer/internal/detail"
	"github.com/stahnma/gh-explorer/internal/explorer"
)

// WriteJSON writes formatted JSON to w, optionally wrapped in a slack code block.
func WriteJSON(w io.Writer, v any, slackMode bool) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if slackMode {
		fmt.Fprintln(w, "```")
	}
	fmt.Fprintln(w, string(output))
	if slackMode {
		fmt.Fprintln(w, "```")
	}
	return nil
}

// WriteEntries writes one block per dashboard entry and returns how many it wrote.
func WriteEntries(w io.Writer, entries iter.Seq[explorer.Entry], slackMode bool) int {
	if slackMode {
		fmt.Fprintln(w, "```")
	}
	n := 0
	for e := range entries {
		fmt.Fprintf(w, "%s  (%s)\n", e.Repository.FullName, e.Repository.Owner.Login)
		if desc := e.Repository.DescriptionText(); desc != "" {
			fmt.Fprintf(w, "    %s\n", desc)
		}
		fmt.Fprintf(w, "    %s\n", e.Path)
		n++
	}
	if slackMode {
		fmt.Fprintln(w, "```")
	}
	return n
}

// WriteDetail writes a detail state: the repository with its counters
// followed by its issues, or the failure.
func WriteDetail(w io.Writer, st detail.State, slackMode bool) {
	if slackMode {
		fmt.Fprintln(w, "```")
		defer fmt.Fprintln(w, "```")
	}
	switch st.Status {
	case detail.Failed:
		fmt.Fprintf(w, "could not load repository %s\n", st.Identifier)
		return
	case detail.NotLoaded:
		fmt.Fprintf(w, "loading %s...\n", st.Identifier)
		return
	}

	repo := st.Repository
	fmt.Fprintf(w, "%s  (%s)\n", repo.FullName, repo.Owner.Login)
	if desc := repo.DescriptionText(); desc != "" {
		fmt.Fprintf(w, "%s\n", desc)
	}
	fmt.Fprintf(w, "Stars: %d  Forks: %d  Open issues: %d\n", repo.StargazersCount, repo.ForksCount, repo.OpenIssuesCount)
	fmt.Fprintln(w)
	if len(st.Issues) == 0 {
		fmt.Fprintln(w, "No open issues.")
	}
	for _, issue := range st.Issues {
		fmt.Fprintf(w, "- %s (%s)\n  %s\n", issue.Title, issue.User.Login, issue.HTMLURL)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Back: /")
}
