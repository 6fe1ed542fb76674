package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/stahnma/gh-explorer/internal/explorer"
	ghub "github.com/stahnma/gh-explorer/internal/github"
)

type entryItem struct {
	entry explorer.Entry
}

func (i entryItem) Title() string { return i.entry.Repository.FullName }

func (i entryItem) Description() string {
	if desc := i.entry.Repository.DescriptionText(); desc != "" {
		return desc
	}
	return mutedStyle.Render("no description")
}

func (i entryItem) FilterValue() string { return i.entry.Repository.FullName }

type issueItem struct {
	issue ghub.Issue
}

func (i issueItem) Title() string { return i.issue.Title }

func (i issueItem) Description() string {
	return fmt.Sprintf("%s | %s", i.issue.User.Login, i.issue.HTMLURL)
}

func (i issueItem) FilterValue() string { return i.issue.Title }

func entryItems(d *explorer.Dashboard) []list.Item {
	items := []list.Item{}
	for e := range d.Entries() {
		items = append(items, entryItem{entry: e})
	}
	return items
}

func issueItems(issues []ghub.Issue) []list.Item {
	items := make([]list.Item, len(issues))
	for i, is := range issues {
		items[i] = issueItem{issue: is}
	}
	return items
}

func newList(items []list.Item, title string) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	return l
}
