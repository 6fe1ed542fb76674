package github

// Owner is the account a repository belongs to.
type Owner struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatarUrl"`
}

// Repository is a dashboard entry. Its JSON form is what gets persisted.
type Repository struct {
	FullName    string  `json:"fullName"`
	Description *string `json:"description"`
	Owner       Owner   `json:"owner"`
}

// DescriptionText returns the description, or "" when the repository has none.
func (r Repository) DescriptionText() string {
	if r.Description == nil {
		return ""
	}
	return *r.Description
}

// RepositoryDetail is the richer variant shown on the detail screen.
type RepositoryDetail struct {
	Repository
	StargazersCount int `json:"stargazersCount"`
	ForksCount      int `json:"forksCount"`
	OpenIssuesCount int `json:"openIssuesCount"`
}

// IssueUser is the author of an issue.
type IssueUser struct {
	Login string `json:"login"`
}

// Issue is an open issue of a repository.
type Issue struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	HTMLURL string    `json:"htmlUrl"`
	User    IssueUser `json:"user"`
}
