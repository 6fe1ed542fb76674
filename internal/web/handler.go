package web

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stahnma/gh-explorer/internal/detail"
	"github.com/stahnma/gh-explorer/internal/explorer"
	ghub "github.com/stahnma/gh-explorer/internal/github"
)

type dashboardPage struct {
	Input   string
	Error   string
	Entries []explorer.Entry
}

type repositoryPage struct {
	Identifier string
	Failed     bool
	Repository *ghub.RepositoryDetail
	Issues     []ghub.Issue
}

type searchRequest struct {
	Repository string `json:"repository" form:"repository"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Dashboard renders the search form and the repository list.
func (h *Handler) Dashboard(c *gin.Context) {
	c.HTML(http.StatusOK, "dashboard.html", dashboardPage{
		Entries: slices.Collect(h.dashboard.Entries()),
	})
}

// Search handles the dashboard form. Success redirects back to the list;
// an input error re-renders the form with the message.
func (h *Handler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "dashboard.html", dashboardPage{
			Error:   "invalid form submission",
			Entries: slices.Collect(h.dashboard.Entries()),
		})
		return
	}

	if err := h.dashboard.SubmitSearch(c.Request.Context(), req.Repository); err != nil {
		var ie *explorer.InputError
		if !errors.As(err, &ie) {
			h.logger.Error("search failed", "identifier", req.Repository, "error", err)
			c.String(http.StatusInternalServerError, "could not save the repository list")
			return
		}
		c.HTML(http.StatusUnprocessableEntity, "dashboard.html", dashboardPage{
			Input:   req.Repository,
			Error:   ie.Error(),
			Entries: slices.Collect(h.dashboard.Entries()),
		})
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Repository renders the detail screen for the identifier in the path.
func (h *Handler) Repository(c *gin.Context) {
	identifier := identifierParam(c)
	st, err := detail.NewLoader(h.client, h.logger).Load(c.Request.Context(), identifier)

	status := http.StatusOK
	if err != nil {
		status = http.StatusBadGateway
	}
	c.HTML(status, "repository.html", repositoryPage{
		Identifier: identifier,
		Failed:     st.Status == detail.Failed,
		Repository: st.Repository,
		Issues:     st.Issues,
	})
}

// ListRepositories returns the list in its stored JSON shape.
func (h *Handler) ListRepositories(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboard.Repositories())
}

// CreateRepository runs a search from a JSON body and returns the new list.
func (h *Handler) CreateRepository(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	err := h.dashboard.SubmitSearch(c.Request.Context(), req.Repository)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, h.dashboard.Repositories())
	case explorer.IsKind(err, explorer.EmptyIdentifier):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case explorer.IsKind(err, explorer.NotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		h.logger.Error("search failed", "identifier", req.Repository, "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "could not save the repository list"})
	}
}

// GetRepository returns the detail payload for the identifier in the path.
func (h *Handler) GetRepository(c *gin.Context) {
	st, err := detail.NewLoader(h.client, h.logger).Load(c.Request.Context(), identifierParam(c))
	status := http.StatusOK
	if err != nil {
		status = http.StatusBadGateway
	}
	c.JSON(status, st.Payload())
}

// identifierParam strips the leading slash gin leaves on catch-all params.
func identifierParam(c *gin.Context) string {
	return strings.TrimPrefix(c.Param("repository"), "/")
}
