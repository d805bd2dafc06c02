package github

import (
	"context"
	"net/http"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"ghgrip/internal/domain"
)

// ErrEmptyName is returned when a rename is attempted with a blank name
var ErrEmptyName = errors.Sentinel("Repository name cannot be empty")

// API is the subset of the GitHub GraphQL API the app needs
type API interface {
	Viewer(ctx context.Context) (domain.Viewer, error)
	Repositories(ctx context.Context, req domain.FetchRequest, pageSize int) (domain.Page, error)
	RenameRepository(ctx context.Context, id, newName string) (domain.RepositorySummary, error)
}

// Client talks to the GitHub GraphQL API
type Client struct {
	gql *githubv4.Client
}

// NewClient creates a client authenticated with token. An empty endpoint
// means api.github.com; anything else is treated as an Enterprise GraphQL URL.
func NewClient(ctx context.Context, token, endpoint string) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return NewClientWithHTTP(oauth2.NewClient(ctx, src), endpoint)
}

// NewClientWithHTTP creates a client over an already authenticated http.Client
func NewClientWithHTTP(httpClient *http.Client, endpoint string) *Client {
	if endpoint == "" {
		return &Client{gql: githubv4.NewClient(httpClient)}
	}
	return &Client{gql: githubv4.NewEnterpriseClient(endpoint, httpClient)}
}

type repositoryNode struct {
	ID          string           `graphql:"id"`
	Name        string           `graphql:"name"`
	Description *string          `graphql:"description"`
	CreatedAt   time.Time        `graphql:"createdAt"`
	UpdatedAt   time.Time        `graphql:"updatedAt"`
	URL         string           `graphql:"url"`
	IsPrivate   githubv4.Boolean `graphql:"isPrivate"`
}

func (n repositoryNode) summary() domain.RepositorySummary {
	return domain.RepositorySummary{
		ID:          n.ID,
		Name:        n.Name,
		Description: n.Description,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
		URL:         n.URL,
		IsPrivate:   bool(n.IsPrivate),
	}
}

// Viewer fetches the signed-in user's profile
func (c *Client) Viewer(ctx context.Context) (domain.Viewer, error) {
	var q struct {
		Viewer struct {
			Login        string  `graphql:"login"`
			Name         *string `graphql:"name"`
			Bio          *string `graphql:"bio"`
			Repositories struct {
				TotalCount int `graphql:"totalCount"`
			} `graphql:"repositories(ownerAffiliations: OWNER)"`
		} `graphql:"viewer"`
	}

	if err := c.gql.Query(ctx, &q, nil); err != nil {
		return domain.Viewer{}, errors.Wrap(err, "fetch viewer")
	}

	v := domain.Viewer{
		Login:             q.Viewer.Login,
		TotalRepositories: q.Viewer.Repositories.TotalCount,
	}
	if q.Viewer.Name != nil {
		v.Name = *q.Viewer.Name
	}
	if q.Viewer.Bio != nil {
		v.Bio = *q.Viewer.Bio
	}
	return v, nil
}

// Repositories fetches one page of the viewer's own repositories.
// A request without a cursor fetches the first page.
func (c *Client) Repositories(ctx context.Context, req domain.FetchRequest, pageSize int) (domain.Page, error) {
	var q struct {
		Viewer struct {
			Repositories struct {
				Nodes    []repositoryNode `graphql:"nodes"`
				PageInfo struct {
					HasNextPage bool    `graphql:"hasNextPage"`
					EndCursor   *string `graphql:"endCursor"`
				} `graphql:"pageInfo"`
			} `graphql:"repositories(first: $first, after: $after, orderBy: $orderBy, ownerAffiliations: OWNER)"`
		} `graphql:"viewer"`
	}

	variables := map[string]interface{}{
		"first":   githubv4.Int(pageSize),
		"after":   (*githubv4.String)(nil),
		"orderBy": repositoryOrder(req.SortKey),
	}
	if req.After != nil {
		variables["after"] = githubv4.NewString(githubv4.String(*req.After))
	}

	if err := c.gql.Query(ctx, &q, variables); err != nil {
		return domain.Page{}, errors.WithDetails(
			errors.Wrap(err, "fetch repositories"),
			"sort", req.SortKey.String(), "after", req.CursorText(),
		)
	}

	repos := q.Viewer.Repositories
	page := domain.Page{
		Items: make([]domain.RepositorySummary, 0, len(repos.Nodes)),
		PageInfo: domain.PageInfo{
			HasNextPage: repos.PageInfo.HasNextPage,
			EndCursor:   repos.PageInfo.EndCursor,
		},
	}
	for _, n := range repos.Nodes {
		page.Items = append(page.Items, n.summary())
	}
	return page, nil
}

// RenameRepository changes a repository's name and returns the new id/name pair
func (c *Client) RenameRepository(ctx context.Context, id, newName string) (domain.RepositorySummary, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return domain.RepositorySummary{}, ErrEmptyName
	}

	var m struct {
		UpdateRepository struct {
			Repository repositoryNode `graphql:"repository"`
		} `graphql:"updateRepository(input: $input)"`
	}
	input := githubv4.UpdateRepositoryInput{
		RepositoryID: githubv4.ID(id),
		Name:         githubv4.NewString(githubv4.String(newName)),
	}

	if err := c.gql.Mutate(ctx, &m, input, nil); err != nil {
		return domain.RepositorySummary{}, errors.WithDetails(
			errors.Wrap(err, "rename repository"),
			"repo", id, "name", newName,
		)
	}
	return m.UpdateRepository.Repository.summary(), nil
}

func repositoryOrder(key domain.SortKey) githubv4.RepositoryOrder {
	field, direction := key.Order()

	order := githubv4.RepositoryOrder{
		Field:     githubv4.RepositoryOrderFieldUpdatedAt,
		Direction: githubv4.OrderDirectionDesc,
	}
	if field == domain.OrderFieldCreatedAt {
		order.Field = githubv4.RepositoryOrderFieldCreatedAt
	}
	if direction == domain.OrderDirectionAsc {
		order.Direction = githubv4.OrderDirectionAsc
	}
	return order
}
