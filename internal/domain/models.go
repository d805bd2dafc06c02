package domain

import (
	"fmt"
	"strings"
	"time"

	"emperror.dev/errors"
)

// RepositorySummary represents one repository row in the list
type RepositorySummary struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description *string   `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt"`
	URL         string    `json:"url,omitempty" yaml:"url,omitempty"`
	IsPrivate   bool      `json:"isPrivate" yaml:"isPrivate"`
}

// DescriptionText returns the description or "" when unset
func (r RepositorySummary) DescriptionText() string {
	if r.Description == nil {
		return ""
	}
	return *r.Description
}

// PageInfo is the continuation part of a page
type PageInfo struct {
	HasNextPage bool    `json:"hasNextPage" yaml:"hasNextPage"`
	EndCursor   *string `json:"endCursor" yaml:"endCursor"`
}

// Page is one batch of repositories returned by a paginated fetch
type Page struct {
	Items    []RepositorySummary `json:"items" yaml:"items"`
	PageInfo PageInfo            `json:"pageInfo" yaml:"pageInfo"`
}

// Viewer is the signed-in user's profile
type Viewer struct {
	Login             string `json:"login" yaml:"login"`
	Name              string `json:"name" yaml:"name"`
	Bio               string `json:"bio,omitempty" yaml:"bio,omitempty"`
	TotalRepositories int    `json:"totalRepositories" yaml:"totalRepositories"`
}

// DisplayName returns the name, falling back to the login
func (v Viewer) DisplayName() string {
	if v.Name != "" {
		return v.Name
	}
	return v.Login
}

// SortKey selects the remote ordering of the repository list
type SortKey int

const (
	UpdatedDescending SortKey = iota
	UpdatedAscending
	CreatedDescending
	CreatedAscending
)

// DefaultSortKey is used on first load when nothing else is configured
const DefaultSortKey = UpdatedDescending

// SortKeys lists every sort key in selector order
var SortKeys = []SortKey{
	UpdatedDescending,
	UpdatedAscending,
	CreatedDescending,
	CreatedAscending,
}

// OrderField is the remote field a SortKey orders by
type OrderField string

// OrderDirection is the remote direction a SortKey orders in
type OrderDirection string

const (
	OrderFieldCreatedAt OrderField = "CREATED_AT"
	OrderFieldUpdatedAt OrderField = "UPDATED_AT"

	OrderDirectionAsc  OrderDirection = "ASC"
	OrderDirectionDesc OrderDirection = "DESC"
)

// Order maps the key to the remote ordering parameter
func (k SortKey) Order() (OrderField, OrderDirection) {
	switch k {
	case CreatedAscending:
		return OrderFieldCreatedAt, OrderDirectionAsc
	case CreatedDescending:
		return OrderFieldCreatedAt, OrderDirectionDesc
	case UpdatedAscending:
		return OrderFieldUpdatedAt, OrderDirectionAsc
	default:
		return OrderFieldUpdatedAt, OrderDirectionDesc
	}
}

// String returns the flag/config form of the key
func (k SortKey) String() string {
	switch k {
	case CreatedAscending:
		return "created-asc"
	case CreatedDescending:
		return "created-desc"
	case UpdatedAscending:
		return "updated-asc"
	case UpdatedDescending:
		return "updated-desc"
	default:
		return fmt.Sprintf("SortKey(%d)", int(k))
	}
}

// Label returns a human readable description of the key
func (k SortKey) Label() string {
	switch k {
	case CreatedAscending:
		return "Created (oldest first)"
	case CreatedDescending:
		return "Created (newest first)"
	case UpdatedAscending:
		return "Updated (oldest first)"
	default:
		return "Updated (newest first)"
	}
}

// ParseSortKey parses the flag/config form of a sort key
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "created-asc", "created_asc", "createdascending":
		return CreatedAscending, nil
	case "created-desc", "created_desc", "created", "createddescending":
		return CreatedDescending, nil
	case "updated-asc", "updated_asc", "updatedascending":
		return UpdatedAscending, nil
	case "updated-desc", "updated_desc", "updated", "updateddescending", "":
		return UpdatedDescending, nil
	}
	return DefaultSortKey, errors.Errorf("unknown sort key %q (want created-asc, created-desc, updated-asc or updated-desc)", s)
}

// FetchRequest describes one page fetch issued to the remote source
type FetchRequest struct {
	SortKey SortKey
	After   *string // nil for a first page
	First   bool
	Epoch   uint64 // generation of the session that issued it
}

// CursorText returns the cursor or "" for a first page
func (r FetchRequest) CursorText() string {
	if r.After == nil {
		return ""
	}
	return *r.After
}
