//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type fakeRepo struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FakeGitHub answers the viewer, repositories and updateRepository
// operations the app sends. Repositories are numbered repo-00.. and order
// by index, so ascending and descending sorts are easy to tell apart.
type FakeGitHub struct {
	mu       sync.Mutex
	repos    []fakeRepo
	requests []graphqlRequest
	delay    time.Duration
	server   *httptest.Server
}

// NewFakeGitHub starts a server with count repositories
func NewFakeGitHub(t *testing.T, count int) *FakeGitHub {
	t.Helper()
	f := &FakeGitHub{}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		f.repos = append(f.repos, fakeRepo{
			ID:        fmt.Sprintf("R_%02d", i),
			Name:      fmt.Sprintf("repo-%02d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			UpdatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.server.Close)
	return f
}

// URL is the GraphQL endpoint
func (f *FakeGitHub) URL() string {
	return f.server.URL
}

// SetDelay slows every response down
func (f *FakeGitHub) SetDelay(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delay = d
}

// Requests returns the operations received so far
func (f *FakeGitHub) Requests() []graphqlRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]graphqlRequest(nil), f.requests...)
}

func (f *FakeGitHub) handle(w http.ResponseWriter, r *http.Request) {
	var req graphqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.requests = append(f.requests, req)
	delay := f.delay
	f.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}

	w.Header().Set("Content-Type", "application/json")
	var body interface{}
	switch {
	case strings.HasPrefix(req.Query, "mutation"):
		body = f.rename(req)
	case strings.Contains(req.Query, "repositories(first"):
		body = f.page(req)
	default:
		body = map[string]interface{}{"data": map[string]interface{}{"viewer": map[string]interface{}{
			"login":        "octocat",
			"name":         "The Octocat",
			"bio":          "e2e fixture",
			"repositories": map[string]interface{}{"totalCount": len(f.repos)},
		}}}
	}
	_ = json.NewEncoder(w).Encode(body)
}

func (f *FakeGitHub) page(req graphqlRequest) interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()

	first := 20
	if v, ok := req.Variables["first"].(float64); ok {
		first = int(v)
	}
	start := 0
	if after, ok := req.Variables["after"].(string); ok {
		start, _ = strconv.Atoi(strings.TrimPrefix(after, "c"))
	}
	descending := true
	if order, ok := req.Variables["orderBy"].(map[string]interface{}); ok {
		descending = order["direction"] != "ASC"
	}

	ordered := make([]fakeRepo, len(f.repos))
	copy(ordered, f.repos)
	if descending {
		for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		}
	}

	end := start + first
	if end > len(ordered) {
		end = len(ordered)
	}
	if start > end {
		start = end
	}

	nodes := make([]map[string]interface{}, 0, end-start)
	for _, repo := range ordered[start:end] {
		nodes = append(nodes, node(repo))
	}
	return map[string]interface{}{"data": map[string]interface{}{"viewer": map[string]interface{}{
		"repositories": map[string]interface{}{
			"nodes": nodes,
			"pageInfo": map[string]interface{}{
				"hasNextPage": end < len(ordered),
				"endCursor":   fmt.Sprintf("c%d", end),
			},
		},
	}}}
}

func (f *FakeGitHub) rename(req graphqlRequest) interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()

	input, _ := req.Variables["input"].(map[string]interface{})
	id, _ := input["repositoryId"].(string)
	name, _ := input["name"].(string)

	if name == "taken" {
		return map[string]interface{}{
			"data":   nil,
			"errors": []map[string]interface{}{{"message": "Name already exists on this account"}},
		}
	}
	for i := range f.repos {
		if f.repos[i].ID == id {
			f.repos[i].Name = name
			return map[string]interface{}{"data": map[string]interface{}{
				"updateRepository": map[string]interface{}{"repository": node(f.repos[i])},
			}}
		}
	}
	return map[string]interface{}{
		"data":   nil,
		"errors": []map[string]interface{}{{"message": "Could not resolve to a node"}},
	}
}

func node(repo fakeRepo) map[string]interface{} {
	return map[string]interface{}{
		"id":          repo.ID,
		"name":        repo.Name,
		"description": "fixture " + repo.Name,
		"createdAt":   repo.CreatedAt.Format(time.RFC3339),
		"updatedAt":   repo.UpdatedAt.Format(time.RFC3339),
		"url":         "https://github.com/octocat/" + repo.Name,
		"isPrivate":   false,
	}
}
