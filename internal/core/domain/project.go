package domain

import "strings"

// Project owns one entry log and at most one vector index, both keyed by ID.
type Project struct {
	ID   string `json:"project_id"`
	Name string `json:"name"`
}

// MatchProject returns the first project whose name appears in the query,
// case-insensitively. Returns false when no project matches.
func MatchProject(projects []Project, query string) (Project, bool) {
	q := strings.ToLower(query)
	for _, p := range projects {
		if p.Name != "" && strings.Contains(q, strings.ToLower(p.Name)) {
			return p, true
		}
	}
	return Project{}, false
}
