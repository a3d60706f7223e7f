package domain

import (
	"fmt"
	"strings"
)

// RepoRef identifies a repository by owner and name
type RepoRef struct {
	Owner string
	Name  string
}

// ParseRepoRef parses an "owner/name" reference. Anything other than
// exactly two non-empty segments is a configuration error.
func ParseRepoRef(s string) (RepoRef, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return RepoRef{}, fmt.Errorf("invalid repository reference %q: expected owner/name", s)
	}
	return RepoRef{Owner: parts[0], Name: parts[1]}, nil
}

func (r RepoRef) String() string {
	return r.Owner + "/" + r.Name
}
