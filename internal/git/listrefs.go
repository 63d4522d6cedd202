package git

import (
	"context"
	"strings"

	"emperror.dev/errors"
)

// ListRefs lists refs matching the given patterns (e.g. "refs/heads/").
func (r *Repo) ListRefs(ctx context.Context, refs *ListRefs) ([]RefInfo, error) {
	const refInfoPattern = "%(refname)%00" + "%(objecttype)%00" +
		"%(objectname)%00" + "%(upstream)%00" + "%(upstream:trackshort)"
	args := []string{"for-each-ref", "--format", refInfoPattern}
	args = append(args, refs.Patterns...)
	out, err := r.Git(ctx, args...)
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	lines := strings.Split(out, "\n")
	result := make([]RefInfo, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\x00")
		if len(parts) != 5 {
			return nil, errors.New("internal error: failed to parse ref info (expected 5 parts)")
		}
		result = append(result, RefInfo{
			Name:           parts[0],
			Type:           parts[1],
			Oid:            parts[2],
			Upstream:       parts[3],
			UpstreamStatus: parts[4],
		})
	}
	return result, nil
}

// ListRefs describes a for-each-ref query.
type ListRefs struct {
	Patterns []string
}

// RefInfo is one result row of a ListRefs query.
type RefInfo struct {
	Name string
	Type string
	Oid  string
	// Upstream is the name of the upstream ref (e.g.,
	// refs/remotes/<remote>/<branch>).
	Upstream string
	// UpstreamStatus is the status of the ref relative to its upstream.
	UpstreamStatus UpstreamStatus
}
