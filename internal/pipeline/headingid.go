package pipeline

import (
	"strconv"

	"github.com/goliatone/go-slug"
	"github.com/yuin/goldmark/ast"
)

// fallbackHeadingSlug is used when a heading has no sluggable text.
const fallbackHeadingSlug = "section"

// prefixedIDs implements goldmark's parser.IDs. One instance per document
// keeps IDs unique within that document only.
type prefixedIDs struct {
	prefix string
	seen   map[string]struct{}
}

func newPrefixedIDs(prefix string) *prefixedIDs {
	return &prefixedIDs{prefix: prefix, seen: make(map[string]struct{})}
}

// Generate returns prefix+slug(value), suffixed with -1, -2, ... on collision.
func (p *prefixedIDs) Generate(value []byte, _ ast.NodeKind) []byte {
	base, err := slug.Normalize(string(value))
	if err != nil || base == "" {
		base = fallbackHeadingSlug
	}
	base = p.prefix + base

	id := base
	for i := 1; ; i++ {
		if _, taken := p.seen[id]; !taken {
			break
		}
		id = base + "-" + strconv.Itoa(i)
	}
	p.seen[id] = struct{}{}
	return []byte(id)
}

// Put reserves an explicitly assigned ID.
func (p *prefixedIDs) Put(value []byte) {
	p.seen[string(value)] = struct{}{}
}
