package pipeline

import "strings"

// Entry is one row of the mapping table: an editor icon id and the vector
// icon that draws it.
type Entry struct {
	Source string
	Target string // empty means "same as Source"
}

// Resolved pairs a glyph name with the id of its vector source file.
type Resolved struct {
	GlyphName string
	VectorID  string
}

// Resolve maps entries to (glyph name, vector id) pairs in table order.
//
// The glyph name is the source with prefix removed. An empty target falls
// back to the raw source. The vector id is the part of the target between
// the first and the second colon, or the whole target if it has no colon.
// Entries are not validated.
func Resolve(entries []Entry, prefix string) []Resolved {
	out := make([]Resolved, 0, len(entries))
	for _, e := range entries {
		target := e.Target
		if target == "" {
			target = e.Source
		}
		out = append(out, Resolved{
			GlyphName: strings.TrimPrefix(e.Source, prefix),
			VectorID:  vectorID(target),
		})
	}
	return out
}

func vectorID(target string) string {
	_, rest, found := strings.Cut(target, ":")
	if !found {
		return target
	}
	id, _, _ := strings.Cut(rest, ":")
	return id
}
