package iconfont

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/alnah/go-iconfont/internal/pipeline"
	"github.com/alnah/go-iconfont/internal/yamlutil"
)

// MappingEntry binds an editor icon id (Source) to a vector icon id
// (Target). An empty Target means the Source id is also the vector id.
type MappingEntry struct {
	Source string
	Target string
}

// Mapping is an ordered mapping table. Order decides code point
// assignment.
type Mapping []MappingEntry

// LoadMapping reads a mapping file. See ParseMapping for the format.
func LoadMapping(path string) (Mapping, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMappingNotFound, path)
		}
		return nil, fmt.Errorf("reading mapping %s: %w", path, err)
	}
	m, err := ParseMapping(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ParseMapping decodes a YAML or JSON object of icon id -> vector icon id.
// Key order is kept, duplicate keys are rejected, null means "same as the
// key" and other scalars are converted to strings.
//
//	codicon:debug: lucide:bug
//	codicon:alert:            # -> alert.svg
func ParseMapping(data []byte) (Mapping, error) {
	pairs, err := yamlutil.UnmarshalOrdered(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMappingParse, err)
	}

	m := make(Mapping, 0, len(pairs))
	for _, p := range pairs {
		var target string
		switch v := p.Value.(type) {
		case nil:
		case string:
			target = v
		case bool, int, int64, uint64, float64:
			target = fmt.Sprint(v)
		default:
			return nil, fmt.Errorf("%w: value of %q must be a string, got %T", ErrMappingParse, p.Key, p.Value)
		}
		m = append(m, MappingEntry{Source: p.Key, Target: target})
	}
	return m, nil
}

func (m Mapping) entries() []pipeline.Entry {
	out := make([]pipeline.Entry, len(m))
	for i, e := range m {
		out[i] = pipeline.Entry{Source: e.Source, Target: e.Target}
	}
	return out
}
