package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDescriptor is returned when the descriptor cannot be rendered.
var ErrDescriptor = errors.New("descriptor rendering failed")

// DescriptorOptions is the static font metadata of the descriptor.
type DescriptorOptions struct {
	FontID string
	Weight string
	Style  string
}

type descriptor struct {
	Fonts           []descriptorFont `json:"fonts"`
	IconDefinitions iconDefinitions  `json:"iconDefinitions"`
}

type descriptorFont struct {
	ID     string          `json:"id"`
	Src    []descriptorSrc `json:"src"`
	Weight string          `json:"weight"`
	Style  string          `json:"style"`
}

type descriptorSrc struct {
	Path   string `json:"path"`
	Format string `json:"format"`
}

// iconDefinitions is an ordered glyph name -> code point map.
type iconDefinitions struct {
	names []string
	index map[string]int
	chars []string
}

func (d *iconDefinitions) set(name, char string) {
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if i, ok := d.index[name]; ok {
		d.chars[i] = char
		return
	}
	d.index[name] = len(d.names)
	d.names = append(d.names, name)
	d.chars = append(d.chars, char)
}

// MarshalJSON writes the definitions as an object in insertion order.
func (d iconDefinitions) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range d.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(name)
		if err != nil {
			return nil, err
		}
		value, err := marshalNoEscape(struct {
			FontCharacter string `json:"fontCharacter"`
		}{d.chars[i]})
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FontCharacter formats a code point the way icon themes expect it: a
// backslash followed by uppercase hex.
func FontCharacter(cp rune) string {
	return fmt.Sprintf(`\%X`, cp)
}

// Descriptor renders the icon theme descriptor for glyphs. Definitions keep
// glyph order; a repeated name overwrites the earlier value in place.
// Identical input gives identical bytes.
func Descriptor(glyphs []Glyph, opts DescriptorOptions) ([]byte, error) {
	doc := descriptor{
		Fonts: []descriptorFont{{
			ID:     opts.FontID,
			Src:    []descriptorSrc{{Path: "./" + opts.FontID + ".woff", Format: "woff"}},
			Weight: opts.Weight,
			Style:  opts.Style,
		}},
	}
	for _, g := range glyphs {
		doc.IconDefinitions.set(g.Name, FontCharacter(g.CodePoint))
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDescriptor, err)
	}
	return buf.Bytes(), nil
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
