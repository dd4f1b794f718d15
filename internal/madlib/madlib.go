// Package madlib parses sentence templates with bracketed placeholders, e.g.
// "The [adjective] [noun] jumped." It is a standalone utility with no
// knowledge of the feed engine.
package madlib

import (
	"fmt"
	"strings"
)

// Segment is one run of a parsed template: either literal text or a
// placeholder to be filled in.
type Segment struct {
	// Text is the literal run, or the placeholder's label.
	Text string

	// Placeholder marks Text as a placeholder label rather than a literal.
	Placeholder bool
}

// Template is a parsed madlib template.
type Template struct {
	segments []Segment
}

// Parse splits a template on [placeholder] brackets. An opening bracket with
// no closing bracket is an error; empty placeholder labels are allowed.
func Parse(content string) (*Template, error) {
	var segments []Segment
	rest := content

	for {
		open := strings.IndexByte(rest, '[')
		if open == -1 {
			if rest != "" {
				segments = append(segments, Segment{Text: rest})
			}
			break
		}

		if open > 0 {
			segments = append(segments, Segment{Text: rest[:open]})
		}

		closing := strings.IndexByte(rest[open:], ']')
		if closing == -1 {
			return nil, fmt.Errorf("unterminated placeholder at offset %d", len(content)-len(rest)+open)
		}
		closing += open

		segments = append(segments, Segment{
			Text:        rest[open+1 : closing],
			Placeholder: true,
		})
		rest = rest[closing+1:]
	}

	return &Template{segments: segments}, nil
}

// Segments returns the parsed runs in order.
func (t *Template) Segments() []Segment {
	return t.segments
}

// Placeholders returns the placeholder labels in order of appearance.
func (t *Template) Placeholders() []string {
	var labels []string
	for _, seg := range t.segments {
		if seg.Placeholder {
			labels = append(labels, seg.Text)
		}
	}
	return labels
}

// Render fills placeholders positionally from inputs. A missing or empty
// input leaves the placeholder's label in place, matching how the original
// presented unfilled blanks.
func (t *Template) Render(inputs []string) string {
	var b strings.Builder
	idx := 0
	for _, seg := range t.segments {
		if !seg.Placeholder {
			b.WriteString(seg.Text)
			continue
		}
		if idx < len(inputs) && inputs[idx] != "" {
			b.WriteString(inputs[idx])
		} else {
			b.WriteString(seg.Text)
		}
		idx++
	}
	return b.String()
}
