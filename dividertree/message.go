// Package dividertree implements the lazy cursor/divider backend (C3/C4):
// a message tree that parses and mutates a single shared character buffer
// in place, computing descendant offsets on demand and invalidating caches
// through the buffer's monotonic version counter.
package dividertree

import (
	"strings"

	"github.com/elanza-health/hl7tree"
	"github.com/elanza-health/hl7tree/internal/convert"
)

// Message is the root of a divider-backed element tree: it owns the shared
// character buffer every descendant reads and mutates through.
type Message struct {
	c *cursor

	// fixedDelims, when non-nil, is returned by delimiters() verbatim
	// instead of re-deriving from the first segment. Set on detached
	// clones of a non-MSH subtree, which carry no header of their own.
	fixedDelims *hl7tree.Delimiters
}

// NewMessage parses text into a Message. CRLF is normalized to CR; no
// particular segment is required to be present or first.
func NewMessage(text string) (*Message, error) {
	m := &Message{}
	m.c = newRootCursor(newBuffer(text), hl7tree.SegmentTerminator)
	m.c.children = map[int]any{}
	return m, nil
}

// newDetachedRoot builds a Message wrapper around buf whose delimiters are
// pinned to d rather than re-derived from content, for use as the synthetic
// root of a non-message Clone().
func newDetachedRoot(buf *buffer, d hl7tree.Delimiters) *Message {
	return &Message{
		c:           &cursor{buf: buf, delim: hl7tree.SegmentTerminator, children: map[int]any{}},
		fixedDelims: &d,
	}
}

// delimiters re-reads the delimiter set from the current first segment on
// every call, so edits to the header retarget downstream splitting.
func (m *Message) delimiters() hl7tree.Delimiters {
	if m.fixedDelims != nil {
		return *m.fixedDelims
	}
	segs := m.c.divisions()
	if len(segs) == 0 {
		return *hl7tree.DefaultDelimiters()
	}
	first := segs[0]
	raw := []byte(string(m.c.buf.runes[first.offset:first.end()]))
	if d, err := hl7tree.ParseDelimiters(raw); err == nil {
		return *d
	}
	return *hl7tree.DefaultDelimiters()
}

func (m *Message) Value() string { return m.c.value() }

func (m *Message) SetValue(value string) error {
	return m.c.setValue(normalizeLineEndings(value))
}

func (m *Message) Values() []string {
	n := m.c.count()
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, m.At(i).Value())
	}
	return out
}

func (m *Message) SetValues(values []string) error {
	return m.SetValue(strings.Join(values, string(hl7tree.SegmentTerminator)))
}

func (m *Message) Index() int { return 0 }

func (m *Message) Delimiter() rune { return hl7tree.SegmentTerminator }

func (m *Message) Count() int { return m.c.count() }

// At returns the Segment at 1-based index i, creating and caching its
// cursor on first access.
func (m *Message) At(i int) hl7tree.Element {
	if i < 1 {
		return &Segment{c: m.c.childCursor(-1, 0), msg: m}
	}
	if existing, ok := m.c.children[i-1]; ok {
		return existing.(*Segment)
	}
	seg := newSegment(m, m.c.childCursor(i-1, 0))
	m.c.children[i-1] = seg
	return seg
}

func (m *Message) Exists() bool { return m.c.exists() }

func (m *Message) HasSignificantDescendants() bool { return m.c.hasSignificantDescendants() }

func (m *Message) Clone() hl7tree.Element {
	clone, _ := NewMessage(m.Value())
	return clone
}

func (m *Message) Delete() error { return m.c.deleteSelf() }

func (m *Message) Escape(s string) string { return hl7tree.Escape(s, m.delimiters()) }

func (m *Message) Unescape(s string) string { return hl7tree.Unescape(s, m.delimiters()) }

func (m *Message) As() hl7tree.Converter {
	return convert.New(convert.Accessor{Get: m.Value, Set: m.SetValue, Escape: m.Escape, Unescape: m.Unescape})
}

// Segments returns every segment in the message whose type code equals
// name, in order.
func (m *Message) Segments(name string) []*Segment {
	var out []*Segment
	for i := 1; i <= m.Count(); i++ {
		seg := m.At(i).(*Segment)
		if seg.TypeCode() == name {
			out = append(out, seg)
		}
	}
	return out
}
