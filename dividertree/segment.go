package dividertree

import (
	"strings"

	"github.com/elanza-health/hl7tree"
	"github.com/elanza-health/hl7tree/internal/convert"
)

// Segment is one line of a message: a type code (index 0) followed by
// fields (index 1+), separated by the header's field delimiter.
//
// An MSH-type segment is asymmetric: field 1 is the field delimiter
// character itself (a literal one-character field, never split further)
// and field 2 is the remaining encoding characters verbatim. Ordinary
// segments split normally starting from field 1.
type Segment struct {
	c   *cursor
	msg *Message
}

func newSegment(msg *Message, c *cursor) *Segment {
	s := &Segment{c: c, msg: msg}
	c.custom = s.fieldDivisions
	c.delimFn = func() rune { return msg.delimiters().Field }
	return s
}

// fieldDivisions computes this segment's field spans, honoring the MSH
// header asymmetry described on Segment.
func (s *Segment) fieldDivisions() []span {
	sp := s.c.ownSpan()
	runes := s.c.buf.runes
	if sp.length < 3 {
		return nil
	}
	typeCode := string(runes[sp.offset : sp.offset+3])
	afterType := sp.offset + 3
	if afterType >= sp.end() {
		return nil
	}

	fieldDelim := s.msg.delimiters().Field
	delimOffset := afterType
	remainder := span{delimOffset + 1, sp.end() - (delimOffset + 1)}
	pieces := splitSpan(runes, remainder, fieldDelim)

	if typeCode != "MSH" {
		return pieces
	}
	divs := make([]span, 0, len(pieces)+1)
	divs = append(divs, span{delimOffset, 1})
	divs = append(divs, pieces...)
	return divs
}

// TypeCode returns the segment's three-letter type code (field index 0).
func (s *Segment) TypeCode() string {
	sp := s.c.ownSpan()
	if sp.length < 3 {
		return ""
	}
	return string(s.c.buf.runes[sp.offset : sp.offset+3])
}

// SetTypeCode rewrites the segment's type code in place. Per design, this
// is rejected on a segment already carrying the MSH type: changing it
// would silently shift the meaning of fields 1 and 2.
func (s *Segment) SetTypeCode(code string) error {
	if s.TypeCode() == "MSH" {
		return &hl7tree.Error{Kind: hl7tree.KindInvalidIndex, Message: "cannot change the type code of a header segment"}
	}
	if len(code) != 3 {
		return &hl7tree.Error{Kind: hl7tree.KindInvalidIndex, Message: "segment type code must be exactly three characters"}
	}
	sp := s.c.ownSpan()
	if sp.length < 3 {
		s.c.buf.replace(sp.offset, sp.length, code)
		return nil
	}
	s.c.buf.replace(sp.offset, 3, code)
	return nil
}

func (s *Segment) Value() string { return s.c.value() }

func (s *Segment) SetValue(value string) error { return s.c.setValue(value) }

func (s *Segment) Values() []string {
	n := s.c.count()
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, s.At(i).Value())
	}
	return out
}

func (s *Segment) SetValues(values []string) error {
	delim := string(s.msg.delimiters().Field)
	return s.SetValue(s.TypeCode() + delim + strings.Join(values, delim))
}

func (s *Segment) Index() int { return s.c.pIdx + 1 }

func (s *Segment) Delimiter() rune { return s.msg.delimiters().Field }

func (s *Segment) Count() int { return s.c.count() }

// At returns field index i; index 0 returns the segment's type code as a
// leaf element, read-only with respect to splitting (writing it changes
// the segment's type, subject to SetTypeCode's header restriction).
func (s *Segment) At(i int) hl7tree.Element {
	if i < 1 {
		return &segmentTypeCode{seg: s}
	}
	if existing, ok := s.c.children[i-1]; ok {
		return existing.(*Field)
	}
	isMSH2 := s.TypeCode() == "MSH" && i == 2
	fc := s.c.childCursor(i-1, s.msg.delimiters().Repetition)
	fc.delimFn = func() rune { return s.msg.delimiters().Repetition }
	f := newField(s.msg, fc, isMSH2)
	s.c.children[i-1] = f
	return f
}

func (s *Segment) Exists() bool { return s.c.exists() }

func (s *Segment) HasSignificantDescendants() bool { return s.c.hasSignificantDescendants() }

func (s *Segment) Clone() hl7tree.Element {
	root := newDetachedRoot(newBuffer(s.Value()), s.msg.delimiters())
	c := &cursor{buf: root.c.buf, children: map[int]any{}}
	return newSegment(root, c)
}

func (s *Segment) Delete() error { return s.c.deleteSelf() }

func (s *Segment) Escape(v string) string { return hl7tree.Escape(v, s.msg.delimiters()) }

func (s *Segment) Unescape(v string) string { return hl7tree.Unescape(v, s.msg.delimiters()) }

func (s *Segment) As() hl7tree.Converter {
	return convert.New(convert.Accessor{Get: s.Value, Set: s.SetValue, Escape: s.Escape, Unescape: s.Unescape})
}

// segmentTypeCode is the Element handle for a segment's index-0 type code.
// It is a leaf: its value is always exactly the three type-code characters.
type segmentTypeCode struct {
	seg *Segment
}

func (t *segmentTypeCode) Value() string { return t.seg.TypeCode() }

func (t *segmentTypeCode) SetValue(value string) error { return t.seg.SetTypeCode(value) }

func (t *segmentTypeCode) Values() []string { return []string{t.Value()} }

func (t *segmentTypeCode) SetValues(values []string) error {
	if len(values) == 0 {
		return t.SetValue("")
	}
	return t.SetValue(values[0])
}

func (t *segmentTypeCode) Index() int { return 0 }

func (t *segmentTypeCode) Delimiter() rune { return 0 }

func (t *segmentTypeCode) Count() int {
	if t.Value() == "" {
		return 0
	}
	return 1
}

func (t *segmentTypeCode) At(i int) hl7tree.Element { return t }

func (t *segmentTypeCode) Exists() bool { return t.Value() != "" }

func (t *segmentTypeCode) HasSignificantDescendants() bool { return t.Value() != "" }

func (t *segmentTypeCode) Clone() hl7tree.Element {
	clone := *t
	return &clone
}

func (t *segmentTypeCode) Delete() error {
	return &hl7tree.Error{Kind: hl7tree.KindInvalidIndex, Message: "cannot delete a segment's type code"}
}

func (t *segmentTypeCode) Escape(v string) string { return t.seg.Escape(v) }

func (t *segmentTypeCode) Unescape(v string) string { return t.seg.Unescape(v) }

func (t *segmentTypeCode) As() hl7tree.Converter {
	return convert.New(convert.Accessor{Get: t.Value, Set: t.SetValue, Escape: t.Escape, Unescape: t.Unescape})
}
