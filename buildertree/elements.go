package buildertree

import (
	"github.com/elanza-health/hl7tree"
	"github.com/elanza-health/hl7tree/internal/convert"
)

// SegmentBuilder is a builder-tree segment: a sparse map from 1-based
// field index to FieldBuilder, plus its own three-letter type code.
type SegmentBuilder struct{ n *bnode }

func (s *SegmentBuilder) TypeCode() string { return s.n.typeCode() }

// SetTypeCode rewrites the segment's type code, rejecting the change on an
// existing MSH header (it would silently shift the field 1/2 asymmetry).
func (s *SegmentBuilder) SetTypeCode(code string) error {
	if s.n.typeCode() == "MSH" {
		return &hl7tree.Error{Kind: hl7tree.KindInvalidIndex, Message: "cannot change the type code of a header segment"}
	}
	if len(code) != 3 {
		return &hl7tree.Error{Kind: hl7tree.KindInvalidIndex, Message: "segment type code must be exactly three characters"}
	}
	return s.n.setValue(code + s.n.reconstructFields())
}

func (s *SegmentBuilder) Value() string { return s.n.value() }

func (s *SegmentBuilder) SetValue(value string) error { return s.n.setValue(value) }

func (s *SegmentBuilder) Values() []string { return s.n.values() }

func (s *SegmentBuilder) SetValues(values []string) error { return s.n.setValues(values) }

// SetValuesFrom overwrites fields from start onward, preserving earlier
// siblings.
func (s *SegmentBuilder) SetValuesFrom(start int, values []string) error {
	return s.n.setValuesFrom(start, values)
}

func (s *SegmentBuilder) Index() int { return s.n.index }

func (s *SegmentBuilder) Delimiter() rune { return s.n.root.delims.Field }

func (s *SegmentBuilder) Count() int { return s.n.count() }

func (s *SegmentBuilder) At(i int) hl7tree.Element {
	if i < 1 {
		return &segmentTypeCodeBuilder{s: s}
	}
	return &FieldBuilder{n: s.n.child(i)}
}

func (s *SegmentBuilder) Exists() bool { return s.n.exists() }

func (s *SegmentBuilder) HasSignificantDescendants() bool { return s.n.hasSignificantDescendants() }

func (s *SegmentBuilder) Clone() hl7tree.Element {
	return &SegmentBuilder{n: s.n.clone()}
}

func (s *SegmentBuilder) Delete() error { return s.n.deleteSelf() }

func (s *SegmentBuilder) Escape(v string) string { return hl7tree.Escape(v, s.n.root.delims) }

func (s *SegmentBuilder) Unescape(v string) string { return hl7tree.Unescape(v, s.n.root.delims) }

func (s *SegmentBuilder) As() hl7tree.Converter {
	return convert.New(convert.Accessor{Get: s.Value, Set: s.SetValue, Escape: s.Escape, Unescape: s.Unescape})
}

// Field sets field i and returns s for chaining.
func (s *SegmentBuilder) Field(i int, v string) *SegmentBuilder {
	s.n.setChild(i, v)
	return s
}

type segmentTypeCodeBuilder struct{ s *SegmentBuilder }

func (t *segmentTypeCodeBuilder) Value() string           { return t.s.TypeCode() }
func (t *segmentTypeCodeBuilder) SetValue(v string) error { return t.s.SetTypeCode(v) }
func (t *segmentTypeCodeBuilder) Values() []string        { return []string{t.Value()} }

func (t *segmentTypeCodeBuilder) SetValues(v []string) error {
	if len(v) == 0 {
		return t.SetValue("")
	}
	return t.SetValue(v[0])
}

func (t *segmentTypeCodeBuilder) Index() int      { return 0 }
func (t *segmentTypeCodeBuilder) Delimiter() rune { return 0 }

func (t *segmentTypeCodeBuilder) Count() int {
	if t.Value() == "" {
		return 0
	}
	return 1
}

func (t *segmentTypeCodeBuilder) At(i int) hl7tree.Element        { return t }
func (t *segmentTypeCodeBuilder) Exists() bool                    { return t.Value() != "" }
func (t *segmentTypeCodeBuilder) HasSignificantDescendants() bool { return t.Value() != "" }

func (t *segmentTypeCodeBuilder) Clone() hl7tree.Element {
	clone := *t
	return &clone
}
func (t *segmentTypeCodeBuilder) Delete() error {
	return &hl7tree.Error{Kind: hl7tree.KindInvalidIndex, Message: "cannot delete a segment's type code"}
}
func (t *segmentTypeCodeBuilder) Escape(v string) string   { return t.s.Escape(v) }
func (t *segmentTypeCodeBuilder) Unescape(v string) string { return t.s.Unescape(v) }
func (t *segmentTypeCodeBuilder) As() hl7tree.Converter {
	return convert.New(convert.Accessor{Get: t.Value, Set: t.SetValue, Escape: t.Escape, Unescape: t.Unescape})
}

// FieldBuilder is a builder-tree field: a sparse map from 1-based
// repetition index to RepetitionBuilder.
type FieldBuilder struct{ n *bnode }

func (f *FieldBuilder) Value() string { return f.n.value() }

func (f *FieldBuilder) SetValue(value string) error { return f.n.setValue(value) }

func (f *FieldBuilder) Values() []string { return f.n.values() }

func (f *FieldBuilder) SetValues(values []string) error { return f.n.setValues(values) }

func (f *FieldBuilder) SetValuesFrom(start int, values []string) error {
	return f.n.setValuesFrom(start, values)
}

func (f *FieldBuilder) Index() int { return f.n.index }

func (f *FieldBuilder) Delimiter() rune { return f.n.delim() }

func (f *FieldBuilder) Count() int { return f.n.count() }

func (f *FieldBuilder) At(i int) hl7tree.Element { return &RepetitionBuilder{n: f.n.child(i)} }

func (f *FieldBuilder) Exists() bool { return f.n.exists() }

func (f *FieldBuilder) HasSignificantDescendants() bool { return f.n.hasSignificantDescendants() }

func (f *FieldBuilder) Clone() hl7tree.Element { return &FieldBuilder{n: f.n.clone()} }

func (f *FieldBuilder) Delete() error { return f.n.deleteSelf() }

func (f *FieldBuilder) Escape(v string) string { return hl7tree.Escape(v, f.n.root.delims) }

func (f *FieldBuilder) Unescape(v string) string { return hl7tree.Unescape(v, f.n.root.delims) }

func (f *FieldBuilder) As() hl7tree.Converter {
	return convert.New(convert.Accessor{Get: f.Value, Set: f.SetValue, Escape: f.Escape, Unescape: f.Unescape})
}

// FieldRepetition sets repetition i and returns f for chaining.
func (f *FieldBuilder) FieldRepetition(i int, v string) *FieldBuilder {
	f.n.setChild(i, v)
	return f
}

// RepetitionBuilder is a builder-tree field repetition: a sparse map from
// 1-based component index to ComponentBuilder.
type RepetitionBuilder struct{ n *bnode }

func (r *RepetitionBuilder) Value() string { return r.n.value() }

func (r *RepetitionBuilder) SetValue(value string) error { return r.n.setValue(value) }

func (r *RepetitionBuilder) Values() []string { return r.n.values() }

func (r *RepetitionBuilder) SetValues(values []string) error { return r.n.setValues(values) }

func (r *RepetitionBuilder) SetValuesFrom(start int, values []string) error {
	return r.n.setValuesFrom(start, values)
}

func (r *RepetitionBuilder) Index() int { return r.n.index }

func (r *RepetitionBuilder) Delimiter() rune { return r.n.delim() }

func (r *RepetitionBuilder) Count() int { return r.n.count() }

func (r *RepetitionBuilder) At(i int) hl7tree.Element { return &ComponentBuilder{n: r.n.child(i)} }

func (r *RepetitionBuilder) Exists() bool { return r.n.exists() }

func (r *RepetitionBuilder) HasSignificantDescendants() bool { return r.n.hasSignificantDescendants() }

func (r *RepetitionBuilder) Clone() hl7tree.Element { return &RepetitionBuilder{n: r.n.clone()} }

func (r *RepetitionBuilder) Delete() error { return r.n.deleteSelf() }

func (r *RepetitionBuilder) Escape(v string) string { return hl7tree.Escape(v, r.n.root.delims) }

func (r *RepetitionBuilder) Unescape(v string) string { return hl7tree.Unescape(v, r.n.root.delims) }

func (r *RepetitionBuilder) As() hl7tree.Converter {
	return convert.New(convert.Accessor{Get: r.Value, Set: r.SetValue, Escape: r.Escape, Unescape: r.Unescape})
}

// Component sets component i and returns r for chaining.
func (r *RepetitionBuilder) Component(i int, v string) *RepetitionBuilder {
	r.n.setChild(i, v)
	return r
}

// ComponentBuilder is a builder-tree component: a sparse map from 1-based
// subcomponent index to SubcomponentBuilder.
type ComponentBuilder struct{ n *bnode }

func (c *ComponentBuilder) Value() string { return c.n.value() }

func (c *ComponentBuilder) SetValue(value string) error { return c.n.setValue(value) }

func (c *ComponentBuilder) Values() []string { return c.n.values() }

func (c *ComponentBuilder) SetValues(values []string) error { return c.n.setValues(values) }

func (c *ComponentBuilder) SetValuesFrom(start int, values []string) error {
	return c.n.setValuesFrom(start, values)
}

func (c *ComponentBuilder) Index() int { return c.n.index }

func (c *ComponentBuilder) Delimiter() rune { return c.n.delim() }

func (c *ComponentBuilder) Count() int { return c.n.count() }

func (c *ComponentBuilder) At(i int) hl7tree.Element { return &SubcomponentBuilder{n: c.n.child(i)} }

func (c *ComponentBuilder) Exists() bool { return c.n.exists() }

func (c *ComponentBuilder) HasSignificantDescendants() bool { return c.n.hasSignificantDescendants() }

func (c *ComponentBuilder) Clone() hl7tree.Element { return &ComponentBuilder{n: c.n.clone()} }

func (c *ComponentBuilder) Delete() error { return c.n.deleteSelf() }

func (c *ComponentBuilder) Escape(v string) string { return hl7tree.Escape(v, c.n.root.delims) }

func (c *ComponentBuilder) Unescape(v string) string { return hl7tree.Unescape(v, c.n.root.delims) }

func (c *ComponentBuilder) As() hl7tree.Converter {
	return convert.New(convert.Accessor{Get: c.Value, Set: c.SetValue, Escape: c.Escape, Unescape: c.Unescape})
}

// Subcomponent sets subcomponent i and returns c for chaining.
func (c *ComponentBuilder) Subcomponent(i int, v string) *ComponentBuilder {
	c.n.setChild(i, v)
	return c
}

// SubcomponentBuilder is a builder-tree leaf.
type SubcomponentBuilder struct{ n *bnode }

func (s *SubcomponentBuilder) Value() string { return s.n.value() }

func (s *SubcomponentBuilder) SetValue(value string) error { return s.n.setValue(value) }

func (s *SubcomponentBuilder) Values() []string { return []string{s.Value()} }

func (s *SubcomponentBuilder) SetValues(values []string) error {
	if len(values) == 0 {
		return s.SetValue("")
	}
	return s.SetValue(values[0])
}

func (s *SubcomponentBuilder) Index() int { return s.n.index }

func (s *SubcomponentBuilder) Delimiter() rune { return 0 }

func (s *SubcomponentBuilder) Count() int {
	if s.Value() == "" {
		return 0
	}
	return 1
}

func (s *SubcomponentBuilder) At(i int) hl7tree.Element { return s }

func (s *SubcomponentBuilder) Exists() bool { return s.n.exists() }

func (s *SubcomponentBuilder) HasSignificantDescendants() bool { return s.n.hasSignificantDescendants() }

func (s *SubcomponentBuilder) Clone() hl7tree.Element { return &SubcomponentBuilder{n: s.n.clone()} }

func (s *SubcomponentBuilder) Delete() error { return s.n.deleteSelf() }

func (s *SubcomponentBuilder) Escape(v string) string { return hl7tree.Escape(v, s.n.root.delims) }

func (s *SubcomponentBuilder) Unescape(v string) string { return hl7tree.Unescape(v, s.n.root.delims) }

func (s *SubcomponentBuilder) As() hl7tree.Converter {
	return convert.New(convert.Accessor{Get: s.Value, Set: s.SetValue, Escape: s.Escape, Unescape: s.Unescape})
}
