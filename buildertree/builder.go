package buildertree

import (
	"strings"

	"github.com/elanza-health/hl7tree"
	"github.com/elanza-health/hl7tree/internal/convert"
)

// MessageBuilder is the root of a builder-backed element tree (C5): the
// writable counterpart to dividertree.Message. It owns the delimiter
// configuration and the top-level sparse segment map.
type MessageBuilder struct {
	delims hl7tree.Delimiters
	n      *bnode
}

// BuilderOption configures a new MessageBuilder.
type BuilderOption func(*hl7tree.Delimiters)

// WithDelimiters overrides one or more delimiter characters; zero-value
// fields in d are ignored.
func WithDelimiters(d hl7tree.Delimiters) BuilderOption {
	return func(cur *hl7tree.Delimiters) {
		if d.Field != 0 {
			cur.Field = d.Field
		}
		if d.Component != 0 {
			cur.Component = d.Component
		}
		if d.Repetition != 0 {
			cur.Repetition = d.Repetition
		}
		if d.Escape != 0 {
			cur.Escape = d.Escape
		}
		if d.SubComponent != 0 {
			cur.SubComponent = d.SubComponent
		}
	}
}

// NewMessageBuilder returns a builder seeded with a minimal default header
// (MSH with the configured delimiters and no further fields).
func NewMessageBuilder(opts ...BuilderOption) *MessageBuilder {
	d := *hl7tree.DefaultDelimiters()
	for _, opt := range opts {
		opt(&d)
	}
	b := &MessageBuilder{delims: d}
	b.n = &bnode{root: b, kind: levelMessage}
	header := "MSH" + string(d.Field) + d.EncodingCharacters()
	b.n.setChild(1, header)
	return b
}

// NewMessageBuilderFromText parses text (as dividertree.NewMessage would)
// into an independent builder tree: the same content, fully materialized
// as sparse builder nodes instead of a live buffer.
func NewMessageBuilderFromText(text string) (*MessageBuilder, error) {
	b := &MessageBuilder{delims: *hl7tree.DefaultDelimiters()}
	b.n = &bnode{root: b, kind: levelMessage}
	if err := b.n.setValue(normalizeLineEndings(text)); err != nil {
		return nil, err
	}
	if segs := strings.SplitN(text, string(hl7tree.SegmentTerminator), 2); len(segs) > 0 {
		if d, err := hl7tree.ParseDelimiters([]byte(segs[0])); err == nil {
			b.delims = *d
		}
	}
	return b, nil
}

// NewMessageBuilderFromElement copies e's serialized value into a fresh
// builder tree (the builder's configured delimiters default to the
// standard set; pass WithDelimiters to match a source with custom ones).
func NewMessageBuilderFromElement(e hl7tree.Element, opts ...BuilderOption) (*MessageBuilder, error) {
	b := NewMessageBuilder(opts...)
	if err := b.SetValue(e.Value()); err != nil {
		return nil, err
	}
	return b, nil
}

func normalizeLineEndings(s string) string {
	if !strings.Contains(s, "\r\n") {
		return s
	}
	return strings.ReplaceAll(s, "\r\n", "\r")
}

func (b *MessageBuilder) Value() string { return b.n.value() }

func (b *MessageBuilder) SetValue(value string) error { return b.n.setValue(value) }

func (b *MessageBuilder) Values() []string { return b.n.values() }

func (b *MessageBuilder) SetValues(values []string) error { return b.n.setValues(values) }

func (b *MessageBuilder) Index() int { return 0 }

func (b *MessageBuilder) Delimiter() rune { return hl7tree.SegmentTerminator }

func (b *MessageBuilder) Count() int { return b.n.count() }

func (b *MessageBuilder) At(i int) hl7tree.Element {
	if i < 1 {
		return &SegmentBuilder{n: newLeafNode(b, levelSegment, 0, "", false)}
	}
	return &SegmentBuilder{n: b.n.child(i)}
}

func (b *MessageBuilder) Exists() bool { return b.n.exists() }

func (b *MessageBuilder) HasSignificantDescendants() bool { return b.n.hasSignificantDescendants() }

func (b *MessageBuilder) Clone() hl7tree.Element {
	clone, _ := NewMessageBuilderFromText(b.Value())
	clone.delims = b.delims
	return clone
}

func (b *MessageBuilder) Delete() error {
	return &hl7tree.Error{Kind: hl7tree.KindInvalidIndex, Message: "cannot delete the message root"}
}

func (b *MessageBuilder) Escape(s string) string { return hl7tree.Escape(s, b.delims) }

func (b *MessageBuilder) Unescape(s string) string { return hl7tree.Unescape(s, b.delims) }

func (b *MessageBuilder) As() hl7tree.Converter {
	return convert.New(convert.Accessor{Get: b.Value, Set: b.SetValue, Escape: b.Escape, Unescape: b.Unescape})
}

// Segment sets segment i's raw text and returns b for chaining.
func (b *MessageBuilder) Segment(i int, v string) *MessageBuilder {
	b.n.setChild(i, v)
	return b
}

// Field sets segment i, field j and returns b for chaining.
func (b *MessageBuilder) Field(i, j int, v string) *MessageBuilder {
	b.n.ensureChild(i).setChild(j, v)
	return b
}

// FieldRepetition sets segment i, field j, repetition k and returns b.
func (b *MessageBuilder) FieldRepetition(i, j, k int, v string) *MessageBuilder {
	b.n.ensureChild(i).ensureChild(j).setChild(k, v)
	return b
}

// Component sets segment i, field j, repetition k, component l and
// returns b for chaining.
func (b *MessageBuilder) Component(i, j, k, l int, v string) *MessageBuilder {
	b.n.ensureChild(i).ensureChild(j).ensureChild(k).setChild(l, v)
	return b
}

// Subcomponent sets segment i, field j, repetition k, component l,
// subcomponent m and returns b for chaining.
func (b *MessageBuilder) Subcomponent(i, j, k, l, m int, v string) *MessageBuilder {
	b.n.ensureChild(i).ensureChild(j).ensureChild(k).ensureChild(l).setChild(m, v)
	return b
}

// Fields replaces segment i's fields wholesale, clearing any existing ones
// and populating from field 1.
func (b *MessageBuilder) Fields(i int, values []string) *MessageBuilder {
	b.n.ensureChild(i).setValues(values)
	return b
}

// FieldsFrom overwrites segment i's fields from start onward, preserving
// earlier siblings.
func (b *MessageBuilder) FieldsFrom(i, start int, values []string) *MessageBuilder {
	b.n.ensureChild(i).setValuesFrom(start, values)
	return b
}

// FieldRepetitions replaces segment i, field j's repetitions wholesale.
func (b *MessageBuilder) FieldRepetitions(i, j int, values []string) *MessageBuilder {
	b.n.ensureChild(i).ensureChild(j).setValues(values)
	return b
}

// FieldRepetitionsFrom overwrites segment i, field j's repetitions from
// start onward, preserving earlier siblings.
func (b *MessageBuilder) FieldRepetitionsFrom(i, j, start int, values []string) *MessageBuilder {
	b.n.ensureChild(i).ensureChild(j).setValuesFrom(start, values)
	return b
}

// Components replaces segment i, field j, repetition k's components
// wholesale.
func (b *MessageBuilder) Components(i, j, k int, values []string) *MessageBuilder {
	b.n.ensureChild(i).ensureChild(j).ensureChild(k).setValues(values)
	return b
}

// ComponentsFrom overwrites segment i, field j, repetition k's components
// from start onward, preserving earlier siblings.
func (b *MessageBuilder) ComponentsFrom(i, j, k, start int, values []string) *MessageBuilder {
	b.n.ensureChild(i).ensureChild(j).ensureChild(k).setValuesFrom(start, values)
	return b
}

// Subcomponents replaces segment i, field j, repetition k, component l's
// subcomponents wholesale.
func (b *MessageBuilder) Subcomponents(i, j, k, l int, values []string) *MessageBuilder {
	b.n.ensureChild(i).ensureChild(j).ensureChild(k).ensureChild(l).setValues(values)
	return b
}

// SubcomponentsFrom overwrites segment i, field j, repetition k, component
// l's subcomponents from start onward, preserving earlier siblings.
func (b *MessageBuilder) SubcomponentsFrom(i, j, k, l, start int, values []string) *MessageBuilder {
	b.n.ensureChild(i).ensureChild(j).ensureChild(k).ensureChild(l).setValuesFrom(start, values)
	return b
}
