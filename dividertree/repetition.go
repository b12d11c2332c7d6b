package dividertree

import (
	"strings"

	"github.com/elanza-health/hl7tree"
	"github.com/elanza-health/hl7tree/internal/convert"
)

// FieldRepetition is one repetition of a field: a sequence of components
// separated by the header's component delimiter.
type FieldRepetition struct {
	c      *cursor
	msg    *Message
	atomic bool // true under MSH field 2: never split further
}

func newFieldRepetition(msg *Message, c *cursor, atomic bool) *FieldRepetition {
	r := &FieldRepetition{c: c, msg: msg, atomic: atomic}
	if atomic {
		c.custom = func() []span { return []span{c.ownSpan()} }
	}
	return r
}

func (r *FieldRepetition) Value() string { return r.c.value() }

func (r *FieldRepetition) SetValue(value string) error { return r.c.setValue(value) }

func (r *FieldRepetition) Values() []string {
	n := r.c.count()
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, r.At(i).Value())
	}
	return out
}

func (r *FieldRepetition) SetValues(values []string) error {
	if r.atomic {
		return r.SetValue(strings.Join(values, ""))
	}
	return r.SetValue(strings.Join(values, string(r.msg.delimiters().Component)))
}

func (r *FieldRepetition) Index() int { return r.c.pIdx + 1 }

func (r *FieldRepetition) Delimiter() rune {
	if r.atomic {
		return 0
	}
	return r.msg.delimiters().Component
}

func (r *FieldRepetition) Count() int { return r.c.count() }

func (r *FieldRepetition) At(i int) hl7tree.Element {
	if i < 1 {
		return &Component{c: r.c.childCursor(-1, 0), msg: r.msg}
	}
	if existing, ok := r.c.children[i-1]; ok {
		return existing.(*Component)
	}
	delim := rune(0)
	if !r.atomic {
		delim = r.msg.delimiters().SubComponent
	}
	cc := r.c.childCursor(i-1, delim)
	if !r.atomic {
		cc.delimFn = func() rune { return r.msg.delimiters().SubComponent }
	}
	comp := newComponent(r.msg, cc, r.atomic)
	r.c.children[i-1] = comp
	return comp
}

func (r *FieldRepetition) Exists() bool { return r.c.exists() }

func (r *FieldRepetition) HasSignificantDescendants() bool { return r.c.hasSignificantDescendants() }

func (r *FieldRepetition) Clone() hl7tree.Element {
	root := newDetachedRoot(newBuffer(r.Value()), r.msg.delimiters())
	c := &cursor{buf: root.c.buf, children: map[int]any{}}
	return newFieldRepetition(root, c, r.atomic)
}

func (r *FieldRepetition) Delete() error { return r.c.deleteSelf() }

func (r *FieldRepetition) Escape(v string) string { return hl7tree.Escape(v, r.msg.delimiters()) }

func (r *FieldRepetition) Unescape(v string) string { return hl7tree.Unescape(v, r.msg.delimiters()) }

func (r *FieldRepetition) As() hl7tree.Converter {
	return convert.New(convert.Accessor{Get: r.Value, Set: r.SetValue, Escape: r.Escape, Unescape: r.Unescape})
}
