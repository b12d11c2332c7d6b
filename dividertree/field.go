package dividertree

import (
	"strings"

	"github.com/elanza-health/hl7tree"
	"github.com/elanza-health/hl7tree/internal/convert"
)

// Field is a segment's field: a sequence of repetitions separated by the
// header's repetition delimiter. MSH field 2 is the exception — it is kept
// atomic, carrying the encoding characters verbatim as a single repetition.
type Field struct {
	c      *cursor
	msg    *Message
	isMSH2 bool
}

func newField(msg *Message, c *cursor, isMSH2 bool) *Field {
	f := &Field{c: c, msg: msg, isMSH2: isMSH2}
	if isMSH2 {
		c.custom = func() []span { return []span{c.ownSpan()} }
	}
	return f
}

func (f *Field) Value() string { return f.c.value() }

func (f *Field) SetValue(value string) error { return f.c.setValue(value) }

func (f *Field) Values() []string {
	n := f.c.count()
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, f.At(i).Value())
	}
	return out
}

func (f *Field) SetValues(values []string) error {
	if f.isMSH2 {
		return f.SetValue(strings.Join(values, ""))
	}
	return f.SetValue(strings.Join(values, string(f.msg.delimiters().Repetition)))
}

func (f *Field) Index() int { return f.c.pIdx + 1 }

func (f *Field) Delimiter() rune {
	if f.isMSH2 {
		return 0
	}
	return f.msg.delimiters().Repetition
}

func (f *Field) Count() int { return f.c.count() }

func (f *Field) At(i int) hl7tree.Element {
	if i < 1 {
		return &FieldRepetition{c: f.c.childCursor(-1, 0), msg: f.msg}
	}
	if existing, ok := f.c.children[i-1]; ok {
		return existing.(*FieldRepetition)
	}
	delim := rune(0)
	if !f.isMSH2 {
		delim = f.msg.delimiters().Component
	}
	rc := f.c.childCursor(i-1, delim)
	if !f.isMSH2 {
		rc.delimFn = func() rune { return f.msg.delimiters().Component }
	}
	rep := newFieldRepetition(f.msg, rc, f.isMSH2)
	f.c.children[i-1] = rep
	return rep
}

func (f *Field) Exists() bool { return f.c.exists() }

func (f *Field) HasSignificantDescendants() bool { return f.c.hasSignificantDescendants() }

func (f *Field) Clone() hl7tree.Element {
	root := newDetachedRoot(newBuffer(f.Value()), f.msg.delimiters())
	c := &cursor{buf: root.c.buf, children: map[int]any{}}
	return newField(root, c, f.isMSH2)
}

func (f *Field) Delete() error { return f.c.deleteSelf() }

func (f *Field) Escape(v string) string { return hl7tree.Escape(v, f.msg.delimiters()) }

func (f *Field) Unescape(v string) string { return hl7tree.Unescape(v, f.msg.delimiters()) }

func (f *Field) As() hl7tree.Converter {
	return convert.New(convert.Accessor{Get: f.Value, Set: f.SetValue, Escape: f.Escape, Unescape: f.Unescape})
}
