package dividertree

import (
	"github.com/elanza-health/hl7tree"
	"github.com/elanza-health/hl7tree/internal/convert"
)

// Subcomponent is a leaf: the finest subdivision of a component. It has no
// children of its own.
type Subcomponent struct {
	c   *cursor
	msg *Message
}

func newSubcomponent(msg *Message, c *cursor) *Subcomponent {
	return &Subcomponent{c: c, msg: msg}
}

func (s *Subcomponent) Value() string { return s.c.value() }

func (s *Subcomponent) SetValue(value string) error { return s.c.setValue(value) }

func (s *Subcomponent) Values() []string { return []string{s.Value()} }

func (s *Subcomponent) SetValues(values []string) error {
	if len(values) == 0 {
		return s.SetValue("")
	}
	return s.SetValue(values[0])
}

func (s *Subcomponent) Index() int { return s.c.pIdx + 1 }

func (s *Subcomponent) Delimiter() rune { return 0 }

func (s *Subcomponent) Count() int {
	if s.Value() == "" {
		return 0
	}
	return 1
}

// At is a no-op on a leaf: it always returns this same Subcomponent,
// since there is no finer subdivision to descend into.
func (s *Subcomponent) At(i int) hl7tree.Element { return s }

func (s *Subcomponent) Exists() bool { return s.c.exists() }

func (s *Subcomponent) HasSignificantDescendants() bool { return s.c.hasSignificantDescendants() }

func (s *Subcomponent) Clone() hl7tree.Element {
	root := newDetachedRoot(newBuffer(s.Value()), s.msg.delimiters())
	c := &cursor{buf: root.c.buf, children: map[int]any{}}
	return newSubcomponent(root, c)
}

func (s *Subcomponent) Delete() error { return s.c.deleteSelf() }

func (s *Subcomponent) Escape(v string) string { return hl7tree.Escape(v, s.msg.delimiters()) }

func (s *Subcomponent) Unescape(v string) string { return hl7tree.Unescape(v, s.msg.delimiters()) }

func (s *Subcomponent) As() hl7tree.Converter {
	return convert.New(convert.Accessor{Get: s.Value, Set: s.SetValue, Escape: s.Escape, Unescape: s.Unescape})
}
