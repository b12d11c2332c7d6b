package dividertree

import (
	"strings"

	"github.com/elanza-health/hl7tree"
	"github.com/elanza-health/hl7tree/internal/convert"
)

// Component is one component of a repetition: a sequence of subcomponents
// separated by the header's subcomponent delimiter.
type Component struct {
	c      *cursor
	msg    *Message
	atomic bool
}

func newComponent(msg *Message, c *cursor, atomic bool) *Component {
	comp := &Component{c: c, msg: msg, atomic: atomic}
	if atomic {
		c.custom = func() []span { return []span{c.ownSpan()} }
	}
	return comp
}

func (c *Component) Value() string { return c.c.value() }

func (c *Component) SetValue(value string) error { return c.c.setValue(value) }

func (c *Component) Values() []string {
	n := c.c.count()
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, c.At(i).Value())
	}
	return out
}

func (c *Component) SetValues(values []string) error {
	if c.atomic {
		return c.SetValue(strings.Join(values, ""))
	}
	return c.SetValue(strings.Join(values, string(c.msg.delimiters().SubComponent)))
}

func (c *Component) Index() int { return c.c.pIdx + 1 }

func (c *Component) Delimiter() rune {
	if c.atomic {
		return 0
	}
	return c.msg.delimiters().SubComponent
}

func (c *Component) Count() int { return c.c.count() }

func (c *Component) At(i int) hl7tree.Element {
	if i < 1 {
		return &Subcomponent{c: c.c.childCursor(-1, 0), msg: c.msg}
	}
	if existing, ok := c.c.children[i-1]; ok {
		return existing.(*Subcomponent)
	}
	sc := newSubcomponent(c.msg, c.c.childCursor(i-1, 0))
	c.c.children[i-1] = sc
	return sc
}

func (c *Component) Exists() bool { return c.c.exists() }

func (c *Component) HasSignificantDescendants() bool { return c.c.hasSignificantDescendants() }

func (c *Component) Clone() hl7tree.Element {
	root := newDetachedRoot(newBuffer(c.Value()), c.msg.delimiters())
	cur := &cursor{buf: root.c.buf, children: map[int]any{}}
	return newComponent(root, cur, c.atomic)
}

func (c *Component) Delete() error { return c.c.deleteSelf() }

func (c *Component) Escape(v string) string { return hl7tree.Escape(v, c.msg.delimiters()) }

func (c *Component) Unescape(v string) string { return hl7tree.Unescape(v, c.msg.delimiters()) }

func (c *Component) As() hl7tree.Converter {
	return convert.New(convert.Accessor{Get: c.Value, Set: c.SetValue, Escape: c.Escape, Unescape: c.Unescape})
}
