// Package buildertree implements the builder backend (C5): an independent
// mutable element tree, addressed by sparse per-node index maps, that
// serializes to text on demand instead of parsing a live buffer.
package buildertree

import (
	"strings"

	"github.com/elanza-health/hl7tree"
)

type level int

const (
	levelMessage level = iota
	levelSegment
	levelField
	levelRepetition
	levelComponent
	levelSubcomponent
)

func (lv level) child() level {
	switch lv {
	case levelMessage:
		return levelSegment
	case levelSegment:
		return levelField
	case levelField:
		return levelRepetition
	case levelRepetition:
		return levelComponent
	case levelComponent:
		return levelSubcomponent
	default:
		return levelSubcomponent
	}
}

// bnode is the generic sparse-map builder node shared by every level-
// specific wrapper type in this package.
type bnode struct {
	root   *MessageBuilder
	parent *bnode // nil for the message root
	kind   level
	index  int // 1-based; 0 only for a segment's type-code pseudo-child
	atomic bool

	raw           string
	children      map[int]*bnode
	childrenSplit bool
}

func newLeafNode(root *MessageBuilder, kind level, index int, raw string, atomic bool) *bnode {
	return &bnode{root: root, kind: kind, index: index, raw: raw, atomic: atomic}
}

func newChildNode(parent *bnode, index int, raw string, atomic bool) *bnode {
	return &bnode{root: parent.root, parent: parent, kind: parent.kind.child(), index: index, raw: raw, atomic: atomic}
}

// attach links this node and any detached ancestors into their parent's
// sparse children map. A node returned by the read-only child() accessor
// is not wired into its parent until a mutation needs it to stick; attach
// is that materialization step, climbing as far up the chain as needed
// without touching sibling indices.
func (n *bnode) attach() {
	if n.parent == nil {
		return
	}
	n.parent.attach()
	n.parent.ensureChildren()
	n.parent.children[n.index] = n
}

// deleteSelf removes this node from its parent's sparse children map.
func (n *bnode) deleteSelf() error {
	if n.parent == nil {
		return &hl7tree.Error{Kind: hl7tree.KindInvalidIndex, Message: "cannot delete the message root"}
	}
	n.parent.deleteChild(n.index)
	return nil
}

// delim returns the separator between this node's own children.
func (n *bnode) delim() rune {
	if n.atomic {
		return 0
	}
	switch n.kind {
	case levelMessage:
		return hl7tree.SegmentTerminator
	case levelSegment:
		return n.root.delims.Field
	case levelField:
		return n.root.delims.Repetition
	case levelRepetition:
		return n.root.delims.Component
	case levelComponent:
		return n.root.delims.SubComponent
	default:
		return 0
	}
}

// typeCode returns a segment node's three-letter type code.
func (n *bnode) typeCode() string {
	if n.kind != levelSegment {
		return ""
	}
	if len(n.raw) < 3 {
		return n.raw
	}
	return n.raw[:3]
}

// ensureChildren lazily splits raw into the sparse children map the first
// time structural access (At/Count/Values/Delete) is needed. Empty pieces
// are never materialized, matching the sparse-gap invariant: reading an
// unpopulated index returns the empty state without allocating storage.
func (n *bnode) ensureChildren() {
	if n.childrenSplit {
		return
	}
	n.children = map[int]*bnode{}
	n.childrenSplit = true
	if n.kind == levelSubcomponent {
		return
	}
	for idx, piece := range n.splitRaw() {
		if piece == "" {
			continue
		}
		n.children[idx] = newChildNode(n, idx, piece, n.childAtomic(idx))
	}
}

// childAtomic reports whether child i should be kept atomic (never split
// further): true for any child of an already-atomic node, and for MSH
// field 2 specifically (the encoding characters, carried verbatim).
func (n *bnode) childAtomic(i int) bool {
	return n.atomic || (n.kind == levelSegment && n.typeCode() == "MSH" && i == 2)
}

// splitRaw divides this node's raw text into 1-based indexed pieces,
// honoring the MSH header asymmetry on a segment node and the atomic
// (never-split-further) flag on MSH field 2 and its descendants.
func (n *bnode) splitRaw() map[int]string {
	out := map[int]string{}
	if n.atomic {
		out[1] = n.raw
		return out
	}
	if n.kind == levelSegment {
		return n.splitSegmentFields()
	}
	d := n.delim()
	if d == 0 {
		out[1] = n.raw
		return out
	}
	for i, piece := range strings.Split(n.raw, string(d)) {
		out[i+1] = piece
	}
	return out
}

func (n *bnode) splitSegmentFields() map[int]string {
	out := map[int]string{}
	if len(n.raw) < 3 {
		return out
	}
	rest := n.raw[3:]
	fieldDelim := n.root.delims.Field
	if n.typeCode() != "MSH" {
		if rest == "" {
			return out
		}
		rest = strings.TrimPrefix(rest, string(fieldDelim))
		for i, piece := range strings.Split(rest, string(fieldDelim)) {
			out[i+1] = piece
		}
		return out
	}

	// MSH: field 1 is the field delimiter itself; field 2 is the encoding
	// characters verbatim; fields 3+ split the remainder normally.
	if rest == "" {
		return out
	}
	out[1] = string(fieldDelim)
	remainder := strings.TrimPrefix(rest, string(fieldDelim))
	pieces := strings.SplitN(remainder, string(fieldDelim), 2)
	out[2] = pieces[0]
	if len(pieces) == 2 && pieces[1] != "" {
		for i, piece := range strings.Split(pieces[1], string(fieldDelim)) {
			out[i+3] = piece
		}
	}
	return out
}

// maxKey returns the highest populated child index, 0 if none.
func (n *bnode) maxKey() int {
	n.ensureChildren()
	max := 0
	for k := range n.children {
		if k > max {
			max = k
		}
	}
	return max
}

// value reconstructs this node's text from its children (ascending keys,
// joined by delim, gaps rendered as empty), or returns raw for a leaf that
// was never split.
func (n *bnode) value() string {
	if n.kind == levelSubcomponent {
		return n.raw
	}
	if n.kind == levelSegment {
		return n.typeCode() + n.reconstructFields()
	}
	max := n.maxKey()
	if max == 0 {
		return ""
	}
	d := ""
	if rd := n.delim(); rd != 0 {
		d = string(rd)
	}
	parts := make([]string, max)
	for i := 1; i <= max; i++ {
		if c, ok := n.children[i]; ok {
			parts[i-1] = c.value()
		}
	}
	return strings.Join(parts, d)
}

// reconstructFields renders a segment's fields honoring the MSH asymmetry.
func (n *bnode) reconstructFields() string {
	max := n.maxKey()
	if max == 0 {
		return ""
	}
	fieldDelim := string(n.root.delims.Field)
	if n.typeCode() != "MSH" {
		parts := make([]string, max)
		for i := 1; i <= max; i++ {
			if c, ok := n.children[i]; ok {
				parts[i-1] = c.value()
			}
		}
		return fieldDelim + strings.Join(parts, fieldDelim)
	}

	// field 1 is always the field delimiter literal, field 2 the encoding
	// characters; reconstruct fields 3..max normally and join.
	if max < 2 {
		if max == 1 {
			return fieldDelim
		}
		return ""
	}
	enc := ""
	if c, ok := n.children[2]; ok {
		enc = c.value()
	}
	var tail strings.Builder
	for i := 3; i <= max; i++ {
		tail.WriteString(fieldDelim)
		if c, ok := n.children[i]; ok {
			tail.WriteString(c.value())
		}
	}
	return fieldDelim + enc + tail.String()
}

// setValue re-splits v into this node's children, numbered from 1.
func (n *bnode) setValue(v string) error {
	n.attach()
	n.raw = v
	n.children = nil
	n.childrenSplit = false
	return nil
}

// child returns (creating if needed) the child at 1-based index i.
func (n *bnode) child(i int) *bnode {
	n.ensureChildren()
	if c, ok := n.children[i]; ok {
		return c
	}
	return newChildNode(n, i, "", n.childAtomic(i))
}

// ensureChild returns (creating and attaching if needed) the child at
// 1-based index i, for use when a write needs to traverse through it.
func (n *bnode) ensureChild(i int) *bnode {
	n.ensureChildren()
	if c, ok := n.children[i]; ok {
		return c
	}
	c := newChildNode(n, i, "", n.childAtomic(i))
	n.children[i] = c
	return c
}

// setChild assigns v as the value of child i, creating the sparse entry
// without materializing any intermediate gaps.
func (n *bnode) setChild(i int, v string) {
	n.attach()
	n.ensureChildren()
	if v == "" {
		delete(n.children, i)
		return
	}
	n.children[i] = newChildNode(n, i, v, n.childAtomic(i))
}

// deleteChild removes child i and shifts every later sibling down by one
// index, closing the gap left behind instead of leaving it sparse. This
// keeps Delete's observable effect consistent with the divider backend:
// everything after the deleted element moves up to take its place.
func (n *bnode) deleteChild(i int) {
	n.ensureChildren()
	max := n.maxKey()
	delete(n.children, i)
	for k := i + 1; k <= max; k++ {
		c, ok := n.children[k]
		delete(n.children, k)
		if ok {
			c.index = k - 1
			n.children[k-1] = c
		}
	}
}

func (n *bnode) exists() bool { return n.value() != "" }

func (n *bnode) hasSignificantDescendants() bool {
	return strings.TrimFunc(n.value(), func(r rune) bool { return r == hl7tree.SegmentTerminator }) != ""
}

func (n *bnode) count() int { return n.maxKey() }

func (n *bnode) values() []string {
	max := n.maxKey()
	out := make([]string, 0, max)
	for i := 1; i <= max; i++ {
		out = append(out, n.child(i).value())
	}
	return out
}

// setValues clears this node and repopulates from 1 with values.
func (n *bnode) setValues(values []string) error {
	n.attach()
	n.children = map[int]*bnode{}
	n.childrenSplit = true
	for i, v := range values {
		n.setChild(i+1, v)
	}
	return nil
}

// setValuesFrom overwrites from start onward, preserving earlier siblings.
func (n *bnode) setValuesFrom(start int, values []string) error {
	n.attach()
	n.ensureChildren()
	for i, v := range values {
		n.setChild(start+i, v)
	}
	return nil
}

func (n *bnode) clone() *bnode {
	root := &MessageBuilder{delims: n.root.delims}
	c := cloneInto(root, n)
	root.n = c
	return c
}

func cloneInto(root *MessageBuilder, n *bnode) *bnode {
	clone := &bnode{root: root, kind: n.kind, index: n.index, atomic: n.atomic, raw: n.value()}
	return clone
}
