// Package document provides an in-memory SVG element tree with reversible
// commands, undo history, selection and geometry extraction.
//
// It is the concrete collaborator the offset pipeline is exercised against.
// An editor embedding the pipeline can supply its own implementations of the
// same interfaces instead.
package document

import (
	"strconv"
	"strings"
)

// Element tags with special meaning to the offset pipeline.
const (
	TagGroup = "g"
	TagText  = "text"
	TagPath  = "path"
)

// Element is a node in the document tree.
type Element struct {
	ID       string
	Tag      string
	Attrs    map[string]string
	Text     string // character data of text elements
	Children []*Element

	parent *Element
}

// NewElement creates an element with the given tag, attributes and children.
// The id attribute, when present, also sets ID.
func NewElement(tag string, attrs map[string]string, children ...*Element) *Element {
	el := &Element{Tag: tag, Attrs: make(map[string]string, len(attrs))}
	for k, v := range attrs {
		el.Attrs[k] = v
	}
	el.ID = el.Attrs["id"]
	for _, c := range children {
		el.appendChild(c)
	}
	return el
}

// NewText creates a text element.
func NewText(content string, attrs map[string]string) *Element {
	el := NewElement(TagText, attrs)
	el.Text = content
	return el
}

// Attr returns the attribute value, or "" when unset.
func (e *Element) Attr(name string) string {
	if e == nil || e.Attrs == nil {
		return ""
	}
	return e.Attrs[name]
}

// SetAttr sets an attribute. Setting "id" also updates ID.
func (e *Element) SetAttr(name, value string) {
	if e.Attrs == nil {
		e.Attrs = make(map[string]string)
	}
	e.Attrs[name] = value
	if name == "id" {
		e.ID = value
	}
}

// Float returns the attribute parsed as a number, or def when unset or
// malformed. Unit suffixes such as "px" are ignored.
func (e *Element) Float(name string, def float64) float64 {
	s := strings.TrimSpace(e.Attr(name))
	s = strings.TrimSuffix(s, "px")
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

// Parent returns the parent element, or nil for detached or root elements.
func (e *Element) Parent() *Element { return e.parent }

// IsGroup reports whether e is a group.
func (e *Element) IsGroup() bool { return e.Tag == TagGroup }

// IsText reports whether e is a text element.
func (e *Element) IsText() bool { return e.Tag == TagText }

func (e *Element) appendChild(c *Element) {
	e.insertChild(len(e.Children), c)
}

func (e *Element) insertChild(idx int, c *Element) {
	if idx < 0 || idx > len(e.Children) {
		idx = len(e.Children)
	}
	e.Children = append(e.Children, nil)
	copy(e.Children[idx+1:], e.Children[idx:])
	e.Children[idx] = c
	c.parent = e
}

// removeChild detaches c and returns its former index, or -1.
func (e *Element) removeChild(c *Element) int {
	for i, ch := range e.Children {
		if ch == c {
			e.Children = append(e.Children[:i], e.Children[i+1:]...)
			c.parent = nil
			return i
		}
	}
	return -1
}

// Walk calls fn for e and every descendant in document order.
// Returning false from fn skips the element's children.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the height of the rectangle.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Center returns the centre point of the rectangle.
func (r Rect) Center() (x, y float64) {
	return (r.MinX + r.MaxX) / 2, (r.MinY + r.MaxY) / 2
}
