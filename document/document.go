package document

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNothingToUndo is returned by Undo and Redo when the stack is empty.
var ErrNothingToUndo = errors.New("document: nothing to undo")

// Document is an in-memory SVG document with selection and undo history.
// Its methods may be called from multiple goroutines; the commands it returns
// are not synchronized and belong to the caller.
type Document struct {
	mu        sync.Mutex
	root      *Element
	selection []*Element
	undo      []Command
	redo      []Command
	nextID    int
}

// New creates an empty document with an <svg> root.
func New() *Document {
	return &Document{root: NewElement("svg", map[string]string{"id": "svgroot"})}
}

// Root returns the root element.
func (d *Document) Root() *Element { return d.root }

// Append adds el to parent (the root when parent is nil) without recording
// history. Elements without an id receive one.
func (d *Document) Append(parent, el *Element) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	if parent == nil {
		parent = d.root
	}
	el.Walk(func(e *Element) bool {
		if e.ID == "" {
			e.SetAttr("id", d.nextIDLocked())
		}
		return true
	})
	parent.appendChild(el)
	return el
}

// Find returns the attached element with the given id, or nil.
func (d *Document) Find(id string) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	var found *Element
	d.root.Walk(func(e *Element) bool {
		if found != nil {
			return false
		}
		if e.ID == id {
			found = e
			return false
		}
		return true
	})
	return found
}

// Count returns the number of elements below the root.
func (d *Document) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := -1
	d.root.Walk(func(*Element) bool {
		n++
		return true
	})
	return n
}

// NextID returns a fresh element id.
func (d *Document) NextID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.nextIDLocked()
}

func (d *Document) nextIDLocked() string {
	d.nextID++
	return fmt.Sprintf("svg_%d", d.nextID)
}

// SelectedElements returns the current selection.
func (d *Document) SelectedElements() []*Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*Element, len(d.selection))
	copy(out, d.selection)
	return out
}

// SelectOnly replaces the selection with els.
func (d *Document) SelectOnly(els []*Element) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selection = append(d.selection[:0], els...)
}

// CreateElement appends a new element to the root and returns it with the
// command that inserted it.
func (d *Document) CreateElement(tag string, attrs map[string]string) (*Element, Command) {
	d.mu.Lock()
	defer d.mu.Unlock()
	el := NewElement(tag, attrs)
	if el.ID == "" {
		el.SetAttr("id", d.nextIDLocked())
	}
	cmd := &insertCommand{parent: d.root, el: el, index: len(d.root.Children)}
	_ = cmd.Apply()
	return el, cmd
}

// Replace swaps old for repl in old's parent and returns the applied command.
func (d *Document) Replace(old, repl *Element) (Command, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	parent := old.parent
	if parent == nil {
		return nil, ErrDetached
	}
	cmd := &replaceCommand{parent: parent, old: old, repl: repl}
	if err := cmd.Apply(); err != nil {
		return nil, err
	}
	return cmd, nil
}

// Remove detaches el and returns the applied command.
func (d *Document) Remove(el *Element) (Command, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	parent := el.parent
	if parent == nil {
		return nil, ErrDetached
	}
	idx := parent.removeChild(el)
	return &removeCommand{parent: parent, el: el, index: idx}, nil
}

// AddToHistory records an applied command on the undo stack and clears redo.
func (d *Document) AddToHistory(cmd Command) {
	if cmd == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.undo = append(d.undo, cmd)
	d.redo = d.redo[:0]
}

// UndoLen returns the number of undoable steps.
func (d *Document) UndoLen() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.undo)
}

// Undo reverts the most recent history step.
func (d *Document) Undo() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.undo) == 0 {
		return ErrNothingToUndo
	}
	cmd := d.undo[len(d.undo)-1]
	if err := cmd.Unapply(); err != nil {
		return err
	}
	d.undo = d.undo[:len(d.undo)-1]
	d.redo = append(d.redo, cmd)
	return nil
}

// Redo re-applies the most recently undone step.
func (d *Document) Redo() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.redo) == 0 {
		return ErrNothingToUndo
	}
	cmd := d.redo[len(d.redo)-1]
	if err := cmd.Apply(); err != nil {
		return err
	}
	d.redo = d.redo[:len(d.redo)-1]
	d.undo = append(d.undo, cmd)
	return nil
}
