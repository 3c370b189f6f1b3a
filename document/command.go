package document

import (
	"errors"
	"fmt"
)

// Command is a reversible document mutation. Commands are created already
// applied; Unapply reverts them and Apply re-applies them.
type Command interface {
	Apply() error
	Unapply() error
}

// ErrDetached is returned when a command targets an element without parent.
var ErrDetached = errors.New("document: element is not attached")

// BatchCommand groups sub-commands into one undoable step.
type BatchCommand struct {
	text string
	cmds []Command
}

// NewBatchCommand creates an empty batch labelled text.
func NewBatchCommand(text string) *BatchCommand {
	return &BatchCommand{text: text}
}

// Text returns the batch label.
func (b *BatchCommand) Text() string { return b.text }

// AddSubCommand appends c to the batch. Nil commands are ignored.
func (b *BatchCommand) AddSubCommand(c Command) {
	if c != nil {
		b.cmds = append(b.cmds, c)
	}
}

// IsEmpty reports whether the batch has no sub-commands.
func (b *BatchCommand) IsEmpty() bool { return len(b.cmds) == 0 }

// Len returns the number of sub-commands.
func (b *BatchCommand) Len() int { return len(b.cmds) }

// Apply re-applies all sub-commands in order.
func (b *BatchCommand) Apply() error {
	for i, c := range b.cmds {
		if err := c.Apply(); err != nil {
			return fmt.Errorf("document: apply %q step %d: %w", b.text, i, err)
		}
	}
	return nil
}

// Unapply reverts all sub-commands in reverse order.
func (b *BatchCommand) Unapply() error {
	for i := len(b.cmds) - 1; i >= 0; i-- {
		if err := b.cmds[i].Unapply(); err != nil {
			return fmt.Errorf("document: unapply %q step %d: %w", b.text, i, err)
		}
	}
	return nil
}

// insertCommand records an element inserted into parent at index.
type insertCommand struct {
	parent *Element
	el     *Element
	index  int
}

func (c *insertCommand) Apply() error {
	c.parent.insertChild(c.index, c.el)
	return nil
}

func (c *insertCommand) Unapply() error {
	if c.parent.removeChild(c.el) < 0 {
		return ErrDetached
	}
	return nil
}

// replaceCommand records old swapped for repl at the same position.
type replaceCommand struct {
	parent    *Element
	old, repl *Element
}

func (c *replaceCommand) Apply() error {
	idx := c.parent.removeChild(c.old)
	if idx < 0 {
		return ErrDetached
	}
	c.parent.insertChild(idx, c.repl)
	return nil
}

func (c *replaceCommand) Unapply() error {
	idx := c.parent.removeChild(c.repl)
	if idx < 0 {
		return ErrDetached
	}
	c.parent.insertChild(idx, c.old)
	return nil
}

// removeCommand records an element removed from parent.
type removeCommand struct {
	parent *Element
	el     *Element
	index  int
}

func (c *removeCommand) Apply() error {
	if c.parent.removeChild(c.el) < 0 {
		return ErrDetached
	}
	return nil
}

func (c *removeCommand) Unapply() error {
	c.parent.insertChild(c.index, c.el)
	return nil
}
