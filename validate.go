package offset

import (
	"github.com/gogpu/offset/document"
)

// validate flattens the requested elements into offsettable leaves.
//
// Groups are expanded on an explicit stack so deep nesting costs no call
// depth. Text is converted to paths; the conversions are collected in a
// scratch batch that is reverted before returning, so the document is left
// as it was while the converted elements stay usable.
func (o *Offsetter) validate(req Request) ([]*document.Element, error) {
	roots := req.Elements
	if len(roots) == 0 {
		roots = o.deps.Canvas.SelectedElements()
	}
	if len(roots) == 0 {
		return nil, opError(ErrNoElements, "", nil)
	}

	scratch := document.NewBatchCommand("Convert Text")
	defer func() {
		if scratch.IsEmpty() {
			return
		}
		if err := scratch.Unapply(); err != nil {
			Logger().Warn("offset: reverting text conversion", "err", err)
		}
	}()

	stack := make([]*document.Element, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}

	var out []*document.Element
	for len(stack) > 0 {
		el := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if el == nil {
			continue
		}

		switch {
		case el.IsGroup() && len(el.Children) > 0:
			for i := len(el.Children) - 1; i >= 0; i-- {
				stack = append(stack, el.Children[i])
			}
		case el.IsText():
			path, cmd, err := o.deps.Text.Convert(el)
			if err != nil {
				return nil, opError(ErrProcessingFailed, el.ID, err)
			}
			scratch.AddSubCommand(cmd)
			out = append(out, path)
		default:
			out = append(out, el)
		}
	}

	if len(out) == 0 {
		return nil, opError(ErrNoElements, "", nil)
	}
	return out, nil
}
