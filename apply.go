package offset

import (
	"github.com/gogpu/offset/document"
)

// resultStyle holds the presentation attributes of the created outline.
var resultStyle = map[string]string{
	"fill":         "none",
	"fill-opacity": "0",
	"stroke":       "#000",
}

// apply creates the result path from d and selects it. Outside preview mode
// the batch is committed to history.
func (o *Offsetter) apply(d string) *Result {
	attrs := make(map[string]string, len(resultStyle)+2)
	for k, v := range resultStyle {
		attrs[k] = v
	}
	attrs["id"] = o.deps.Canvas.NextID()
	attrs["d"] = d

	el, cmd := o.deps.Canvas.CreateElement(document.TagPath, attrs)
	batch := document.NewBatchCommand("Offset Elements")
	batch.AddSubCommand(cmd)

	o.deps.Canvas.SelectOnly([]*document.Element{el})
	if !o.opts.preview {
		o.deps.History.AddToHistory(batch)
	}
	return &Result{Element: el, Command: batch, Committed: !o.opts.preview}
}
