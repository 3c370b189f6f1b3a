package offset

import (
	"context"

	"github.com/gogpu/offset/engine"
	"github.com/gogpu/offset/geom"
	"github.com/gogpu/offset/internal/union"
)

// merge combines the per-element results according to mode.
func (r *run) merge(ctx context.Context, sets []geom.Paths) (geom.Paths, error) {
	switch r.req.Mode {
	case ModeInward:
		r.transition(stateHierarchyFiltering)
		for i, set := range sets {
			if len(set) > 1 {
				sets[i] = r.o.holes(set)
			}
		}
		return union.Concat(sets), nil

	case ModeOutward:
		r.transition(stateUnioning)
		e, err := r.o.newEngine(engine.KindBoolean)
		if err != nil {
			return nil, opError(ErrUnionFailed, "", err)
		}
		defer e.Terminate()

		out, err := union.Fold(ctx, e, union.Concat(sets))
		if err != nil {
			return nil, opError(ErrUnionFailed, "", err)
		}
		return out, nil

	default:
		r.transition(statePassThrough)
		return union.Concat(sets), nil
	}
}
