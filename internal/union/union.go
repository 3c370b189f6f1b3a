// Package union merges per-element offset results into one polygon set.
package union

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/offset/engine"
	"github.com/gogpu/offset/geom"
)

// ErrEmpty is returned when the fold produces no paths.
var ErrEmpty = errors.New("union: empty result")

// Fold unions paths one at a time on e, a boolean engine instance: the
// running result starts as the first path and each next path is the clip,
// both filled non-zero. A loop with opposite winding is therefore filled in
// rather than kept as a hole. Empty paths are skipped. Fold does not
// terminate e.
func Fold(ctx context.Context, e engine.Engine, paths geom.Paths) (geom.Paths, error) {
	if e.Kind() != engine.KindBoolean {
		return nil, engine.ErrWrongKind
	}
	paths = paths.NonEmpty()
	if len(paths) == 0 {
		return nil, ErrEmpty
	}

	running := geom.Paths{paths[0]}
	for i, p := range paths[1:] {
		var err error
		running, err = step(ctx, e, running, geom.Paths{p})
		if err != nil {
			return nil, fmt.Errorf("union: fold step %d: %w", i+1, err)
		}
		if len(running) == 0 {
			return nil, fmt.Errorf("union: fold step %d: %w", i+1, ErrEmpty)
		}
	}
	return running, nil
}

func step(ctx context.Context, e engine.Engine, subject, clip geom.Paths) (geom.Paths, error) {
	if err := e.AddPaths(ctx, engine.AddRequest{Paths: subject, Role: engine.RoleSubject, Closed: true}); err != nil {
		return nil, err
	}
	if err := e.AddPaths(ctx, engine.AddRequest{Paths: clip, Role: engine.RoleClip, Closed: true}); err != nil {
		return nil, err
	}
	return e.Execute(ctx, engine.ExecuteRequest{
		Clip:        engine.ClipUnion,
		SubjectFill: engine.FillNonZero,
		ClipFill:    engine.FillNonZero,
	})
}

// Concat flattens sets into one list in order.
func Concat(sets []geom.Paths) geom.Paths {
	var out geom.Paths
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}
