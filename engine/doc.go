// Package engine provides the polygon offset and boolean computation used by
// the offset pipeline.
//
// Two instance kinds share one protocol. An offset instance displaces the
// accumulated paths by a signed delta; a boolean instance combines subject
// and clip paths. The computation is done by github.com/ctessum/go.clipper
// on scaled integer coordinates.
//
// # Implementations
//
// Implementations are registered via init() functions and selected at
// runtime, like rendering backends:
//
//	e, err := engine.Default(engine.Config{Kind: engine.KindOffset})
//	if err != nil {
//		return err
//	}
//	defer e.Terminate()
//
// - "worker": a dedicated goroutine per instance, bounded by a timeout
// - "inprocess": synchronous computation on the caller's goroutine
//
// # Usage
//
//	err := e.AddPaths(ctx, engine.AddRequest{
//		Paths: paths,
//		Join:  engine.JoinRound,
//		End:   engine.EndClosedPolygon,
//	})
//	out, err := e.Execute(ctx, engine.ExecuteRequest{Delta: 200})
package engine
