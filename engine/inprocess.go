package engine

import (
	"context"
	"sync"

	"github.com/gogpu/offset/geom"
)

// NameInProcess identifies the synchronous implementation.
const NameInProcess = "inprocess"

func init() {
	Register(NameInProcess, NewInProcess)
}

// InProcess runs the computation on the calling goroutine. It never
// suspends; ctx is only checked on entry.
type InProcess struct {
	mu         sync.Mutex
	kind       Kind
	core       core
	terminated bool
}

// NewInProcess creates a synchronous instance.
func NewInProcess(cfg Config) (Engine, error) {
	cfg = cfg.withDefaults()
	c, err := newCore(cfg)
	if err != nil {
		return nil, err
	}
	return &InProcess{kind: cfg.Kind, core: c}, nil
}

// Name implements Engine.
func (e *InProcess) Name() string { return NameInProcess }

// Kind implements Engine.
func (e *InProcess) Kind() Kind { return e.kind }

// AddPaths implements Engine.
func (e *InProcess) AddPaths(ctx context.Context, req AddRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.terminated {
		return ErrTerminated
	}
	return e.core.addPaths(req)
}

// Execute implements Engine.
func (e *InProcess) Execute(ctx context.Context, req ExecuteRequest) (geom.Paths, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.terminated {
		return nil, ErrTerminated
	}
	return e.core.execute(req)
}

// Terminate implements Engine.
func (e *InProcess) Terminate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.terminated = true
	e.core = nil
}
