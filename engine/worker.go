package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/offset/geom"
)

// NameWorker identifies the goroutine-backed implementation.
const NameWorker = "worker"

func init() {
	Register(NameWorker, NewWorker)
}

type opKind uint8

const (
	opInit opKind = iota
	opAdd
	opExecute
)

func (o opKind) String() string {
	switch o {
	case opInit:
		return "init"
	case opAdd:
		return "add"
	case opExecute:
		return "execute"
	default:
		return "unknown"
	}
}

// message is a request to the worker goroutine.
type message struct {
	id   uint64
	op   opKind
	cfg  Config
	add  AddRequest
	exec ExecuteRequest
}

// response answers the message with the same id.
type response struct {
	id    uint64
	paths geom.Paths
	err   error
}

// Worker runs the computation on a dedicated goroutine.
//
// Each call is a request tagged with a locally incrementing id. Responses
// arrive on one shared stream; a dispatcher goroutine hands each one to the
// one-shot channel registered for its id in the pending map. Every round
// trip is bounded by the caller's context and by Config.Timeout.
type Worker struct {
	kind    Kind
	timeout time.Duration

	requests  chan message
	responses chan response
	done      chan struct{}

	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]chan response

	once       sync.Once
	terminated atomic.Bool

	// hook runs on the worker goroutine before each message is handled.
	hook func(message)
}

// NewWorker starts a worker goroutine and sends it the init message.
func NewWorker(cfg Config) (Engine, error) {
	return newWorker(cfg, nil)
}

func newWorker(cfg Config, hook func(message)) (*Worker, error) {
	cfg = cfg.withDefaults()
	w := &Worker{
		kind:      cfg.Kind,
		timeout:   cfg.Timeout,
		requests:  make(chan message),
		responses: make(chan response),
		done:      make(chan struct{}),
		pending:   make(map[uint64]chan response),
		hook:      hook,
	}
	go w.serve()
	go w.dispatch()

	if _, err := w.call(context.Background(), message{op: opInit, cfg: cfg}); err != nil {
		w.Terminate()
		return nil, err
	}
	return w, nil
}

// Name implements Engine.
func (w *Worker) Name() string { return NameWorker }

// Kind implements Engine.
func (w *Worker) Kind() Kind { return w.kind }

// AddPaths implements Engine.
func (w *Worker) AddPaths(ctx context.Context, req AddRequest) error {
	_, err := w.call(ctx, message{op: opAdd, add: req})
	return err
}

// Execute implements Engine.
func (w *Worker) Execute(ctx context.Context, req ExecuteRequest) (geom.Paths, error) {
	r, err := w.call(ctx, message{op: opExecute, exec: req})
	if err != nil {
		return nil, err
	}
	return r.paths, nil
}

// Terminate stops the worker. Pending calls return ErrTerminated.
// Calling Terminate more than once is safe.
func (w *Worker) Terminate() {
	w.once.Do(func() {
		w.terminated.Store(true)
		close(w.done)
	})
}

// call sends m and waits for the matching response.
func (w *Worker) call(ctx context.Context, m message) (response, error) {
	if w.terminated.Load() {
		return response{}, ErrTerminated
	}
	if err := ctx.Err(); err != nil {
		return response{}, err
	}

	ch := make(chan response, 1)
	w.mu.Lock()
	w.nextID++
	m.id = w.nextID
	w.pending[m.id] = ch
	w.mu.Unlock()

	timer := time.NewTimer(w.timeout)
	defer timer.Stop()

	fail := func(err error) (response, error) {
		w.forget(m.id)
		if errors.Is(err, ErrTimeout) {
			logger().Warn("engine: worker round trip timed out",
				"id", m.id, "op", m.op, "timeout", w.timeout)
		}
		return response{}, err
	}

	select {
	case w.requests <- m:
	case <-ctx.Done():
		return fail(ctx.Err())
	case <-timer.C:
		return fail(ErrTimeout)
	case <-w.done:
		return fail(ErrTerminated)
	}

	select {
	case r := <-ch:
		return r, r.err
	case <-ctx.Done():
		return fail(ctx.Err())
	case <-timer.C:
		return fail(ErrTimeout)
	case <-w.done:
		return fail(ErrTerminated)
	}
}

func (w *Worker) forget(id uint64) {
	w.mu.Lock()
	delete(w.pending, id)
	w.mu.Unlock()
}

// dispatch resolves pending requests from the shared response stream.
func (w *Worker) dispatch() {
	for {
		select {
		case r := <-w.responses:
			w.mu.Lock()
			ch, ok := w.pending[r.id]
			delete(w.pending, r.id)
			w.mu.Unlock()
			if !ok {
				logger().Debug("engine: dropping response without pending request", "id", r.id)
				continue
			}
			ch <- r
		case <-w.done:
			return
		}
	}
}

// serve is the worker goroutine. It owns the core exclusively.
func (w *Worker) serve() {
	var c core
	for {
		select {
		case m := <-w.requests:
			r := w.handle(&c, m)
			select {
			case w.responses <- r:
			case <-w.done:
				return
			}
		case <-w.done:
			return
		}
	}
}

// handle processes one message. Failures, panics included, become the
// error of the matching response.
func (w *Worker) handle(c *core, m message) (r response) {
	r.id = m.id
	defer func() {
		if p := recover(); p != nil {
			r.err = fmt.Errorf("engine: worker %s request %d: %v", m.op, m.id, p)
		}
	}()
	if w.hook != nil {
		w.hook(m)
	}

	switch m.op {
	case opInit:
		*c, r.err = newCore(m.cfg)
	case opAdd:
		if *c == nil {
			r.err = fmt.Errorf("engine: worker %s request %d before init", m.op, m.id)
			return r
		}
		r.err = (*c).addPaths(m.add)
	case opExecute:
		if *c == nil {
			r.err = fmt.Errorf("engine: worker %s request %d before init", m.op, m.id)
			return r
		}
		r.paths, r.err = (*c).execute(m.exec)
	default:
		r.err = fmt.Errorf("engine: unknown worker op %d", m.op)
	}
	return r
}
