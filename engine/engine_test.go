package engine

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/gogpu/offset/geom"
)

func square(x0, y0, size int64) geom.Path {
	return geom.Path{
		{X: x0, Y: y0}, {X: x0 + size, Y: y0}, {X: x0 + size, Y: y0 + size}, {X: x0, Y: y0 + size}, {X: x0, Y: y0},
	}
}

func bounds(ps geom.Paths) (minX, minY, maxX, maxY int64) {
	minX, minY = math.MaxInt64, math.MaxInt64
	maxX, maxY = math.MinInt64, math.MinInt64
	for _, p := range ps {
		for _, pt := range p {
			minX, minY = min(minX, pt.X), min(minY, pt.Y)
			maxX, maxY = max(maxX, pt.X), max(maxY, pt.Y)
		}
	}
	return
}

func newEngine(t *testing.T, name string, cfg Config) Engine {
	t.Helper()
	e, err := Get(name, cfg)
	if err != nil {
		t.Fatalf("Get(%q): %v", name, err)
	}
	t.Cleanup(e.Terminate)
	return e
}

func forEachImpl(t *testing.T, fn func(t *testing.T, name string)) {
	for _, name := range []string{NameInProcess, NameWorker} {
		t.Run(name, func(t *testing.T) { fn(t, name) })
	}
}

func TestOffsetSquare(t *testing.T) {
	tests := []struct {
		name      string
		join      JoinType
		end       EndType
		delta     float64
		wantLoops int
		wantArea  float64
		wantMin   int64
		wantMax   int64
	}{
		{"outward miter", JoinMiter, EndClosedPolygon, 200, 1, 1400 * 1400, -200, 1200},
		{"shrink miter", JoinMiter, EndClosedPolygon, -200, 1, 600 * 600, 200, 800},
		{"band", JoinMiter, EndClosedLine, 200, 2, 1400*1400 - 600*600, -200, 1200},
	}
	forEachImpl(t, func(t *testing.T, name string) {
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				e := newEngine(t, name, Config{Kind: KindOffset})
				ctx := context.Background()
				err := e.AddPaths(ctx, AddRequest{Paths: geom.Paths{square(0, 0, 1000)}, Join: tt.join, End: tt.end})
				if err != nil {
					t.Fatal(err)
				}
				out, err := e.Execute(ctx, ExecuteRequest{Delta: tt.delta})
				if err != nil {
					t.Fatal(err)
				}
				if len(out) != tt.wantLoops {
					t.Fatalf("got %d loops, want %d", len(out), tt.wantLoops)
				}
				area := 0.0
				for _, p := range out {
					area += p.SignedArea()
				}
				if math.Abs(math.Abs(area)-tt.wantArea) > 1 {
					t.Errorf("net area = %v, want %v", math.Abs(area), tt.wantArea)
				}
				minX, minY, maxX, maxY := bounds(out)
				if minX != tt.wantMin || minY != tt.wantMin || maxX != tt.wantMax || maxY != tt.wantMax {
					t.Errorf("bounds = (%d,%d)-(%d,%d), want (%d,%d)-(%d,%d)",
						minX, minY, maxX, maxY, tt.wantMin, tt.wantMin, tt.wantMax, tt.wantMax)
				}
			})
		}
	})
}

func TestExecuteConsumesInput(t *testing.T) {
	forEachImpl(t, func(t *testing.T, name string) {
		e := newEngine(t, name, Config{Kind: KindOffset})
		ctx := context.Background()
		if err := e.AddPaths(ctx, AddRequest{Paths: geom.Paths{square(0, 0, 100)}, Join: JoinRound}); err != nil {
			t.Fatal(err)
		}
		if out, err := e.Execute(ctx, ExecuteRequest{Delta: 10}); err != nil || len(out) != 1 {
			t.Fatalf("first Execute = %d paths, %v", len(out), err)
		}
		out, err := e.Execute(ctx, ExecuteRequest{Delta: 10})
		if err != nil || len(out) != 0 {
			t.Errorf("second Execute = %d paths, %v; want empty", len(out), err)
		}
	})
}

func TestBooleanUnion(t *testing.T) {
	forEachImpl(t, func(t *testing.T, name string) {
		e := newEngine(t, name, Config{Kind: KindBoolean})
		ctx := context.Background()
		if err := e.AddPaths(ctx, AddRequest{Paths: geom.Paths{square(0, 0, 100)}, Role: RoleSubject, Closed: true}); err != nil {
			t.Fatal(err)
		}
		if err := e.AddPaths(ctx, AddRequest{Paths: geom.Paths{square(50, 0, 100)}, Role: RoleClip, Closed: true}); err != nil {
			t.Fatal(err)
		}
		out, err := e.Execute(ctx, ExecuteRequest{Clip: ClipUnion, SubjectFill: FillNonZero, ClipFill: FillNonZero})
		if err != nil {
			t.Fatal(err)
		}
		if len(out) != 1 {
			t.Fatalf("union has %d loops, want 1", len(out))
		}
		if a := math.Abs(out[0].SignedArea()); a != 150*100 {
			t.Errorf("union area = %v, want %v", a, 150*100)
		}
	})
}

func TestBooleanOpenPaths(t *testing.T) {
	forEachImpl(t, func(t *testing.T, name string) {
		e := newEngine(t, name, Config{Kind: KindBoolean})
		ctx := context.Background()
		line := geom.Paths{{{X: 0, Y: 0}, {X: 100, Y: 0}}}

		if err := e.AddPaths(ctx, AddRequest{Paths: line, Role: RoleClip}); !errors.Is(err, ErrOpenClip) {
			t.Errorf("open clip error = %v, want ErrOpenClip", err)
		}
		if err := e.AddPaths(ctx, AddRequest{Paths: line, Role: RoleSubject}); err != nil {
			t.Fatal(err)
		}
		if _, err := e.Execute(ctx, ExecuteRequest{Clip: ClipUnion}); !errors.Is(err, ErrOpenBoolean) {
			t.Errorf("Execute error = %v, want ErrOpenBoolean", err)
		}
	})
}

func TestTerminate(t *testing.T) {
	forEachImpl(t, func(t *testing.T, name string) {
		e, err := Get(name, Config{Kind: KindOffset})
		if err != nil {
			t.Fatal(err)
		}
		e.Terminate()
		e.Terminate()
		ctx := context.Background()
		if err := e.AddPaths(ctx, AddRequest{}); !errors.Is(err, ErrTerminated) {
			t.Errorf("AddPaths after Terminate = %v, want ErrTerminated", err)
		}
		if _, err := e.Execute(ctx, ExecuteRequest{}); !errors.Is(err, ErrTerminated) {
			t.Errorf("Execute after Terminate = %v, want ErrTerminated", err)
		}
	})
}

func TestCanceledContext(t *testing.T) {
	forEachImpl(t, func(t *testing.T, name string) {
		e := newEngine(t, name, Config{Kind: KindOffset})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := e.AddPaths(ctx, AddRequest{}); !errors.Is(err, context.Canceled) {
			t.Errorf("AddPaths error = %v, want context.Canceled", err)
		}
	})
}

func TestWorkerTimeout(t *testing.T) {
	release := make(chan struct{})
	w, err := newWorker(Config{Kind: KindOffset, Timeout: 20 * time.Millisecond}, func(m message) {
		if m.op == opExecute {
			<-release
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		close(release)
		w.Terminate()
	})

	ctx := context.Background()
	if err := w.AddPaths(ctx, AddRequest{Paths: geom.Paths{square(0, 0, 100)}}); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Execute(ctx, ExecuteRequest{Delta: 10}); !errors.Is(err, ErrTimeout) {
		t.Errorf("Execute error = %v, want ErrTimeout", err)
	}

	w.mu.Lock()
	n := len(w.pending)
	w.mu.Unlock()
	if n != 0 {
		t.Errorf("%d requests still pending after timeout", n)
	}
}

func TestWorkerPanicBecomesError(t *testing.T) {
	w, err := newWorker(Config{Kind: KindOffset}, func(m message) {
		if m.op == opAdd {
			panic("boom")
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(w.Terminate)

	ctx := context.Background()
	if err := w.AddPaths(ctx, AddRequest{}); err == nil {
		t.Fatal("AddPaths succeeded, want the worker's error")
	}
	// the worker keeps serving after a failed request
	if _, err := w.Execute(ctx, ExecuteRequest{}); err != nil {
		t.Errorf("Execute after failure: %v", err)
	}
}

func TestWorkerIDsIncrement(t *testing.T) {
	var ids []uint64
	w, err := newWorker(Config{Kind: KindOffset}, func(m message) {
		ids = append(ids, m.id)
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(w.Terminate)

	ctx := context.Background()
	for range 3 {
		if err := w.AddPaths(ctx, AddRequest{}); err != nil {
			t.Fatal(err)
		}
	}
	// ids is only written by the worker goroutine before each response,
	// and every call above has returned.
	want := []uint64{1, 2, 3, 4}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids = %v, want %v", ids, want)
			break
		}
	}
}

func TestUnknownKind(t *testing.T) {
	forEachImpl(t, func(t *testing.T, name string) {
		if _, err := Get(name, Config{Kind: Kind(42)}); err == nil {
			t.Error("Get succeeded for an unknown kind")
		}
	})
}

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{KindOffset.String(), "offset"},
		{KindBoolean.String(), "boolean"},
		{JoinRound.String(), "round"},
		{JoinMiter.String(), "miter"},
		{JoinSquare.String(), "square"},
		{EndOpenRound.String(), "open-round"},
		{EndClosedLine.String(), "closed-line"},
		{ClipUnion.String(), "union"},
		{FillNonZero.String(), "nonzero"},
		{RoleClip.String(), "clip"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}
