package session

import (
	"bytes"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/reglet-dev/nu-plugin-lua/domain/entities"
	"github.com/reglet-dev/nu-plugin-lua/domain/ports"
)

// countingEngine returns how many times it has been evaluated and records
// whether two evaluations ever overlapped.
type countingEngine struct {
	active  *atomic.Int32
	overlap *atomic.Bool
	delay   time.Duration
	evals   int64
}

func (e *countingEngine) Eval(code string) (entities.Value, error) {
	if e.active.Add(1) > 1 {
		e.overlap.Store(true)
	}
	defer e.active.Add(-1)
	time.Sleep(e.delay)
	e.evals++
	return entities.NewInt(e.evals, entities.UnknownSpan()), nil
}

func newCountingFactory(delay time.Duration) (ports.EngineFactory, *atomic.Bool) {
	overlap := &atomic.Bool{}
	return ports.EngineFactoryFunc(func() ports.Engine {
		return &countingEngine{active: &atomic.Int32{}, overlap: overlap, delay: delay}
	}), overlap
}

func TestRegistry_CreateLookupDestroy(t *testing.T) {
	factory, _ := newCountingFactory(0)
	reg := NewRegistry(factory)

	h, s := reg.Create()
	require.NotNil(t, s)
	assert.False(t, h.IsZero())
	assert.True(t, h.Equal(s.Handle()))
	assert.Equal(t, 1, reg.Len())

	got, ok := reg.Lookup(h)
	require.True(t, ok)
	assert.Same(t, s, got)

	reg.Destroy(h)
	_, ok = reg.Lookup(h)
	assert.False(t, ok)
	assert.Equal(t, 0, reg.Len())

	// second destroy is a no-op
	assert.NotPanics(t, func() { reg.Destroy(h) })
	assert.Equal(t, 0, reg.Len())
}

func TestRegistry_LookupUnknown(t *testing.T) {
	factory, _ := newCountingFactory(0)
	reg := NewRegistry(factory)

	_, ok := reg.Lookup(Handle{})
	assert.False(t, ok)

	_, ok = reg.Lookup(NewHandle())
	assert.False(t, ok)
}

func TestRegistry_DestroyLeavesOthers(t *testing.T) {
	factory, _ := newCountingFactory(0)
	reg := NewRegistry(factory)

	h1, _ := reg.Create()
	h2, s2 := reg.Create()
	assert.False(t, h1.Equal(h2))

	reg.Destroy(h1)

	got, ok := reg.Lookup(h2)
	require.True(t, ok)
	assert.Same(t, s2, got)
}

func TestRegistry_SessionStatePersists(t *testing.T) {
	factory, _ := newCountingFactory(0)
	reg := NewRegistry(factory)
	_, s := reg.Create()

	for want := int64(1); want <= 3; want++ {
		v, err := s.Eval("x")
		require.NoError(t, err)
		n, _ := v.AsInt()
		assert.Equal(t, want, n)
	}
}

func TestRegistry_ConcurrentCreate(t *testing.T) {
	factory, _ := newCountingFactory(0)
	reg := NewRegistry(factory)

	const n = 64
	handles := make([]Handle, n)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			h, _ := reg.Create()
			handles[i] = h
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, n, reg.Len())
	seen := make(map[string]struct{}, n)
	for _, h := range handles {
		seen[h.String()] = struct{}{}
	}
	assert.Len(t, seen, n)
}

func TestSession_EvaluationsAreSerialized(t *testing.T) {
	factory, overlap := newCountingFactory(time.Millisecond)
	reg := NewRegistry(factory)
	_, s := reg.Create()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Eval("x")
		}()
	}
	wg.Wait()

	assert.False(t, overlap.Load())
}

// blockingEngine announces each evaluation and holds it until released.
type blockingEngine struct {
	arrived chan<- struct{}
	release <-chan struct{}
	active  *atomic.Int32
	peak    *atomic.Int32
}

func (e *blockingEngine) Eval(string) (entities.Value, error) {
	n := e.active.Add(1)
	defer e.active.Add(-1)
	for {
		p := e.peak.Load()
		if n <= p || e.peak.CompareAndSwap(p, n) {
			break
		}
	}
	e.arrived <- struct{}{}
	<-e.release
	return entities.NewNothing(entities.UnknownSpan()), nil
}

func TestSession_IndependentSessionsEvaluateInParallel(t *testing.T) {
	arrived := make(chan struct{}, 2)
	release := make(chan struct{})
	active, peak := &atomic.Int32{}, &atomic.Int32{}
	reg := NewRegistry(ports.EngineFactoryFunc(func() ports.Engine {
		return &blockingEngine{arrived: arrived, release: release, active: active, peak: peak}
	}))

	_, s1 := reg.Create()
	_, s2 := reg.Create()

	var g errgroup.Group
	for _, s := range []*Session{s1, s2} {
		g.Go(func() error {
			_, err := s.Eval("block")
			return err
		})
	}

	timeout := time.After(5 * time.Second)
	for i := 0; i < 2; i++ {
		select {
		case <-arrived:
		case <-timeout:
			close(release)
			_ = g.Wait()
			t.Fatalf("only %d of 2 sessions started evaluating", i)
		}
	}
	close(release)

	require.NoError(t, g.Wait())
	assert.Equal(t, int32(2), peak.Load())
}

func TestSession_DestroyDuringEval(t *testing.T) {
	factory, _ := newCountingFactory(20 * time.Millisecond)
	reg := NewRegistry(factory)
	h, s := reg.Create()

	done := make(chan error, 1)
	go func() {
		_, err := s.Eval("x")
		done <- err
	}()

	time.Sleep(5 * time.Millisecond)
	reg.Destroy(h)

	require.NoError(t, <-done)
	_, ok := reg.Lookup(h)
	assert.False(t, ok)
}

func TestRegistry_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	factory, _ := newCountingFactory(0)
	reg := NewRegistry(factory, WithLogger(logger))

	h, _ := reg.Create()
	assert.Contains(t, buf.String(), "session created")
	assert.Contains(t, buf.String(), h.String())

	buf.Reset()
	reg.Destroy(h)
	assert.Contains(t, buf.String(), "session destroyed")

	buf.Reset()
	reg.Destroy(h)
	assert.Empty(t, buf.String())
}

func TestHandle_CBOR(t *testing.T) {
	h := NewHandle()

	data, err := cbor.Marshal(h)
	require.NoError(t, err)
	// major type 2 (byte string), length 16
	assert.Equal(t, byte(0x50), data[0])
	assert.Len(t, data, 17)

	var decoded Handle
	require.NoError(t, cbor.Unmarshal(data, &decoded))
	assert.True(t, h.Equal(decoded))

	short, err := cbor.Marshal([]byte{1, 2, 3})
	require.NoError(t, err)
	assert.Error(t, cbor.Unmarshal(short, &decoded))
}

func TestHandle_String(t *testing.T) {
	h := NewHandle()

	parsed, err := ParseHandle(h.String())
	require.NoError(t, err)
	assert.True(t, h.Equal(parsed))

	_, err = ParseHandle("not-a-handle")
	assert.Error(t, err)

	assert.True(t, Handle{}.IsZero())
}
