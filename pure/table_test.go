package pure_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/on-the-ground/memoize_ive_go/pure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTable_HitSkipsCompute(t *testing.T) {
	table := pure.NewTable[int]()
	count := 0
	compute := func() (int, error) {
		count++
		return count, nil
	}

	v, err := table.Do([]any{"x"}, compute)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	// non-deterministic compute still observed only once
	v, err = table.Do([]any{"x"}, compute)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, count)
	assert.Equal(t, pure.Stats{Hits: 1, Misses: 1}, table.Stats())
}

func TestTable_ErrorsAreNotCached(t *testing.T) {
	table := pure.NewTable[string]()
	errBoom := errors.New("boom")
	count := 0

	v, err := table.Do([]any{1}, func() (string, error) {
		count++
		return "partial", errBoom
	})
	assert.Same(t, errBoom, err)
	assert.Equal(t, "partial", v)
	assert.Equal(t, 0, table.Len())

	v, err = table.Do([]any{1}, func() (string, error) {
		count++
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 2, count)
	assert.Equal(t, pure.Stats{Misses: 1, Faults: 1}, table.Stats())
}

type customPanic struct{ reason string }

func TestTable_PanicPropagatesUnchanged(t *testing.T) {
	table := pure.NewTable[int]()
	want := customPanic{reason: "bad input"}

	assert.PanicsWithValue(t, want, func() {
		_, _ = table.Do([]any{1}, func() (int, error) {
			panic(want)
		})
	})
	assert.Equal(t, 0, table.Len())

	v, err := table.Do([]any{1}, func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestTable_ConcurrentMissesComputeOnce(t *testing.T) {
	table := pure.NewTable[int]()
	var count atomic.Int32
	release := make(chan struct{})

	const callers = 16
	var started, done sync.WaitGroup
	results := make([]int, callers)
	for i := 0; i < callers; i++ {
		started.Add(1)
		done.Add(1)
		go func(i int) {
			defer done.Done()
			started.Done()
			results[i], _ = table.Do([]any{"slow"}, func() (int, error) {
				count.Add(1)
				<-release
				return 42, nil
			})
		}(i)
	}
	started.Wait()
	time.Sleep(50 * time.Millisecond)
	close(release)
	done.Wait()

	assert.Equal(t, int32(1), count.Load())
	for _, r := range results {
		assert.Equal(t, 42, r)
	}
	stats := table.Stats()
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, uint64(callers-1), stats.Hits)
}

func TestTable_IndependentTables(t *testing.T) {
	t1 := pure.NewTable[int]()
	t2 := pure.NewTable[int]()
	assert.NotEqual(t, t1.ID(), t2.ID())

	_, _ = t1.Do([]any{1}, func() (int, error) { return 1, nil })
	assert.Equal(t, 1, t1.Len())
	assert.Equal(t, 0, t2.Len())
}

func TestTable_ObserverAndLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	var events []pure.Event
	cfg := pure.NewConfig(2, zap.New(core), pure.ObserverFunc(func(data pure.EventData) {
		events = append(events, data.Event)
	}))
	table := pure.NewTable[int](cfg)

	_, _ = table.Do([]any{1}, func() (int, error) { return 1, nil })
	_, _ = table.Do([]any{1}, func() (int, error) { return 1, nil })
	_, _ = table.Do([]any{2}, func() (int, error) { return 0, errors.New("nope") })

	assert.Equal(t, []pure.Event{pure.EventMiss, pure.EventHit, pure.EventFault}, events)
	assert.Equal(t, 1, logs.FilterMessage("memo miss").Len())
	assert.Equal(t, 1, logs.FilterMessage("memo hit").Len())
	assert.Equal(t, 1, logs.FilterMessage("memo fault, result not stored").Len())
	assert.Equal(t, table.ID().String(), logs.FilterMessage("memo hit").All()[0].ContextMap()["table_id"])
}

func TestTable_TooManyConfigsPanics(t *testing.T) {
	assert.Panics(t, func() {
		pure.NewTable[int](pure.Config{}, pure.Config{})
	})
}
