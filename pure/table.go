package pure

import (
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Table memoizes computations of V keyed by their argument lists.
//
// A Table is safe for concurrent use. Concurrent misses on the same key share a
// single computation, so compute runs at most once per successfully stored key.
type Table[V any] struct {
	id       uuid.UUID
	keyer    *Keyer
	store    *Store[V]
	inflight singleflight.Group
	logger   *zap.Logger
	observer Observer

	hits     atomic.Uint64
	misses   atomic.Uint64
	faults   atomic.Uint64
	bypasses atomic.Uint64
}

// Stats counts memoized calls by outcome.
type Stats struct {
	Hits     uint64
	Misses   uint64
	Faults   uint64
	Bypasses uint64
}

func NewTable[V any](cfg ...Config) *Table[V] {
	config := normalizeConfig(cfg)
	t := &Table[V]{
		id:       uuid.New(),
		keyer:    NewKeyer(),
		store:    NewStore[V](config.NumShards),
		logger:   config.Logger,
		observer: config.Observer,
	}
	t.logger.Debug("created memo table", zap.Stringer("table_id", t.id), zap.Int("shards", config.NumShards))
	return t
}

// outcome carries a computation result through the in-flight group,
// including a recovered panic so it can be rethrown unchanged.
type outcome[V any] struct {
	value     V
	err       error
	stored    bool
	panicked  bool
	recovered any
}

// Do returns the value stored for args, computing and storing it on a miss.
//
// If compute returns a non-nil error, its value and error are returned unchanged
// and nothing is stored. If compute panics, the panic is rethrown with its original
// value and nothing is stored. In both cases the next call with the same args
// invokes compute again.
//
// Argument lists the table's Keyer cannot identify bypass the table: compute runs
// on every such call and nothing is stored.
func (t *Table[V]) Do(args []any, compute func() (V, error)) (V, error) {
	key, ok := t.keyer.Derive(args...)
	if !ok {
		t.emit(EventBypass, key)
		return compute()
	}
	if v, ok := t.store.Load(key); ok {
		t.emit(EventHit, key)
		return v, nil
	}

	executed := false
	res, _, _ := t.inflight.Do(string(key), func() (any, error) {
		executed = true
		if v, ok := t.store.Load(key); ok {
			return outcome[V]{value: v}, nil
		}
		out := t.invoke(compute)
		if !out.panicked && out.err == nil {
			out.value, _ = t.store.LoadOrStore(key, out.value)
			out.stored = true
		}
		return out, nil
	})
	out, _ := res.(outcome[V])

	switch {
	case out.panicked:
		t.emit(EventFault, key)
		panic(out.recovered)
	case out.err != nil:
		t.emit(EventFault, key)
		return out.value, out.err
	case executed && out.stored:
		t.emit(EventMiss, key)
	default:
		t.emit(EventHit, key)
	}
	return out.value, nil
}

func (t *Table[V]) invoke(compute func() (V, error)) (out outcome[V]) {
	defer func() {
		if r := recover(); r != nil {
			out = outcome[V]{panicked: true, recovered: r}
		}
	}()
	out.value, out.err = compute()
	return out
}

func (t *Table[V]) emit(event Event, key Key) {
	switch event {
	case EventHit:
		t.hits.Add(1)
		t.logger.Debug("memo hit", zap.Stringer("table_id", t.id), zap.String("key", string(key)))
	case EventMiss:
		t.misses.Add(1)
		t.logger.Debug("memo miss", zap.Stringer("table_id", t.id), zap.String("key", string(key)))
	case EventFault:
		t.faults.Add(1)
		t.logger.Debug("memo fault, result not stored", zap.Stringer("table_id", t.id), zap.String("key", string(key)))
	case EventBypass:
		t.bypasses.Add(1)
		t.logger.Debug("memo bypass, arguments not identifiable", zap.Stringer("table_id", t.id), zap.String("key", string(key)))
	}
	t.observer.On(EventData{Event: event, TableID: t.id, Key: key})
}

// ID identifies this table in logs and metrics. Every table gets a fresh ID.
func (t *Table[V]) ID() uuid.UUID { return t.id }

// Len returns the number of stored keys.
func (t *Table[V]) Len() int { return t.store.Len() }

func (t *Table[V]) Stats() Stats {
	return Stats{
		Hits:     t.hits.Load(),
		Misses:   t.misses.Load(),
		Faults:   t.faults.Load(),
		Bypasses: t.bypasses.Load(),
	}
}
