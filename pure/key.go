package pure

import (
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"unsafe"
)

// Key is the canonical form of an argument list.
// Two argument lists produce equal keys from the same Keyer iff they hold equal
// values, of identical dynamic types, at equal positions.
type Key string

// Keyer derives Keys for a single table.
//
// Pointers, channels, funcs and unsafe pointers are keyed by identity. A Keyer
// holds every object it has identified, so an address can never be reused by a
// different object while keys that mention it are alive. Keys from different
// Keyers are not comparable.
type Keyer struct {
	mu   sync.Mutex
	refs map[unsafe.Pointer]uint64
}

func NewKeyer() *Keyer {
	return &Keyer{refs: make(map[unsafe.Pointer]uint64)}
}

// Derive serializes the full, ordered argument list into a Key.
//
// Every argument is tagged with its dynamic type, so int(2), "2" and float64(2)
// map to different keys. Scalars, strings, arrays, slices, structs and maps are
// encoded by value. Reference kinds are encoded by identity. The empty argument
// list yields "()".
//
// ok is false when an argument holds a func that cannot be identified (a func
// stored in an unexported struct field); such a list must not be cached.
func (k *Keyer) Derive(args ...any) (key Key, ok bool) {
	e := encoder{keyer: k, ok: true}
	e.b.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			e.b.WriteByte(',')
		}
		e.writeTagged(reflect.ValueOf(arg))
	}
	e.b.WriteByte(')')
	return Key(e.b.String()), e.ok
}

func (k *Keyer) refID(p unsafe.Pointer) uint64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	if id, ok := k.refs[p]; ok {
		return id
	}
	id := uint64(len(k.refs)) + 1
	k.refs[p] = id
	return id
}

var (
	typeIDs    sync.Map // reflect.Type -> uint64
	nextTypeID atomic.Uint64
)

// typeID numbers every distinct type, so function-local types that share a
// package path and name still differ.
func typeID(t reflect.Type) string {
	if id, ok := typeIDs.Load(t); ok {
		return strconv.FormatUint(id.(uint64), 10)
	}
	id, _ := typeIDs.LoadOrStore(t, nextTypeID.Add(1))
	return strconv.FormatUint(id.(uint64), 10)
}

type encoder struct {
	keyer *Keyer
	b     strings.Builder
	ok    bool
}

func (e *encoder) writeTagged(v reflect.Value) {
	if !v.IsValid() {
		e.b.WriteString("nil")
		return
	}
	e.b.WriteString(typeTag(v.Type()))
	e.b.WriteByte('(')
	e.writeValue(v)
	e.b.WriteByte(')')
}

// typeTag names t. Predeclared types keep their bare name; every other named
// type, and every unnamed struct, func or interface type, carries its type ID.
func typeTag(t reflect.Type) string {
	if t.Name() != "" {
		if t.PkgPath() == "" {
			return t.Name()
		}
		return strconv.Quote(t.PkgPath()) + "." + t.Name() + "#" + typeID(t)
	}
	switch t.Kind() {
	case reflect.Pointer:
		return "*" + typeTag(t.Elem())
	case reflect.Slice:
		return "[]" + typeTag(t.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + typeTag(t.Elem())
	case reflect.Map:
		return "map[" + typeTag(t.Key()) + "]" + typeTag(t.Elem())
	case reflect.Chan:
		switch t.ChanDir() {
		case reflect.RecvDir:
			return "<-chan " + typeTag(t.Elem())
		case reflect.SendDir:
			return "chan<- " + typeTag(t.Elem())
		default:
			return "chan " + typeTag(t.Elem())
		}
	default:
		return t.String() + "#" + typeID(t)
	}
}

func (e *encoder) writeValue(v reflect.Value) {
	b := &e.b
	switch v.Kind() {
	case reflect.Bool:
		b.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		writeFloat(b, v.Float())
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		b.WriteByte('(')
		writeFloat(b, real(c))
		b.WriteByte(',')
		writeFloat(b, imag(c))
		b.WriteByte(')')
	case reflect.String:
		b.WriteString(strconv.Quote(v.String()))
	case reflect.Interface:
		e.writeTagged(v.Elem())
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		if v.IsNil() {
			b.WriteString("nil")
			return
		}
		e.writeRef(v.UnsafePointer())
	case reflect.Func:
		if v.IsNil() {
			b.WriteString("nil")
			return
		}
		p, ok := closureOf(v)
		if !ok {
			e.ok = false
			b.WriteString("?")
			return
		}
		e.writeRef(p)
	case reflect.Slice:
		if v.IsNil() {
			b.WriteString("nil")
			return
		}
		e.writeSeq(v)
	case reflect.Array:
		e.writeSeq(v)
	case reflect.Struct:
		t := v.Type()
		b.WriteByte('{')
		for i := 0; i < v.NumField(); i++ {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(t.Field(i).Name)
			b.WriteByte(':')
			e.writeValue(v.Field(i))
		}
		b.WriteByte('}')
	case reflect.Map:
		if v.IsNil() {
			b.WriteString("nil")
			return
		}
		e.writeMap(v)
	default:
		// reflect.Invalid only reaches here through a zero Value.
		b.WriteString("nil")
	}
}

func (e *encoder) writeRef(p unsafe.Pointer) {
	e.b.WriteByte('@')
	e.b.WriteString(strconv.FormatUint(e.keyer.refID(p), 10))
}

// closureOf returns the closure object behind a func value. Unlike
// reflect.Value.Pointer, which yields the shared code pointer, it tells apart
// closures of one literal that captured different state.
func closureOf(v reflect.Value) (unsafe.Pointer, bool) {
	if !v.CanInterface() {
		return nil, false
	}
	slot := reflect.New(v.Type())
	slot.Elem().Set(v)
	return *(*unsafe.Pointer)(slot.UnsafePointer()), true
}

func writeFloat(b *strings.Builder, f float64) {
	if math.IsNaN(f) {
		b.WriteString("NaN")
		return
	}
	b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
}

func (e *encoder) writeSeq(v reflect.Value) {
	e.b.WriteByte('[')
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			e.b.WriteByte(',')
		}
		e.writeValue(v.Index(i))
	}
	e.b.WriteByte(']')
}

func (e *encoder) writeMap(v reflect.Value) {
	type entry struct{ k, v string }
	entries := make([]entry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		ke := encoder{keyer: e.keyer, ok: true}
		ke.writeValue(iter.Key())
		ve := encoder{keyer: e.keyer, ok: true}
		ve.writeValue(iter.Value())
		e.ok = e.ok && ke.ok && ve.ok
		entries = append(entries, entry{k: ke.b.String(), v: ve.b.String()})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].k != entries[j].k {
			return entries[i].k < entries[j].k
		}
		return entries[i].v < entries[j].v
	})

	e.b.WriteString("map{")
	for i, en := range entries {
		if i > 0 {
			e.b.WriteByte(',')
		}
		e.b.WriteString(en.k)
		e.b.WriteByte(':')
		e.b.WriteString(en.v)
	}
	e.b.WriteByte('}')
}
