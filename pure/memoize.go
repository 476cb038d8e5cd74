package pure

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/google/uuid"
)

// ErrNilArgument is the panic value cause when nil is passed for a parameter
// whose type cannot hold nil.
var ErrNilArgument = errors.New("nil argument for non-nillable parameter")

var errorType = reflect.TypeFor[error]()

// Func is a memoizing façade over an arbitrary func value.
// It owns its cache; two Funcs never share one, even over the same target.
type Func struct {
	target reflect.Value
	fnType reflect.Type
	table  *Table[[]any]
}

// Wrap returns a memoized version of target.
//
// If target is not a non-nil func, Wrap returns nil instead of failing, and
// callers are expected to check for it.
func Wrap(target any, cfg ...Config) *Func {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Func || v.IsNil() {
		return nil
	}
	return &Func{
		target: v,
		fnType: v.Type(),
		table:  NewTable[[]any](cfg...),
	}
}

// Call invokes the target with args, keyed on every argument.
// It returns the target's results in order.
func (f *Func) Call(args ...any) []any {
	return f.call(args, args)
}

// CallOn invokes the target with receiver as its first argument, followed by args.
// The receiver is forwarded on a miss but is not part of the key, so calls that
// differ only by receiver share a cache entry.
//
// CallOn is meant for method expressions such as (*T).Method.
func (f *Func) CallOn(receiver any, args ...any) []any {
	return f.call(args, append([]any{receiver}, args...))
}

func (f *Func) call(keyArgs, callArgs []any) []any {
	results, _ := f.table.Do(keyArgs, func() ([]any, error) {
		results := f.invoke(callArgs)
		return results, f.faultOf(results)
	})
	return slices.Clone(results)
}

func (f *Func) invoke(args []any) []any {
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		in[i] = f.argValue(i, arg)
	}
	outs := f.target.Call(in)
	results := make([]any, len(outs))
	for i, out := range outs {
		results[i] = out.Interface()
	}
	return results
}

// argValue converts arg for parameter i, turning an untyped nil into the
// parameter's zero value.
func (f *Func) argValue(i int, arg any) reflect.Value {
	if arg != nil {
		return reflect.ValueOf(arg)
	}
	t, ok := f.paramType(i)
	if !ok {
		// Let reflect report the arity mismatch.
		return reflect.ValueOf(arg)
	}
	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map,
		reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return reflect.Zero(t)
	default:
		panic(fmt.Errorf("%w: parameter %d of %s", ErrNilArgument, i, f.fnType))
	}
}

func (f *Func) paramType(i int) (reflect.Type, bool) {
	n := f.fnType.NumIn()
	if f.fnType.IsVariadic() && i >= n-1 {
		return f.fnType.In(n - 1).Elem(), true
	}
	if i < n {
		return f.fnType.In(i), true
	}
	return nil, false
}

// faultOf returns the target's trailing error result, if any.
func (f *Func) faultOf(results []any) error {
	n := f.fnType.NumOut()
	if n == 0 || f.fnType.Out(n-1) != errorType {
		return nil
	}
	err, _ := results[n-1].(error)
	return err
}

// Target returns the wrapped func value.
func (f *Func) Target() any { return f.target.Interface() }

func (f *Func) Len() int { return f.table.Len() }

func (f *Func) Stats() Stats { return f.table.Stats() }

// ID identifies this wrapper's cache.
func (f *Func) ID() uuid.UUID { return f.table.ID() }
