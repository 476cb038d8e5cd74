package purefn

import (
	"errors"

	"github.com/on-the-ground/memoize_ive_go/pure"
	"github.com/on-the-ground/memoize_ive_go/shared/helper"
)

var ErrNoResults = errors.New("target returns no results")

// CallAs calls f and returns its first result as O.
func CallAs[O any](f *pure.Func, args ...any) (O, error) {
	return helper.GetTypedValueOf[O](func() (any, error) {
		results := f.Call(args...)
		if len(results) == 0 {
			return nil, ErrNoResults
		}
		return results[0], nil
	})
}

// MustCallAs is the panic-on-failure variant of CallAs.
func MustCallAs[O any](f *pure.Func, args ...any) O {
	return helper.MustGetTypedValue[O](func() (any, error) {
		results := f.Call(args...)
		if len(results) == 0 {
			return nil, ErrNoResults
		}
		return results[0], nil
	})
}
