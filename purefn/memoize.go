package purefn

import (
	"github.com/on-the-ground/memoize_ive_go/pure"
)

func MemoizeI0O1[O1 any](
	fn func() O1,
	cfg ...pure.Config,
) func() O1 {
	memoized := memoize(
		func(...any) O1 {
			return fn()
		},
		cfg,
	)
	return func() O1 {
		return memoized()
	}
}

func MemoizeI1O1[I1, O1 any](
	fn func(I1) O1,
	cfg ...pure.Config,
) func(I1) O1 {
	memoized := memoize(
		func(args ...any) O1 {
			return fn(at[I1](args, 0))
		},
		cfg,
	)
	return func(i1 I1) O1 {
		return memoized(i1)
	}
}

func MemoizeI2O1[I1, I2, O1 any](
	fn func(I1, I2) O1,
	cfg ...pure.Config,
) func(I1, I2) O1 {
	memoized := memoize(
		func(args ...any) O1 {
			return fn(at[I1](args, 0), at[I2](args, 1))
		},
		cfg,
	)
	return func(i1 I1, i2 I2) O1 {
		return memoized(i1, i2)
	}
}

func MemoizeI3O1[I1, I2, I3, O1 any](
	fn func(I1, I2, I3) O1,
	cfg ...pure.Config,
) func(I1, I2, I3) O1 {
	memoized := memoize(
		func(args ...any) O1 {
			return fn(at[I1](args, 0), at[I2](args, 1), at[I3](args, 2))
		},
		cfg,
	)
	return func(i1 I1, i2 I2, i3 I3) O1 {
		return memoized(i1, i2, i3)
	}
}

func MemoizeI4O1[I1, I2, I3, I4, O1 any](
	fn func(I1, I2, I3, I4) O1,
	cfg ...pure.Config,
) func(I1, I2, I3, I4) O1 {
	memoized := memoize(
		func(args ...any) O1 {
			return fn(at[I1](args, 0), at[I2](args, 1), at[I3](args, 2), at[I4](args, 3))
		},
		cfg,
	)
	return func(i1 I1, i2 I2, i3 I3, i4 I4) O1 {
		return memoized(i1, i2, i3, i4)
	}
}

// MemoizeVariadic memoizes fn keyed on every element of its variadic argument.
// Calls with no arguments share one entry.
func MemoizeVariadic[I, O1 any](
	fn func(...I) O1,
	cfg ...pure.Config,
) func(...I) O1 {
	table := pure.NewTable[O1](cfg...)
	return func(xs ...I) O1 {
		v, _ := table.Do(toAnys(xs), func() (O1, error) {
			return fn(xs...), nil
		})
		return v
	}
}

// MemoizeOn memoizes a function taking an invocation receiver.
// The receiver is forwarded on a miss but is not part of the key.
func MemoizeOn[R, I, O1 any](
	fn func(R, ...I) O1,
	cfg ...pure.Config,
) func(R, ...I) O1 {
	table := pure.NewTable[O1](cfg...)
	return func(recv R, xs ...I) O1 {
		v, _ := table.Do(toAnys(xs), func() (O1, error) {
			return fn(recv, xs...), nil
		})
		return v
	}
}

func toAnys[I any](xs []I) []any {
	args := make([]any, len(xs))
	for i, x := range xs {
		args[i] = x
	}
	return args
}

func memoize[O any](
	fn func(...any) O,
	cfg []pure.Config,
) func(...any) O {
	table := pure.NewTable[O](cfg...)
	return func(args ...any) O {
		v, _ := table.Do(args, func() (O, error) {
			return fn(args...), nil
		})
		return v
	}
}

// at returns args[i] as I. A nil interface argument yields I's zero value.
func at[I any](args []any, i int) I {
	v, _ := args[i].(I)
	return v
}
