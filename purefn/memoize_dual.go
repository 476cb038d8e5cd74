package purefn

import "github.com/on-the-ground/memoize_ive_go/pure"

func MemoizeI0O2[O1, O2 any](
	fn func() (O1, O2),
	cfg ...pure.Config,
) func() (O1, O2) {
	memoized := memoizeDualOutput(
		func(...any) (O1, O2) {
			return fn()
		},
		cfg,
	)
	return func() (O1, O2) {
		return memoized()
	}
}

func MemoizeI1O2[I1, O1, O2 any](
	fn func(I1) (O1, O2),
	cfg ...pure.Config,
) func(I1) (O1, O2) {
	memoized := memoizeDualOutput(
		func(args ...any) (O1, O2) {
			return fn(at[I1](args, 0))
		},
		cfg,
	)
	return func(i1 I1) (O1, O2) {
		return memoized(i1)
	}
}

func MemoizeI2O2[I1, I2, O1, O2 any](
	fn func(I1, I2) (O1, O2),
	cfg ...pure.Config,
) func(I1, I2) (O1, O2) {
	memoized := memoizeDualOutput(
		func(args ...any) (O1, O2) {
			return fn(at[I1](args, 0), at[I2](args, 1))
		},
		cfg,
	)
	return func(i1 I1, i2 I2) (O1, O2) {
		return memoized(i1, i2)
	}
}

func MemoizeI3O2[I1, I2, I3, O1, O2 any](
	fn func(I1, I2, I3) (O1, O2),
	cfg ...pure.Config,
) func(I1, I2, I3) (O1, O2) {
	memoized := memoizeDualOutput(
		func(args ...any) (O1, O2) {
			return fn(at[I1](args, 0), at[I2](args, 1), at[I3](args, 2))
		},
		cfg,
	)
	return func(i1 I1, i2 I2, i3 I3) (O1, O2) {
		return memoized(i1, i2, i3)
	}
}

func MemoizeI4O2[I1, I2, I3, I4, O1, O2 any](
	fn func(I1, I2, I3, I4) (O1, O2),
	cfg ...pure.Config,
) func(I1, I2, I3, I4) (O1, O2) {
	memoized := memoizeDualOutput(
		func(args ...any) (O1, O2) {
			return fn(at[I1](args, 0), at[I2](args, 1), at[I3](args, 2), at[I4](args, 3))
		},
		cfg,
	)
	return func(i1 I1, i2 I2, i3 I3, i4 I4) (O1, O2) {
		return memoized(i1, i2, i3, i4)
	}
}

type result[O1 any, O2 any] struct {
	O1 O1
	O2 O2
}

// memoizeDualOutput treats a non-nil error in the second output as a fault:
// the pair is returned but not stored.
func memoizeDualOutput[O1, O2 any](
	fn func(...any) (O1, O2),
	cfg []pure.Config,
) func(...any) (O1, O2) {
	table := pure.NewTable[result[O1, O2]](cfg...)
	return func(args ...any) (O1, O2) {
		res, _ := table.Do(args, func() (result[O1, O2], error) {
			v1, v2 := fn(args...)
			err, _ := any(v2).(error)
			return result[O1, O2]{O1: v1, O2: v2}, err
		})
		return res.O1, res.O2
	}
}
