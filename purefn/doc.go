// Package purefn provides typed memoizers for functions of fixed arity.
//
// Memoize is not just a utility to add caching.
// Memoize is a tool that *forces the developer to ask*:
//
//	→ "Is this function really pure?"
//	→ "Can this computation be treated as a lazy table?"
//
// The Memoize family wraps a function in a pure.Table keyed by the full,
// ordered, type-tagged argument list. Results are kept for the lifetime of
// the returned function; nothing is ever evicted.
//
// Features:
//   - MemoizeI0O1 to MemoizeI4O2: typed, generic memoizers for common arities.
//   - MemoizeVariadic and MemoizeOn for variadic and receiver-bound functions.
//   - CallAs to read typed results out of a reflective pure.Func.
//   - A non-nil error in the second output is never cached.
//
// WARNING: Do not memoize impure functions (e.g., those depending on time, I/O, etc).
// Their first result becomes permanent.
package purefn
