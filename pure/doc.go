// Package pure memoizes functions by the full, ordered, type-tagged list of
// their arguments.
//
// Wrap turns any func value into a *Func whose calls are answered from an
// in-memory table once a given argument list has been seen:
//
//	abs := pure.Wrap(func(xs ...int) int { ... })
//	abs.Call(3, 4) // invokes the target
//	abs.Call(4, 3) // invokes the target: order is part of the key
//	abs.Call(3, 4) // answered from the table
//
// Keys are derived by a per-table Keyer, which tags every argument with its
// dynamic type, so 1 and "1" never share an entry. Pointers, channels and funcs
// are keyed by identity; the Keyer keeps them reachable for the table's lifetime. Results are stored as returned,
// including nil, and a stored nil is distinct from an absent entry.
//
// A call whose target returns a non-nil trailing error, or panics, is a fault:
// the error or panic reaches the caller unchanged and nothing is stored.
//
// Tables never evict. Each Wrap or NewTable call owns a fresh table.
//
// WARNING: a target that calls its own memoized wrapper with the same
// arguments deadlocks, since the nested call waits on the in-flight one.
package pure
