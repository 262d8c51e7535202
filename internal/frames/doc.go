// Package frames persists the ordered frame collection for the active
// editing session in SQLite.
//
// The Store owns the collection invariants: insertion order is animation
// order, positions stay dense across removals, ids never repeat, and remove
// is idempotent. A file lock on the workspace directory guarantees at most
// one live collection at a time. The database is transient storage for one
// session; clearing the collection resets it.
package frames
