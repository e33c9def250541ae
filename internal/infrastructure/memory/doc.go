// Package memory holds the process-local implementations of the core
// repositories, the role indices and the identity store.
//
// Every type guards its state with its own lock, so single operations are
// atomic. Records are copied on the way in and on the way out; callers never
// share a pointer with the store.
package memory
