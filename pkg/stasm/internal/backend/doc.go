// Package backend hosts the thin cgo layer that links the Go API to the
// native Stasm library. The real implementation lives behind build tags so
// that the rest of the repository can compile without cgo.
//
// This is the only package in the module that imports "C". Every function
// copies or borrows Go memory for the duration of one native call; the one
// exception is the pixel copy of the most recently opened image, which the
// native library keeps referring to until the next open.
//
// The native library is NOT thread-safe and keeps process-wide state.
// Callers must serialise access.
package backend
