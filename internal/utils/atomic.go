package utils

import "sync/atomic"

// AtomicBool is a flag safe to flip from another goroutine.
type AtomicBool struct{ v atomic.Bool }

func (a *AtomicBool) Load() bool   { return a.v.Load() }
func (a *AtomicBool) Store(b bool) { a.v.Store(b) }
