// Package keylock hands out per-key mutexes backed by moby/locker.
package keylock

import (
	"sync"

	"github.com/moby/locker"
)

// Map holds one lock per key. locker drops a key once nobody holds or
// waits on it.
type Map struct {
	l *locker.Locker
}

func New() *Map {
	return &Map{l: locker.New()}
}

// Lock blocks until key is free and returns the matching unlock func.
// The returned func is safe to call more than once.
func (m *Map) Lock(key string) func() {
	m.l.Lock(key)

	var once sync.Once
	return func() {
		once.Do(func() { _ = m.l.Unlock(key) })
	}
}
