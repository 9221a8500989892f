package utils

import "sync"

// KeyMutex hands out one mutex per string key. Progression and document
// date edits are read-modify-write against a per-owner row, so all writers
// for the same owner must be serialized.
type KeyMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyMutex() *KeyMutex {
	return &KeyMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *KeyMutex) Lock(key string) {
	k.mutexFor(key).Lock()
}

func (k *KeyMutex) Unlock(key string) {
	k.mutexFor(key).Unlock()
}

func (k *KeyMutex) mutexFor(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()

	m, ok := k.locks[key]
	if !ok {
		m = new(sync.Mutex)
		k.locks[key] = m
	}
	return m
}
