package gamestore

import (
	"sync"

	"github.com/lnpoker/lnpoker/internal/model"
)

// keyedMutex serializes seat mutations per game id so that
// reserve/commit/release are linearizable with respect to each other
// for the same game. Locks are retained for the life of the process;
// the population of games is small relative to memory.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[model.GameID]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{
		locks: make(map[model.GameID]*sync.Mutex),
	}
}

// Lock acquires the mutex for the game id and returns its unlock func
func (k *keyedMutex) Lock(id model.GameID) func() {
	k.mu.Lock()
	l, ok := k.locks[id]
	if !ok {
		l = &sync.Mutex{}
		k.locks[id] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}
