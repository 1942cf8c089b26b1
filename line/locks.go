package line

import "sync"

// lineLocks hands out one RWMutex per line id. Entries are never dropped,
// so every goroutine working on a line always contends on the same mutex.
type lineLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

func newLineLocks() *lineLocks {
	return &lineLocks{locks: map[string]*sync.RWMutex{}}
}

func (l *lineLocks) get(id string) *sync.RWMutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.RWMutex{}
		l.locks[id] = m
	}
	return m
}
