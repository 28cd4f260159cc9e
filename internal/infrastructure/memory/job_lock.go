package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/kardex-farmacia/internal/domain"
)

// JobLock candado de procesos batch dentro de un solo proceso. Con varias réplicas
// se usa la versión de Redis.
type JobLock struct {
	mu   sync.Mutex
	held map[string]time.Time
	now  func() time.Time
}

// NewJobLock crea el candado.
func NewJobLock() *JobLock {
	return &JobLock{held: make(map[string]time.Time), now: time.Now}
}

// Acquire toma el candado name por ttl; si ya está tomado devuelve ErrJobInProgress.
func (l *JobLock) Acquire(ctx context.Context, name string, ttl time.Duration) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if exp, ok := l.held[name]; ok && l.now().Before(exp) {
		return nil, fmt.Errorf("%w: %s", domain.ErrJobInProgress, name)
	}
	exp := l.now().Add(ttl)
	l.held[name] = exp
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.held[name].Equal(exp) {
			delete(l.held, name)
		}
	}, nil
}
