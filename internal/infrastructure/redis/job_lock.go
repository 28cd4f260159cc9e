package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/kardex-farmacia/internal/domain"
	"github.com/jhoicas/kardex-farmacia/pkg/logger"
)

const lockPrefix = "kardex:job:"

// JobLock candado distribuido para procesos batch (reclasificación de presentaciones).
type JobLock struct {
	locker *redislock.Client
	log    *logger.Logger
}

// NewJobLock construye el candado sobre el cliente dado.
func NewJobLock(rdb goredis.UniversalClient, log *logger.Logger) *JobLock {
	if log == nil {
		log = logger.Nop()
	}
	return &JobLock{locker: redislock.New(rdb), log: log}
}

// Acquire toma el candado name por ttl sin reintentar; si otro proceso lo tiene devuelve ErrJobInProgress.
func (l *JobLock) Acquire(ctx context.Context, name string, ttl time.Duration) (func(), error) {
	lock, err := l.locker.Obtain(ctx, lockPrefix+name, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: %s", domain.ErrJobInProgress, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: obtener candado %s: %v", domain.ErrStorageUnavailable, name, err)
	}
	return func() {
		// El contexto de la petición puede estar cancelado al liberar.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.log.Warn().Err(err).Str("job", name).Msg("no se pudo liberar el candado")
		}
	}, nil
}
