// Package memory implementa los repositorios y la sección crítica del kardex en memoria.
// Se usa en desarrollo (LEDGER_STORAGE=memory) y en pruebas.
package memory

import (
	"context"
	"iter"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
	"github.com/jhoicas/kardex-farmacia/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementStore)(nil)

// MovementStore kardex en memoria: un slice por producto ordenado por (OccurredAt, ID).
type MovementStore struct {
	mu        sync.RWMutex
	byProduct map[string][]entity.Movement
	byRef     map[string][]int64
	index     map[int64]string // id → producto
	nextID    int64
}

// NewMovementStore crea el almacén vacío.
func NewMovementStore() *MovementStore {
	return &MovementStore{
		byProduct: make(map[string][]entity.Movement),
		byRef:     make(map[string][]int64),
		index:     make(map[int64]string),
	}
}

// Append asigna ID y lo inserta en orden. Fuera de un TxRunner no valida saldo.
func (s *MovementStore) Append(ctx context.Context, m *entity.Movement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendLocked(m)
	return nil
}

func (s *MovementStore) appendLocked(m *entity.Movement) {
	s.nextID++
	m.ID = s.nextID
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	ms := s.byProduct[m.ProductID]
	// Búsqueda binaria del punto de inserción; el ID nuevo es el mayor, así que va después
	// de todos los del mismo instante.
	i := sort.Search(len(ms), func(i int) bool {
		return ms[i].OccurredAt.After(m.OccurredAt)
	})
	ms = append(ms, entity.Movement{})
	copy(ms[i+1:], ms[i:])
	ms[i] = *m
	s.byProduct[m.ProductID] = ms

	if m.Reference != "" {
		s.byRef[m.Reference] = append(s.byRef[m.Reference], m.ID)
	}
	s.index[m.ID] = m.ProductID
}

// ListByProduct cada recorrido toma una copia de la ventana bajo el candado de lectura.
func (s *MovementStore) ListByProduct(ctx context.Context, productID string, from, to *time.Time) iter.Seq2[entity.Movement, error] {
	return func(yield func(entity.Movement, error) bool) {
		if err := ctx.Err(); err != nil {
			yield(entity.Movement{}, err)
			return
		}
		for _, m := range s.window(productID, from, to) {
			if !yield(m, nil) {
				return
			}
		}
	}
}

func (s *MovementStore) window(productID string, from, to *time.Time) []entity.Movement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ms := s.byProduct[productID]
	lo := 0
	if from != nil {
		lo = sort.Search(len(ms), func(i int) bool { return !ms[i].OccurredAt.Before(*from) })
	}
	hi := len(ms)
	if to != nil {
		hi = sort.Search(len(ms), func(i int) bool { return ms[i].OccurredAt.After(*to) })
	}
	if lo >= hi {
		return nil
	}
	out := make([]entity.Movement, hi-lo)
	copy(out, ms[lo:hi])
	return out
}

// ListByReference movimientos con la referencia, en orden de ID.
func (s *MovementStore) ListByReference(ctx context.Context, reference string) ([]entity.Movement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.byRef[reference]
	out := make([]entity.Movement, 0, len(ids))
	for _, id := range ids {
		for _, m := range s.byProduct[s.index[id]] {
			if m.ID == id {
				out = append(out, m)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
