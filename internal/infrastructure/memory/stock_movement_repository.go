package memory

import (
	"context"
	"sort"

	"github.com/Kaua1102bit/avaliacao-saep/internal/domain"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/entity"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepository)(nil)

// StockMovementRepository libro de movimientos en memoria (solo append).
type StockMovementRepository struct {
	s    *Store
	inTx bool
}

func (r *StockMovementRepository) lock() func() { return locker{s: r.s, inTx: r.inTx}.lock() }

// Create agrega el asiento al libro.
func (r *StockMovementRepository) Create(_ context.Context, m *entity.StockMovement) error {
	defer r.lock()()
	for _, existing := range r.s.movements {
		if existing.ID == m.ID {
			return domain.ErrDuplicate
		}
	}
	c := *m
	r.s.movements = append(r.s.movements, &c)
	return nil
}

// List filtra y ordena por date DESC, created_at DESC, id DESC.
func (r *StockMovementRepository) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	defer r.lock()()
	matched := make([]*entity.StockMovement, 0, len(r.s.movements))
	for _, m := range r.s.movements {
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		if f.From != nil && m.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && m.Date.After(*f.To) {
			continue
		}
		matched = append(matched, m)
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})

	total := len(matched)
	page := paginate(total, f.Limit, f.Offset)
	out := make([]*entity.StockMovement, 0, page.end-page.start)
	for _, m := range matched[page.start:page.end] {
		c := *m
		out = append(out, &c)
	}
	return out, total, nil
}

// SumByProduct entradas menos salidas del producto.
func (r *StockMovementRepository) SumByProduct(_ context.Context, productID string) (int, error) {
	defer r.lock()()
	total := 0
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			total += m.Delta()
		}
	}
	return total, nil
}

// Count total de asientos del libro.
func (r *StockMovementRepository) Count(_ context.Context) (int, error) {
	defer r.lock()()
	return len(r.s.movements), nil
}
