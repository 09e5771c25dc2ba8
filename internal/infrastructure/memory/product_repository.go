package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Kaua1102bit/avaliacao-saep/internal/domain"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/entity"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/inventory"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository implementación en memoria de repository.ProductRepository.
type ProductRepository struct {
	s    *Store
	inTx bool
}

func (r *ProductRepository) lock() func() { return locker{s: r.s, inTx: r.inTx}.lock() }

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	if p.ArchivedAt != nil {
		t := *p.ArchivedAt
		c.ArchivedAt = &t
	}
	return &c
}

// Create persiste un nuevo producto.
func (r *ProductRepository) Create(_ context.Context, p *entity.Product) error {
	defer r.lock()()
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.products[p.ID] = cloneProduct(p)
	return nil
}

// GetByID obtiene un producto por ID, incluidos los archivados.
func (r *ProductRepository) GetByID(_ context.Context, id string) (*entity.Product, error) {
	defer r.lock()()
	p, ok := r.s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneProduct(p), nil
}

// GetByIDs obtiene varios productos; los IDs inexistentes se omiten.
func (r *ProductRepository) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Product, error) {
	defer r.lock()()
	out := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			out[id] = cloneProduct(p)
		}
	}
	return out, nil
}

// List filtra por texto (sin distinguir acentos) y stock bajo, ordenado por nombre.
func (r *ProductRepository) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	defer r.lock()()
	needle := fold(strings.TrimSpace(f.Search))
	matched := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if p.IsArchived() {
			continue
		}
		if f.LowStockOnly && !p.IsLowStock() {
			continue
		}
		if needle != "" &&
			!strings.Contains(fold(p.Name), needle) &&
			!strings.Contains(fold(p.Description), needle) &&
			!strings.Contains(fold(p.Category), needle) {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Name != matched[j].Name {
			return matched[i].Name < matched[j].Name
		}
		return matched[i].ID < matched[j].ID
	})

	total := len(matched)
	page := paginate(len(matched), f.Limit, f.Offset)
	out := make([]*entity.Product, 0, page.end-page.start)
	for _, p := range matched[page.start:page.end] {
		out = append(out, cloneProduct(p))
	}
	return out, total, nil
}

// Update persiste los campos de catálogo sin tocar current_stock.
func (r *ProductRepository) Update(_ context.Context, p *entity.Product) error {
	defer r.lock()()
	cur, ok := r.s.products[p.ID]
	if !ok || cur.IsArchived() {
		return domain.ErrNotFound
	}
	next := cloneProduct(p)
	next.CurrentStock = cur.CurrentStock
	next.CreatedAt = cur.CreatedAt
	next.ArchivedAt = nil
	r.s.products[p.ID] = next
	return nil
}

// Archive marca el producto como dado de baja.
func (r *ProductRepository) Archive(_ context.Context, id string) error {
	defer r.lock()()
	cur, ok := r.s.products[id]
	if !ok || cur.IsArchived() {
		return domain.ErrNotFound
	}
	next := cloneProduct(cur)
	now := time.Now().UTC()
	next.ArchivedAt = &now
	next.UpdatedAt = now
	r.s.products[id] = next
	return nil
}

// AdjustStock aplica delta si el resultado queda entre 0 y entity.MaxStock.
func (r *ProductRepository) AdjustStock(_ context.Context, id string, delta int) (*entity.Product, error) {
	defer r.lock()()
	cur, ok := r.s.products[id]
	if !ok || cur.IsArchived() {
		return nil, domain.ErrNotFound
	}
	if delta < 0 && cur.CurrentStock < -delta {
		return nil, domain.ErrInsufficientStock
	}
	if inventory.ExceedsMaxStock(cur.CurrentStock, delta) {
		return nil, inventory.StockOverflowError(cur.CurrentStock)
	}
	next := cloneProduct(cur)
	next.CurrentStock += delta
	next.UpdatedAt = time.Now().UTC()
	r.s.products[id] = next
	return cloneProduct(next), nil
}

// Count cuenta los productos activos.
func (r *ProductRepository) Count(_ context.Context) (int, error) {
	defer r.lock()()
	n := 0
	for _, p := range r.s.products {
		if !p.IsArchived() {
			n++
		}
	}
	return n, nil
}

type bounds struct{ start, end int }

// paginate acota [offset, offset+limit) a n. limit <= 0 = sin límite.
func paginate(n, limit, offset int) bounds {
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	end := n
	if limit > 0 && offset+limit < n {
		end = offset + limit
	}
	return bounds{start: offset, end: end}
}
