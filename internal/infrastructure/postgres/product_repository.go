package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Kaua1102bit/avaliacao-saep/internal/domain"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/entity"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/inventory"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, description, category, size, weight, material,
	current_stock, min_stock, price, created_at, updated_at, archived_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Category, &p.Size, &p.Weight, &p.Material,
		&p.CurrentStock, &p.MinStock, &p.Price, &p.CreatedAt, &p.UpdatedAt, &p.ArchivedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Category, p.Size, p.Weight, p.Material,
		p.CurrentStock, p.MinStock, p.Price, p.CreatedAt, p.UpdatedAt, p.ArchivedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrap("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID (incluidos los archivados).
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, wrap("get product", err)
	}
	return p, nil
}

// GetByIDs obtiene varios productos en una sola consulta.
func (r *ProductRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, wrap("get products by ids", err)
	}
	defer rows.Close()
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("iterate products", err)
	}
	return out, nil
}

// List filtra productos activos por texto libre (ILIKE) y stock bajo, ordenados por nombre.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	where := []string{"archived_at IS NULL"}
	args := []any{}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, likePattern(s))
		n := len(args)
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d OR category ILIKE $%d)", n, n, n))
	}
	if f.LowStockOnly {
		where = append(where, "current_stock <= min_stock")
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, wrap("count products", err)
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE ` + cond + ` ORDER BY name, id`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, wrap("list products", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrap("iterate products", err)
	}
	return list, total, nil
}

// Update actualiza los campos de catálogo. current_stock no se toca (solo vía AdjustStock).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, category = $4, size = $5, weight = $6,
			material = $7, min_stock = $8, price = $9, updated_at = $10
		WHERE id = $1 AND archived_at IS NULL`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Category, p.Size, p.Weight,
		p.Material, p.MinStock, p.Price, p.UpdatedAt,
	)
	if err != nil {
		return wrap("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Archive da de baja el producto conservando su historial.
func (r *ProductRepo) Archive(ctx context.Context, id string) error {
	now := time.Now().UTC()
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET archived_at = $2, updated_at = $2 WHERE id = $1 AND archived_at IS NULL`,
		id, now,
	)
	if err != nil {
		return wrap("archive product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustStock aplica delta con un UPDATE condicionado: el lock de fila serializa escrituras
// concurrentes y el WHERE garantiza que current_stock quede entre 0 y entity.MaxStock.
// La suma se evalúa en bigint para que el guard no desborde la columna INTEGER.
func (r *ProductRepo) AdjustStock(ctx context.Context, id string, delta int) (*entity.Product, error) {
	if delta > entity.MaxStock {
		return nil, inventory.ValidateQuantity(delta)
	}
	if delta < -entity.MaxStock {
		return nil, domain.ErrInsufficientStock
	}
	query := `
		UPDATE products SET current_stock = current_stock + $2::integer, updated_at = now()
		WHERE id = $1 AND archived_at IS NULL
		  AND current_stock::bigint + $2::bigint BETWEEN 0 AND $3::bigint
		RETURNING ` + productColumns
	p, err := scanProduct(r.q.QueryRow(ctx, query, id, delta, entity.MaxStock))
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, wrap("adjust stock", err)
	}

	// Sin filas: distinguir producto inexistente/archivado de guard rechazado.
	var (
		archived *time.Time
		current  int
	)
	err = r.q.QueryRow(ctx, `SELECT archived_at, current_stock FROM products WHERE id = $1`, id).
		Scan(&archived, &current)
	if errors.Is(err, pgx.ErrNoRows) || (err == nil && archived != nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, wrap("adjust stock", err)
	}
	if inventory.ExceedsMaxStock(current, delta) {
		return nil, inventory.StockOverflowError(current)
	}
	return nil, domain.ErrInsufficientStock
}

// Count cuenta productos activos.
func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE archived_at IS NULL`).Scan(&n); err != nil {
		return 0, wrap("count products", err)
	}
	return n, nil
}
