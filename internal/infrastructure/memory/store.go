// Package memory implementa los puertos de persistencia en memoria del proceso.
// Pensado para desarrollo y tests: las transacciones toman un lock global y restauran
// un snapshot si la función falla.
package memory

import (
	"context"
	"sync"

	"github.com/Kaua1102bit/avaliacao-saep/internal/application/inventory"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/entity"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// Store contiene las tres colecciones lógicas.
type Store struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	users     map[string]*entity.User
	movements []*entity.StockMovement
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		products: make(map[string]*entity.Product),
		users:    make(map[string]*entity.User),
	}
}

// Products devuelve el repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepository { return &ProductRepository{s: s} }

// Movements devuelve el repositorio del libro fuera de transacción.
func (s *Store) Movements() *StockMovementRepository { return &StockMovementRepository{s: s} }

// Users devuelve el repositorio de usuarios fuera de transacción.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Run ejecuta fn con el lock global tomado. Si fn devuelve error se restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(
	ctx context.Context,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	err := fn(ctx,
		&ProductRepository{s: s, inTx: true},
		&StockMovementRepository{s: s, inTx: true},
	)
	if err != nil {
		s.restore(snap)
	}
	return err
}

type snapshot struct {
	products  map[string]*entity.Product
	users     map[string]*entity.User
	movements int
}

// Los valores almacenados nunca se mutan en sitio: basta copiar los mapas.
func (s *Store) snapshot() snapshot {
	products := make(map[string]*entity.Product, len(s.products))
	for k, v := range s.products {
		products[k] = v
	}
	users := make(map[string]*entity.User, len(s.users))
	for k, v := range s.users {
		users[k] = v
	}
	return snapshot{products: products, users: users, movements: len(s.movements)}
}

func (s *Store) restore(snap snapshot) {
	s.products = snap.products
	s.users = snap.users
	s.movements = s.movements[:snap.movements]
}

// locker toma el lock salvo que el repositorio ya opere dentro de Run.
type locker struct {
	s    *Store
	inTx bool
}

func (l locker) lock() func() {
	if l.inTx {
		return func() {}
	}
	l.s.mu.Lock()
	return l.s.mu.Unlock
}
