// Package mongo implementa los puertos de persistencia sobre MongoDB. Cada colección lógica
// es una colección; las transacciones usan sesiones (requiere replica set).
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/Kaua1102bit/avaliacao-saep/internal/application/inventory"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/repository"
	"github.com/Kaua1102bit/avaliacao-saep/pkg/config"
)

var _ inventory.TxRunner = (*Store)(nil)

// Nombres de colección.
const (
	colUsers     = "users"
	colProducts  = "products"
	colMovements = "stock_movements"
)

// Store agrupa el cliente y las colecciones.
type Store struct {
	client    *mongo.Client
	db        *mongo.Database
	products  *mongo.Collection
	users     *mongo.Collection
	movements *mongo.Collection
}

// Connect abre el cliente y verifica la conexión. Los índices se crean con EnsureIndexes.
func Connect(ctx context.Context, cfg config.MongoConfig) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(10*time.Second))
	if err != nil {
		return nil, fmt.Errorf("conectar mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return newStore(client, cfg.Database), nil
}

func newStore(client *mongo.Client, database string) *Store {
	db := client.Database(database)
	return &Store{
		client:    client,
		db:        db,
		products:  db.Collection(colProducts),
		users:     db.Collection(colUsers),
		movements: db.Collection(colMovements),
	}
}

// EnsureIndexes crea los índices de unicidad y de orden del libro. Idempotente.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if _, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username_lower", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("índice users.username_lower: %w", err)
	}
	if _, err := s.products.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "archived_at", Value: 1}, {Key: "name", Value: 1}},
	}); err != nil {
		return fmt.Errorf("índice products.name: %w", err)
	}
	if _, err := s.movements.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}},
		{Keys: bson.D{{Key: "product_id", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("índices stock_movements: %w", err)
	}
	return nil
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{c: s.products} }

// Movements repositorio del libro fuera de transacción.
func (s *Store) Movements() *StockMovementRepo { return &StockMovementRepo{c: s.movements} }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{c: s.users} }

// Ping verifica la conexión (health check).
func (s *Store) Ping(ctx context.Context) error { return s.client.Ping(ctx, nil) }

// Close cierra el cliente.
func (s *Store) Close(ctx context.Context) error { return s.client.Disconnect(ctx) }

// Run ejecuta fn en una transacción multi-documento. El driver reintenta los errores
// transitorios; si persisten se reportan como domain.ErrConflict. fn debe usar el ctx recibido
// (lleva la sesión) y puede ejecutarse más de una vez.
func (s *Store) Run(ctx context.Context, fn func(
	ctx context.Context,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	sess, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	txOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())
	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc, s.Products(), s.Movements())
	}, txOpts)
	if err != nil {
		if isTransient(err) {
			return fmt.Errorf("transacción: %w", domain.ErrConflict)
		}
		return err
	}
	return nil
}

const (
	labelTransient     = "TransientTransactionError"
	labelUnknownCommit = "UnknownTransactionCommitResult"
)

type labeled interface {
	HasErrorLabel(string) bool
}

func isTransient(err error) bool {
	var le labeled
	if errors.As(err, &le) {
		return le.HasErrorLabel(labelTransient) || le.HasErrorLabel(labelUnknownCommit)
	}
	return false
}

// wrap envuelve errores del driver; los conflictos de escritura se reportan como domain.ErrConflict.
func wrap(op string, err error) error {
	if isTransient(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}
