package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Kaua1102bit/avaliacao-saep/internal/domain"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/entity"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos sobre la colección "stock_movements".
type StockMovementRepo struct {
	c *mongo.Collection
}

// Create agrega un asiento al libro.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if _, err := r.c.InsertOne(ctx, toMovementDoc(m)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return wrap("insert stock movement", err)
	}
	return nil
}

// List filtra y ordena por date DESC, created_at DESC, _id DESC.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	filter := bson.M{}
	if f.ProductID != "" {
		filter["product_id"] = f.ProductID
	}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	if f.From != nil || f.To != nil {
		rng := bson.M{}
		if f.From != nil {
			rng["$gte"] = f.From.UTC()
		}
		if f.To != nil {
			rng["$lte"] = f.To.UTC()
		}
		filter["date"] = rng
	}

	total, err := r.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, wrap("count stock movements", err)
	}
	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: -1},
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}
	if f.Offset > 0 {
		opts.SetSkip(int64(f.Offset))
	}
	cur, err := r.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, wrap("list stock movements", err)
	}
	var docs []movementDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, wrap("decode stock movements", err)
	}
	list := make([]*entity.StockMovement, 0, len(docs))
	for _, d := range docs {
		list = append(list, d.entity())
	}
	return list, int(total), nil
}

// SumByProduct entradas menos salidas del producto ($group con $cond).
func (r *StockMovementRepo) SumByProduct(ctx context.Context, productID string) (int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"product_id": productID}}},
		{{Key: "$group", Value: bson.M{
			"_id": nil,
			"balance": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$type", entity.MovementTypeExit}},
				bson.M{"$multiply": bson.A{"$quantity", -1}},
				"$quantity",
			}}},
		}}},
	}
	cur, err := r.c.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, wrap("sum stock movements", err)
	}
	var out []struct {
		Balance int `bson:"balance"`
	}
	if err := cur.All(ctx, &out); err != nil {
		return 0, wrap("decode balance", err)
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].Balance, nil
}

// Count total de asientos del libro.
func (r *StockMovementRepo) Count(ctx context.Context) (int, error) {
	n, err := r.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, wrap("count stock movements", err)
	}
	return int(n), nil
}
