package mongo

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Kaua1102bit/avaliacao-saep/internal/domain"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/entity"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/inventory"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos sobre la colección "products".
type ProductRepo struct {
	c *mongo.Collection
}

// activeFilter: archived_at ausente o null.
func activeFilter() bson.M { return bson.M{"archived_at": nil} }

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	if _, err := r.c.InsertOne(ctx, toProductDoc(p)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return wrap("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID (incluidos los archivados).
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var doc productDoc
	if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, wrap("get product", err)
	}
	return doc.entity(), nil
}

// GetByIDs obtiene varios productos con un $in.
func (r *ProductRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := r.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, wrap("get products by ids", err)
	}
	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, wrap("decode products", err)
	}
	for _, d := range docs {
		out[d.ID] = d.entity()
	}
	return out, nil
}

// List filtra por texto (regex sin distinguir mayúsculas) y stock bajo, ordenado por nombre.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	filter := activeFilter()
	if s := strings.TrimSpace(f.Search); s != "" {
		rx := bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
		filter["$or"] = bson.A{bson.M{"name": rx}, bson.M{"description": rx}, bson.M{"category": rx}}
	}
	if f.LowStockOnly {
		filter["$expr"] = bson.M{"$lte": bson.A{"$current_stock", "$min_stock"}}
	}

	total, err := r.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, wrap("count products", err)
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}
	if f.Offset > 0 {
		opts.SetSkip(int64(f.Offset))
	}
	cur, err := r.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, wrap("list products", err)
	}
	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, wrap("decode products", err)
	}
	list := make([]*entity.Product, 0, len(docs))
	for _, d := range docs {
		list = append(list, d.entity())
	}
	return list, int(total), nil
}

// Update actualiza los campos de catálogo sin tocar current_stock.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	doc := toProductDoc(p)
	filter := activeFilter()
	filter["_id"] = p.ID
	res, err := r.c.UpdateOne(ctx, filter, bson.M{"$set": bson.M{
		"name":        doc.Name,
		"description": doc.Description,
		"category":    doc.Category,
		"size":        doc.Size,
		"weight":      doc.Weight,
		"material":    doc.Material,
		"min_stock":   doc.MinStock,
		"price":       doc.Price,
		"updated_at":  doc.UpdatedAt,
	}})
	if err != nil {
		return wrap("update product", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Archive da de baja el producto.
func (r *ProductRepo) Archive(ctx context.Context, id string) error {
	now := time.Now().UTC()
	filter := activeFilter()
	filter["_id"] = id
	res, err := r.c.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"archived_at": now, "updated_at": now}})
	if err != nil {
		return wrap("archive product", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustStock aplica $inc condicionado en una única operación atómica sobre el documento:
// una salida exige current_stock >= -delta y una entrada current_stock <= entity.MaxStock-delta.
func (r *ProductRepo) AdjustStock(ctx context.Context, id string, delta int) (*entity.Product, error) {
	if delta > entity.MaxStock {
		return nil, inventory.ValidateQuantity(delta)
	}
	if delta < -entity.MaxStock {
		return nil, domain.ErrInsufficientStock
	}
	filter := activeFilter()
	filter["_id"] = id
	if delta < 0 {
		filter["current_stock"] = bson.M{"$gte": -delta}
	} else {
		filter["current_stock"] = bson.M{"$lte": entity.MaxStock - delta}
	}
	update := bson.M{
		"$inc": bson.M{"current_stock": delta},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	var doc productDoc
	err := r.c.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err == nil {
		return doc.entity(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, wrap("adjust stock", err)
	}

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.IsArchived() {
		return nil, domain.ErrNotFound
	}
	if inventory.ExceedsMaxStock(current.CurrentStock, delta) {
		return nil, inventory.StockOverflowError(current.CurrentStock)
	}
	return nil, domain.ErrInsufficientStock
}

// Count cuenta productos activos.
func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	n, err := r.c.CountDocuments(ctx, activeFilter())
	if err != nil {
		return 0, wrap("count products", err)
	}
	return int(n), nil
}
