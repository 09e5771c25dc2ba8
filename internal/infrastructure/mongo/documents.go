package mongo

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/entity"
)

type productDoc struct {
	ID           string               `bson:"_id"`
	Name         string               `bson:"name"`
	Description  string               `bson:"description"`
	Category     string               `bson:"category"`
	Size         string               `bson:"size"`
	Weight       primitive.Decimal128 `bson:"weight"`
	Material     string               `bson:"material"`
	CurrentStock int                  `bson:"current_stock"`
	MinStock     int                  `bson:"min_stock"`
	Price        primitive.Decimal128 `bson:"price"`
	CreatedAt    time.Time            `bson:"created_at"`
	UpdatedAt    time.Time            `bson:"updated_at"`
	ArchivedAt   *time.Time           `bson:"archived_at"`
}

type movementDoc struct {
	ID            string    `bson:"_id"`
	ProductID     string    `bson:"product_id"`
	Type          string    `bson:"type"`
	Quantity      int       `bson:"quantity"`
	Date          time.Time `bson:"date"`
	ResponsibleID string    `bson:"responsible_id"`
	Notes         string    `bson:"notes"`
	CreatedAt     time.Time `bson:"created_at"`
}

type userDoc struct {
	ID            string    `bson:"_id"`
	Username      string    `bson:"username"`
	UsernameLower string    `bson:"username_lower"`
	PasswordHash  string    `bson:"password_hash"`
	Name          string    `bson:"name"`
	Role          string    `bson:"role"`
	CreatedAt     time.Time `bson:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

func toDecimal128(d decimal.Decimal) primitive.Decimal128 {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.NewDecimal128(0, 0)
	}
	return v
}

func fromDecimal128(v primitive.Decimal128) decimal.Decimal {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

func toProductDoc(p *entity.Product) productDoc {
	return productDoc{
		ID: p.ID, Name: p.Name, Description: p.Description, Category: p.Category,
		Size: p.Size, Weight: toDecimal128(p.Weight), Material: p.Material,
		CurrentStock: p.CurrentStock, MinStock: p.MinStock, Price: toDecimal128(p.Price),
		CreatedAt: p.CreatedAt.UTC(), UpdatedAt: p.UpdatedAt.UTC(), ArchivedAt: p.ArchivedAt,
	}
}

func (d productDoc) entity() *entity.Product {
	p := &entity.Product{
		ID: d.ID, Name: d.Name, Description: d.Description, Category: d.Category,
		Size: d.Size, Weight: fromDecimal128(d.Weight), Material: d.Material,
		CurrentStock: d.CurrentStock, MinStock: d.MinStock, Price: fromDecimal128(d.Price),
		CreatedAt: d.CreatedAt.UTC(), UpdatedAt: d.UpdatedAt.UTC(),
	}
	if d.ArchivedAt != nil {
		t := d.ArchivedAt.UTC()
		p.ArchivedAt = &t
	}
	return p
}

func toMovementDoc(m *entity.StockMovement) movementDoc {
	return movementDoc{
		ID: m.ID, ProductID: m.ProductID, Type: m.Type, Quantity: m.Quantity,
		Date: m.Date.UTC(), ResponsibleID: m.ResponsibleID, Notes: m.Notes, CreatedAt: m.CreatedAt.UTC(),
	}
}

func (d movementDoc) entity() *entity.StockMovement {
	return &entity.StockMovement{
		ID: d.ID, ProductID: d.ProductID, Type: d.Type, Quantity: d.Quantity,
		Date: d.Date.UTC(), ResponsibleID: d.ResponsibleID, Notes: d.Notes, CreatedAt: d.CreatedAt.UTC(),
	}
}

func toUserDoc(u *entity.User) userDoc {
	return userDoc{
		ID: u.ID, Username: u.Username, UsernameLower: strings.ToLower(u.Username),
		PasswordHash: u.PasswordHash, Name: u.Name, Role: u.Role,
		CreatedAt: u.CreatedAt.UTC(), UpdatedAt: u.UpdatedAt.UTC(),
	}
}

func (d userDoc) entity() *entity.User {
	return &entity.User{
		ID: d.ID, Username: d.Username, PasswordHash: d.PasswordHash, Name: d.Name, Role: d.Role,
		CreatedAt: d.CreatedAt.UTC(), UpdatedAt: d.UpdatedAt.UTC(),
	}
}
