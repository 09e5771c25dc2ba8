package mongo

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/entity"
)

func TestProductDoc_DecimalesSinPerdida(t *testing.T) {
	archived := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	p := &entity.Product{
		ID: "p1", Name: "Parafusadeira", Weight: decimal.RequireFromString("1.2"),
		Price: decimal.RequireFromString("299.90"), CurrentStock: 60, MinStock: 10, ArchivedAt: &archived,
	}
	got := toProductDoc(p).entity()
	assert.True(t, got.Weight.Equal(p.Weight))
	assert.True(t, got.Price.Equal(p.Price))
	assert.Equal(t, 60, got.CurrentStock)
	assert.Equal(t, archived, *got.ArchivedAt)
}

func TestUserDoc_UsernameLower(t *testing.T) {
	d := toUserDoc(&entity.User{ID: "u1", Username: "Maria"})
	assert.Equal(t, "maria", d.UsernameLower)
	assert.Equal(t, "Maria", d.entity().Username)
}
