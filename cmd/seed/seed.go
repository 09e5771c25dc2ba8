package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/Kaua1102bit/avaliacao-saep/internal/application/dto"
	"github.com/Kaua1102bit/avaliacao-saep/internal/application/usecase"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/entity"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/repository"
	"github.com/Kaua1102bit/avaliacao-saep/internal/infrastructure/storage"
	"github.com/Kaua1102bit/avaliacao-saep/pkg/logger"
)

const (
	adminUsername = "admin"
	adminPassword = "admin123"
)

var sampleProducts = []dto.CreateProductRequest{
	{
		Name:         "Parafusadeira Elétrica Sem Fio",
		Description:  "Parafusadeira 18V com bateria de longa duração e torque ajustável",
		Category:     "Ferramentas Elétricas",
		Size:         "Compacta",
		Weight:       decimal.RequireFromString("1.2"),
		Material:     "Plástico reforçado e aço",
		CurrentStock: 60,
		MinStock:     10,
		Price:        decimal.RequireFromString("299.90"),
	},
	{
		Name:         "Conjunto de Brocas Aço Rápido (10 peças)",
		Description:  "Kit de brocas HSS para metal e madeira, estojo resistente",
		Category:     "Acessórios de Corte",
		Size:         "Conjunto",
		Weight:       decimal.RequireFromString("0.25"),
		Material:     "Aço rápido (HSS)",
		CurrentStock: 150,
		MinStock:     30,
		Price:        decimal.RequireFromString("39.50"),
	},
	{
		Name:         "Kit Chaves Allen Torx (15 peças)",
		Description:  "Jogo de chaves hexagonais e torx em estojo magnético",
		Category:     "Ferramentas Manuais",
		Size:         "15 peças",
		Weight:       decimal.RequireFromString("0.4"),
		Material:     "Aço cromado",
		CurrentStock: 120,
		MinStock:     20,
		Price:        decimal.RequireFromString("49.90"),
	},
	{
		Name:         "Lâmina Serra Tico-Tico 5 unidades",
		Description:  "Lâminas para serra tico-tico, variados dentes para madeira e metal",
		Category:     "Acessórios de Corte",
		Size:         "Pack 5",
		Weight:       decimal.RequireFromString("0.12"),
		Material:     "Aço temperado",
		CurrentStock: 200,
		MinStock:     40,
		Price:        decimal.RequireFromString("29.90"),
	},
	{
		Name:         "Luva de Proteção Anticorte Nível 3",
		Description:  "Luva resistente a cortes, ideal para manuseio de chapas e ferramentas",
		Category:     "Equipamento de Proteção",
		Size:         "M",
		Weight:       decimal.RequireFromString("0.08"),
		Material:     "Fibra HPPE com revestimento nitrílico",
		CurrentStock: 250,
		MinStock:     50,
		Price:        decimal.RequireFromString("19.90"),
	},
	{
		Name:         "Óculos de Proteção Antiembaçante",
		Description:  "Óculos de segurança com lente antiembaçante e proteção lateral",
		Category:     "Equipamento de Proteção",
		Size:         "Único",
		Weight:       decimal.RequireFromString("0.06"),
		Material:     "Policarbonato",
		CurrentStock: 180,
		MinStock:     30,
		Price:        decimal.RequireFromString("24.50"),
	},
}

type seeder struct {
	users       repository.UserRepository
	productRepo repository.ProductRepository
	products    *usecase.ProductUseCase
	log         *logger.Logger
}

func newSeeder(st *storage.Stores, log *logger.Logger) *seeder {
	return &seeder{
		users:       st.Users,
		productRepo: st.Products,
		products:    usecase.NewProductUseCase(st.Products, st.Tx),
		log:         log,
	}
}

func (s *seeder) run(ctx context.Context) error {
	admin, err := s.ensureAdmin(ctx)
	if err != nil {
		return err
	}
	for _, p := range sampleProducts {
		exists, err := s.productExists(ctx, p.Name)
		if err != nil {
			return err
		}
		if exists {
			s.log.Debug().Str("product", p.Name).Msg("producto ya existe")
			continue
		}
		created, err := s.products.Create(ctx, admin.ID, p)
		if err != nil {
			return fmt.Errorf("crear producto %q: %w", p.Name, err)
		}
		s.log.Info().Str("product", created.Name).Int("stock", created.CurrentStock).Msg("producto creado")
	}
	return nil
}

func (s *seeder) ensureAdmin(ctx context.Context) (*entity.User, error) {
	u, err := s.users.GetByUsername(ctx, adminUsername)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("buscar admin: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now().UTC()
	u = &entity.User{
		ID:           uuid.New().String(),
		Username:     adminUsername,
		PasswordHash: string(hash),
		Name:         "Administrator",
		Role:         entity.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("crear admin: %w", err)
	}
	s.log.Info().Str("username", adminUsername).Msg("usuario admin creado")
	return u, nil
}

func (s *seeder) productExists(ctx context.Context, name string) (bool, error) {
	list, _, err := s.productRepo.List(ctx, repository.ProductFilter{Search: name, Limit: 50})
	if err != nil {
		return false, fmt.Errorf("buscar producto: %w", err)
	}
	for _, p := range list {
		if p.Name == name {
			return true, nil
		}
	}
	return false, nil
}
