package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/Kaua1102bit/avaliacao-saep/internal/application/dto"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/entity"
)

// RecordMovementFromRequest adapta el request HTTP al caso de uso RecordMovement(ctx, MovementInput)
// y devuelve el movimiento con producto y responsable resueltos.
func (uc *MovementUseCase) RecordMovementFromRequest(ctx context.Context, userID string, in dto.RecordMovementRequest) (*dto.RecordMovementResponse, error) {
	date, err := parseDate("date", in.Date)
	if err != nil {
		return nil, err
	}
	input := MovementInput{
		ProductID:     strings.TrimSpace(in.ProductID),
		Type:          in.Type,
		Quantity:      in.Quantity,
		ResponsibleID: userID,
		Notes:         in.Notes,
	}
	if date != nil {
		input.Date = *date
	}
	res, err := uc.RecordMovement(ctx, input)
	if err != nil {
		return nil, err
	}

	out := toMovementDTO(res.Movement)
	out.Product = toProductRef(res.Product)
	if user, err := uc.userRepo.GetByID(ctx, res.Movement.ResponsibleID); err == nil {
		out.Responsible = toUserRef(user)
	}
	return &dto.RecordMovementResponse{Movement: out, Alert: res.Alert}, nil
}

// parseDate interpreta YYYY-MM-DD (o RFC3339) como fecha UTC. Vacío devuelve nil.
func parseDate(field, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, raw)
	if err != nil {
		t, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, domain.NewValidationError(field, "fecha inválida (use AAAA-MM-DD)")
		}
	}
	t = truncateDate(t.UTC())
	return &t, nil
}

func toMovementDTO(m *entity.StockMovement) dto.MovementDTO {
	return dto.MovementDTO{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Date:      m.Date.UTC().Format(dto.DateLayout),
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
	}
}

func toProductRef(p *entity.Product) *dto.ProductRefDTO {
	if p == nil {
		return nil
	}
	return &dto.ProductRefDTO{ID: p.ID, Name: p.Name, Category: p.Category}
}

func toUserRef(u *entity.User) *dto.UserRefDTO {
	if u == nil {
		return nil
	}
	return &dto.UserRefDTO{ID: u.ID, Name: u.Name, Username: u.Username}
}
