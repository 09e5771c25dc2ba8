package memory

import (
	"context"
	"strings"

	"github.com/Kaua1102bit/avaliacao-saep/internal/domain"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/entity"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository usuarios en memoria; el username es único sin distinguir mayúsculas.
type UserRepository struct {
	s    *Store
	inTx bool
}

func (r *UserRepository) lock() func() { return locker{s: r.s, inTx: r.inTx}.lock() }

// Create persiste el usuario o devuelve domain.ErrUsernameTaken.
func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	defer r.lock()()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Username, u.Username) {
			return domain.ErrUsernameTaken
		}
	}
	c := *u
	r.s.users[u.ID] = &c
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	defer r.lock()()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

// GetByIDs obtiene varios usuarios; los IDs inexistentes se omiten.
func (r *UserRepository) GetByIDs(_ context.Context, ids []string) (map[string]*entity.User, error) {
	defer r.lock()()
	out := make(map[string]*entity.User, len(ids))
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			c := *u
			out[id] = &c
		}
	}
	return out, nil
}

// GetByUsername busca por username sin distinguir mayúsculas.
func (r *UserRepository) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	defer r.lock()()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Username, username) {
			c := *u
			return &c, nil
		}
	}
	return nil, domain.ErrUserNotFound
}
