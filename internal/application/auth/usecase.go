package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Kaua1102bit/avaliacao-saep/internal/application/dto"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/entity"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/repository"
	"github.com/Kaua1102bit/avaliacao-saep/pkg/jwt"
)

// MinPasswordLength longitud mínima de contraseña en el registro.
const MinPasswordLength = 6

// MaxPasswordBytes límite de bcrypt: las contraseñas más largas se rechazan.
const MaxPasswordBytes = 72

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login, sesión actual y logout.
type AuthUseCase struct {
	userRepo repository.UserRepository
	tokens   TokenStore
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tokens TokenStore, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, tokens: tokens, jwtCfg: jwtCfg}
}

// Signup crea un usuario con rol "user": hashea password con bcrypt y persiste.
// Devuelve domain.ErrUsernameTaken si el username ya existe.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	name := strings.TrimSpace(in.Name)
	var errs domain.ValidationErrors
	if username == "" {
		errs = append(errs, domain.NewValidationError("username", "el usuario es obligatorio"))
	}
	if len(in.Password) < MinPasswordLength {
		errs = append(errs, domain.NewValidationError("password", fmt.Sprintf("la contraseña debe tener al menos %d caracteres", MinPasswordLength)))
	}
	if len(in.Password) > MaxPasswordBytes {
		errs = append(errs, domain.NewValidationError("password", fmt.Sprintf("la contraseña no puede superar %d bytes", MaxPasswordBytes)))
	}
	if name == "" {
		errs = append(errs, domain.NewValidationError("name", "el nombre es obligatorio"))
	}
	if len(errs) > 0 {
		return nil, errs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Name:         name,
		Role:         entity.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Authenticate verifica username/password, genera JWT y retorna token + usuario.
// Usuario inexistente y contraseña incorrecta devuelven el mismo domain.ErrUnauthorized.
func (uc *AuthUseCase) Authenticate(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, claims, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAtTime(),
		User:      *toUserResponse(user),
	}, nil
}

// Verify valida firma, expiración y revocación del token.
func (uc *AuthUseCase) Verify(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	revoked, err := uc.tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("consultar revocación: %w", err)
	}
	if revoked {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

// CurrentUser devuelve el usuario de la sesión.
func (uc *AuthUseCase) CurrentUser(ctx context.Context, token string) (*dto.UserResponse, error) {
	claims, err := uc.Verify(ctx, token)
	if err != nil {
		return nil, err
	}
	return uc.UserByID(ctx, claims.UserID)
}

// UserByID devuelve el usuario autenticado a partir del ID ya verificado por el middleware.
func (uc *AuthUseCase) UserByID(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Logout revoca el jti del token hasta su expiración. Un token ya inválido no es error.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil
	}
	if err := uc.tokens.Revoke(ctx, claims.ID, claims.ExpiresAtTime()); err != nil {
		return fmt.Errorf("revocar token: %w", err)
	}
	return nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
