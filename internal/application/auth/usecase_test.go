package auth_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kaua1102bit/avaliacao-saep/internal/application/auth"
	"github.com/Kaua1102bit/avaliacao-saep/internal/application/dto"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain"
	"github.com/Kaua1102bit/avaliacao-saep/internal/infrastructure/memory"
	"github.com/Kaua1102bit/avaliacao-saep/internal/infrastructure/session"
)

func newAuth() *auth.AuthUseCase {
	store := memory.NewStore()
	return auth.NewAuthUseCase(store.Users(), session.NewMemoryStore(), auth.JWTConfig{
		Secret: "test-secret", ExpMinutes: 60, Issuer: "stock-api-test",
	})
}

func TestSignup_RolUserYUsernameUnico(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()

	u, err := uc.Signup(ctx, dto.SignupRequest{Username: "maria", Password: "secreta", Name: "Maria"})
	require.NoError(t, err)
	assert.Equal(t, "user", u.Role)
	assert.NotEmpty(t, u.ID)

	_, err = uc.Signup(ctx, dto.SignupRequest{Username: "maria", Password: "otraclave", Name: "Otra"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestSignup_PasswordCorta(t *testing.T) {
	_, err := newAuth().Signup(context.Background(), dto.SignupRequest{Username: "jo", Password: "12345", Name: "Jo"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "password")
}

func TestSignup_PasswordSuperaLimiteDeBcrypt(t *testing.T) {
	// 40 caracteres, 80 bytes en UTF-8
	password := strings.Repeat("ñ", 40)
	_, err := newAuth().Signup(context.Background(), dto.SignupRequest{Username: "nuno", Password: password, Name: "Nuno"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "password")

	_, err = newAuth().Signup(context.Background(), dto.SignupRequest{Username: "nuno", Password: strings.Repeat("ñ", 36), Name: "Nuno"})
	assert.NoError(t, err)
}

func TestAuthenticate_YCurrentUser(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()
	_, err := uc.Signup(ctx, dto.SignupRequest{Username: "maria", Password: "secreta", Name: "Maria"})
	require.NoError(t, err)

	out, err := uc.Authenticate(ctx, dto.LoginRequest{Username: "maria", Password: "secreta"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, "maria", out.User.Username)

	me, err := uc.CurrentUser(ctx, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, me.ID)
}

func TestAuthenticate_CredencialesInvalidas(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()
	_, err := uc.Signup(ctx, dto.SignupRequest{Username: "maria", Password: "secreta", Name: "Maria"})
	require.NoError(t, err)

	_, err = uc.Authenticate(ctx, dto.LoginRequest{Username: "maria", Password: "errada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Authenticate(ctx, dto.LoginRequest{Username: "nadie", Password: "secreta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "usuario inexistente no se distingue")
}

func TestLogout_RevocaToken(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()
	_, err := uc.Signup(ctx, dto.SignupRequest{Username: "maria", Password: "secreta", Name: "Maria"})
	require.NoError(t, err)
	out, err := uc.Authenticate(ctx, dto.LoginRequest{Username: "maria", Password: "secreta"})
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx, out.Token))

	_, err = uc.CurrentUser(ctx, out.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	assert.NoError(t, uc.Logout(ctx, "basura"), "logout con token inválido no falla")
}
