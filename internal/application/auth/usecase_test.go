package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/alumasa/almoxarifado-api/internal/application/auth"
	"github.com/alumasa/almoxarifado-api/internal/application/dto"
	"github.com/alumasa/almoxarifado-api/internal/domain"
	"github.com/alumasa/almoxarifado-api/internal/domain/entity"
	"github.com/alumasa/almoxarifado-api/internal/infrastructure/memory"
	pkgjwt "github.com/alumasa/almoxarifado-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func newAuthFixture(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	users := memory.NewUserStore(memory.NewStore())
	hash, err := bcrypt.GenerateFromPassword([]byte("senha-segura"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, users.Create(&entity.User{
		ID: "user-1", Name: "Maria Souza", Email: "maria@example.com",
		PasswordHash: string(hash), Profile: entity.ProfileAdmin,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))
	return auth.NewAuthUseCase(users, auth.JWTConfig{
		Secret: testSecret, ExpMinutes: 60, Issuer: "almoxarifado-test",
	})
}

func TestLogin_EmiteTokenConClaims(t *testing.T) {
	uc := newAuthFixture(t)

	out, err := uc.Login(dto.LoginRequest{Email: "maria@example.com", Password: "senha-segura"})
	require.NoError(t, err)
	assert.Equal(t, "Maria Souza", out.User.Name)
	assert.Equal(t, entity.ProfileAdmin, out.User.Profile, "el perfil viaja en la respuesta")

	claims, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "Maria Souza", claims.Name)
	assert.Equal(t, entity.ProfileAdmin, claims.Profile)
}

func TestLogin_EmailCaseInsensitive(t *testing.T) {
	uc := newAuthFixture(t)
	_, err := uc.Login(dto.LoginRequest{Email: "MARIA@example.com", Password: "senha-segura"})
	assert.NoError(t, err)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc := newAuthFixture(t)
	_, err := uc.Login(dto.LoginRequest{Email: "maria@example.com", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := newAuthFixture(t)
	_, err := uc.Login(dto.LoginRequest{Email: "nadie@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
