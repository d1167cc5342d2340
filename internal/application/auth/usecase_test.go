package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastano/cadena-api/internal/application/auth"
	"github.com/jcastano/cadena-api/internal/domain"
	"github.com/jcastano/cadena-api/internal/infrastructure/redisstore"
)

func newAuthUseCase(t *testing.T) *auth.UseCase {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessions := redisstore.NewSessionStore(client, time.Hour)
	return auth.NewUseCase(sessions, auth.JWTConfig{
		Secret:     "secreto-de-prueba",
		ExpMinutes: 60,
		Issuer:     "cadena-api",
	})
}

func TestAuth_SesionCompleta(t *testing.T) {
	uc := newAuthUseCase(t)
	ctx := context.Background()

	token, err := uc.StartSession(ctx, "c1", "admin", "Hospital")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	caller, err := uc.ResolveCaller(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, &auth.Caller{ID: "c1", Role: "admin", Section: "Hospital"}, caller)
}

func TestAuth_TokenInvalido(t *testing.T) {
	uc := newAuthUseCase(t)

	_, err := uc.ResolveCaller(context.Background(), "no-es-un-jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Un logout revoca la sesión aunque el JWT siga siendo criptográficamente válido.
func TestAuth_SesionRevocada(t *testing.T) {
	uc := newAuthUseCase(t)
	ctx := context.Background()

	token, err := uc.StartSession(ctx, "c1", "retailer", "S")
	require.NoError(t, err)
	require.NoError(t, uc.EndSession(ctx, "c1"))

	_, err = uc.ResolveCaller(ctx, token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Si el rol o la sección cambian upstream, la sesión nueva invalida tokens viejos.
func TestAuth_ClaimsDesactualizados(t *testing.T) {
	uc := newAuthUseCase(t)
	ctx := context.Background()

	oldToken, err := uc.StartSession(ctx, "c1", "retailer", "S")
	require.NoError(t, err)

	// La sesión se reemplaza con otro rol.
	_, err = uc.StartSession(ctx, "c1", "admin", "S")
	require.NoError(t, err)

	_, err = uc.ResolveCaller(ctx, oldToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuth_RolInvalido(t *testing.T) {
	uc := newAuthUseCase(t)

	_, err := uc.StartSession(context.Background(), "c1", "auditor", "S")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
