package auth

import (
	"context"

	"github.com/jcastano/cadena-api/internal/domain"
	"github.com/jcastano/cadena-api/internal/domain/entity"
	"github.com/jcastano/cadena-api/internal/infrastructure/redisstore"
	pkgjwt "github.com/jcastano/cadena-api/pkg/jwt"
)

// Caller identidad resuelta de quien invoca la API.
type Caller struct {
	ID      string
	Role    string
	Section string
}

// JWTConfig parámetros de firma de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase resuelve callers a partir del token de sesión. La identidad upstream
// (usuarios, contraseñas) está fuera de este servicio: las sesiones las crea
// un caller de confianza que presenta la clave de servicio.
type UseCase struct {
	sessions *redisstore.SessionStore
	jwtCfg   JWTConfig
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(sessions *redisstore.SessionStore, jwtCfg JWTConfig) *UseCase {
	return &UseCase{sessions: sessions, jwtCfg: jwtCfg}
}

// StartSession crea la sesión del caller y emite el JWT correspondiente.
func (uc *UseCase) StartSession(ctx context.Context, callerID, role, section string) (string, error) {
	if callerID == "" || section == "" {
		return "", domain.ErrInvalidInput
	}
	if role != entity.RoleAdmin && role != entity.RoleRetailer {
		return "", domain.ErrInvalidInput
	}
	if err := uc.sessions.Save(ctx, redisstore.Session{
		CallerID: callerID,
		Role:     role,
		Section:  section,
	}); err != nil {
		return "", err
	}
	return pkgjwt.Generate(uc.jwtCfg.Secret, callerID, role, section, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
}

// ResolveCaller valida el token y verifica que la sesión siga activa en Redis.
// Retorna domain.ErrUnauthorized si el token es inválido o la sesión fue revocada.
func (uc *UseCase) ResolveCaller(ctx context.Context, token string) (*Caller, error) {
	callerID, role, section, err := pkgjwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	sess, err := uc.sessions.Get(ctx, callerID)
	if err != nil {
		return nil, err
	}
	// La sesión manda sobre los claims: un cambio de rol o sección upstream
	// invalida lo que diga un token viejo.
	if sess.Role != role || sess.Section != section {
		return nil, domain.ErrUnauthorized
	}
	return &Caller{ID: sess.CallerID, Role: sess.Role, Section: sess.Section}, nil
}

// EndSession revoca la sesión del caller (logout).
func (uc *UseCase) EndSession(ctx context.Context, callerID string) error {
	return uc.sessions.Delete(ctx, callerID)
}
