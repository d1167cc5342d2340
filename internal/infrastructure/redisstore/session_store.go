package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jcastano/cadena-api/internal/domain"
)

// Session datos de una sesión activa resueltos para el caller.
type Session struct {
	CallerID string `json:"caller_id"`
	Role     string `json:"role"`
	Section  string `json:"section"`
}

// SessionStore persiste sesiones en Redis con TTL. El JWT por sí solo no puede
// expresar revocación; la sesión en Redis sí (logout = borrar la clave).
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore construye el store con el cliente y el TTL de sesión.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// NewClient crea y verifica un cliente Redis.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func sessionKey(callerID string) string {
	return "session:" + callerID
}

// Save guarda (o renueva) la sesión del caller.
func (s *SessionStore) Save(ctx context.Context, sess Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("serializar sesión: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(sess.CallerID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("guardar sesión: %w", err)
	}
	return nil
}

// Get recupera la sesión activa del caller. Retorna domain.ErrUnauthorized si
// no existe (sesión expirada o revocada).
func (s *SessionStore) Get(ctx context.Context, callerID string) (*Session, error) {
	payload, err := s.client.Get(ctx, sessionKey(callerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("leer sesión: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, fmt.Errorf("deserializar sesión: %w", err)
	}
	return &sess, nil
}

// Delete revoca la sesión del caller.
func (s *SessionStore) Delete(ctx context.Context, callerID string) error {
	if err := s.client.Del(ctx, sessionKey(callerID)).Err(); err != nil {
		return fmt.Errorf("revocar sesión: %w", err)
	}
	return nil
}
