package postgres

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// encodeToken convierte el cursor keyset en un token de continuación opaco.
func encodeToken(lastID string) string {
	return base64.URLEncoding.EncodeToString([]byte(lastID))
}

// decodeToken recupera el cursor del token. Token vacío = inicio del escaneo.
func decodeToken(token string) (string, error) {
	if token == "" {
		return "", nil
	}
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
