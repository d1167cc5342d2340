package dto

// SessionRequest creación de sesión por un caller de confianza (clave de servicio).
type SessionRequest struct {
	CallerID string `json:"caller_id"`
	Role     string `json:"role"` // "admin" | "retailer"
	Section  string `json:"section"`
}

// SessionResponse token emitido.
type SessionResponse struct {
	Token string `json:"token"`
}
