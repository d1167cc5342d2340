package entity

import "time"

// Tipos de entrada del registro de actividad.
const (
	ActivityKindSale      = "sale"
	ActivityKindStock     = "stock"
	ActivityKindOrder     = "order"
	ActivityKindInventory = "inventory"
)

// ActivityEntry una entrada del registro de actividad (best-effort: su escritura
// nunca afecta el resultado de la operación que la origina).
type ActivityEntry struct {
	ID        string
	ActorID   string
	Verb      string
	Target    string
	Kind      string
	Section   string
	CreatedAt time.Time
}
