package inventory

// SuggestedOrderQuantity calcula la cantidad sugerida de pedido (servicio de dominio).
// CantidadSugerida = max(0, MinQuantity*2 - StockActual)
// Si el item no define MinQuantity se usa defaultMin (configurable, no por categoría).
func SuggestedOrderQuantity(quantity, minQuantity, defaultMin int64) int64 {
	min := minQuantity
	if min <= 0 {
		min = defaultMin
	}
	suggested := min*2 - quantity
	if suggested < 0 {
		return 0
	}
	return suggested
}
