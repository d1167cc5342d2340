package inventory

import (
	"context"
	"sync"

	"github.com/jcastano/cadena-api/internal/domain"
	"github.com/jcastano/cadena-api/internal/domain/entity"
	"github.com/jcastano/cadena-api/internal/domain/repository"
)

// ScanState estado de un escaneo de inventario.
type ScanState int

const (
	ScanIdle ScanState = iota
	ScanLoading
	ScanDone
)

type scanParams struct {
	section  string
	callerID string
	role     string
	pageSize int
}

// ChunkAccumulator acumula páginas de un escaneo de inventario.
//
// Start recorre el PagedSource página por página hasta agotar el token de
// continuación, aplicando el filtro de visibilidad por rol sobre cada página
// antes de pedir la siguiente. Nunca hay dos fetch en vuelo: cada página
// bloquea al caller hasta resolverse.
//
// Máquina de estados: Idle → Loading(scanID) → ... → Done. Un Start con los
// mismos parámetros mientras hay un escaneo en curso es un no-op (guardia de
// un solo fetch en vuelo). Un Start con parámetros distintos reemplaza al
// escaneo anterior: las páginas llevan el id del escaneo y las de un escaneo
// viejo se descartan al llegar, para que nunca aterricen en el acumulador de
// un escaneo más nuevo.
type ChunkAccumulator struct {
	source repository.ItemRepository

	mu     sync.Mutex
	state  ScanState
	scanID uint64
	params scanParams
	items  []*entity.StockItem
}

// NewChunkAccumulator construye el acumulador sobre el PagedSource.
func NewChunkAccumulator(source repository.ItemRepository) *ChunkAccumulator {
	return &ChunkAccumulator{source: source}
}

// Start inicia (o reemplaza) un escaneo y bloquea hasta agotarlo o fallar.
// Si una página falla, el escaneo queda en Done con lo acumulado hasta ese
// punto y el error se retorna al caller; no hay reintento automático.
func (a *ChunkAccumulator) Start(ctx context.Context, section, callerID, role string, pageSize int) error {
	if pageSize < 1 {
		return domain.ErrInvalidInput
	}
	if role != entity.RoleAdmin && role != entity.RoleRetailer {
		return domain.ErrForbidden
	}

	p := scanParams{section: section, callerID: callerID, role: role, pageSize: pageSize}

	a.mu.Lock()
	if a.state == ScanLoading {
		if a.params == p {
			// Mismo escaneo ya en curso: no disparar fetches duplicados.
			a.mu.Unlock()
			return nil
		}
		// Parámetros nuevos: el escaneo anterior queda obsoleto.
	}
	a.scanID++
	id := a.scanID
	a.params = p
	a.state = ScanLoading
	a.items = nil
	a.mu.Unlock()

	token := ""
	for {
		page, err := a.source.ListPage(ctx, section, pageSize, token)
		if err != nil {
			a.finish(id)
			return err
		}
		if !a.append(id, filterVisible(page.Items, section, callerID, role)) {
			// Un escaneo más nuevo nos reemplazó: descartar la página y salir.
			return nil
		}
		if page.NextToken == "" {
			a.finish(id)
			return nil
		}
		token = page.NextToken
	}
}

// append agrega una página filtrada en orden de llegada. Retorna false si la
// página pertenece a un escaneo obsoleto.
func (a *ChunkAccumulator) append(id uint64, items []*entity.StockItem) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if id != a.scanID {
		return false
	}
	a.items = append(a.items, items...)
	return true
}

func (a *ChunkAccumulator) finish(id uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if id == a.scanID {
		a.state = ScanDone
	}
}

// Snapshot devuelve una copia de los items acumulados y si el escaneo sigue cargando.
func (a *ChunkAccumulator) Snapshot() ([]*entity.StockItem, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*entity.StockItem, len(a.items))
	copy(out, a.items)
	return out, a.state == ScanLoading
}

// State devuelve el estado actual del acumulador.
func (a *ChunkAccumulator) State() ScanState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// filterVisible aplica la visibilidad por rol sobre una página:
// admin ve todo lo de la sección pedida; retailer solo lo que posee.
func filterVisible(items []*entity.StockItem, section, callerID, role string) []*entity.StockItem {
	kept := make([]*entity.StockItem, 0, len(items))
	for _, it := range items {
		switch role {
		case entity.RoleAdmin:
			if it.Section == section {
				kept = append(kept, it)
			}
		case entity.RoleRetailer:
			if it.OwnerID == callerID {
				kept = append(kept, it)
			}
		}
	}
	return kept
}

// ScanUseCase expone el escaneo como operación de una sola llamada (HTTP).
// Cada petición usa un acumulador propio; el resultado puede ser parcial si
// una página falló a mitad del escaneo (items acumulados + error).
type ScanUseCase struct {
	source repository.ItemRepository
}

// NewScanUseCase construye el caso de uso de escaneo.
func NewScanUseCase(source repository.ItemRepository) *ScanUseCase {
	return &ScanUseCase{source: source}
}

// Scan acumula el inventario visible completo de la sección para el caller.
func (uc *ScanUseCase) Scan(ctx context.Context, section, callerID, role string, pageSize int) ([]*entity.StockItem, error) {
	acc := NewChunkAccumulator(uc.source)
	err := acc.Start(ctx, section, callerID, role, pageSize)
	items, _ := acc.Snapshot()
	return items, err
}
