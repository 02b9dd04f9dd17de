package stock

import (
	"sync"

	"github.com/jhoicas/candystock-api/internal/domain/entity"
)

// Tipos de evento publicados por el watcher.
const (
	EventStock  = "stock"  // el ledger actual cambió (commit o undo)
	EventConfig = "config" // la configuración del cierre cambió
	EventReset  = "reset"  // se ejecutó el cierre diario
)

// Event notificación de cambio para suscriptores en vivo.
// Stock trae el snapshot del ledger actual cuando aplica (stock y reset).
type Event struct {
	Kind  string             `json:"kind"`
	Stock entity.StockLedger `json:"stock,omitempty"`
}

// Watcher hub de suscripción en vivo: cada mutación aceptada (commit, undo,
// edición de configuración, cierre diario) publica un evento que los clientes
// consumen por SSE. Reemplaza a los listeners del documento en el sistema
// original: el snapshot siempre se relee del storage, el evento solo avisa.
type Watcher struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]chan Event
}

// NewWatcher construye el hub.
func NewWatcher() *Watcher {
	return &Watcher{subs: make(map[int]chan Event)}
}

// Subscribe registra un suscriptor y devuelve su id y canal de eventos.
// El canal tiene buffer; un suscriptor lento pierde eventos intermedios en
// lugar de bloquear a los escritores (el snapshot siguiente lo pone al día).
func (w *Watcher) Subscribe() (int, <-chan Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextID++
	id := w.nextID
	ch := make(chan Event, 8)
	w.subs[id] = ch
	return id, ch
}

// Unsubscribe da de baja un suscriptor y cierra su canal.
func (w *Watcher) Unsubscribe(id int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if ch, ok := w.subs[id]; ok {
		delete(w.subs, id)
		close(ch)
	}
}

// Publish difunde un evento a todos los suscriptores sin bloquear.
func (w *Watcher) Publish(ev Event) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, ch := range w.subs {
		select {
		case ch <- ev:
		default:
			// suscriptor saturado: se salta este evento
		}
	}
}

// Subscribers cantidad de suscriptores activos.
func (w *Watcher) Subscribers() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.subs)
}
