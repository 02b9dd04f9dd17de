package http

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/jhoicas/candystock-api/internal/application/stock"
)

// StreamHandler suscripción en vivo por Server-Sent Events. Cada mutación
// aceptada (commit, undo, cambio de configuración, cierre diario) emite un
// evento; el cliente mantiene su último snapshot y lo refresca con lo que
// llega. Un error del stream corta la conexión, no el proceso: el cliente
// reconecta y relee el snapshot.
type StreamHandler struct {
	watcher *stock.Watcher
}

// NewStreamHandler construye el handler.
func NewStreamHandler(watcher *stock.Watcher) *StreamHandler {
	return &StreamHandler{watcher: watcher}
}

// Stream godoc
// @Summary      Stream SSE de cambios del ledger
// @Tags         stock
// @Security     Bearer
// @Produce      text/event-stream
// @Router       /api/stock/stream [get]
func (h *StreamHandler) Stream(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	id, events := h.watcher.Subscribe()

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer h.watcher.Unsubscribe(id)
		for ev := range events {
			payload, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Kind, payload); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				// cliente desconectado
				return
			}
		}
	}))
	return nil
}
