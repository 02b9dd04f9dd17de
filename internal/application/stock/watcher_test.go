package stock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/candystock-api/internal/application/stock"
)

func TestWatcher_PublishLlegaATodos(t *testing.T) {
	w := stock.NewWatcher()
	_, ch1 := w.Subscribe()
	_, ch2 := w.Subscribe()
	require.Equal(t, 2, w.Subscribers())

	w.Publish(stock.Event{Kind: stock.EventConfig})

	for _, ch := range []<-chan stock.Event{ch1, ch2} {
		select {
		case ev := <-ch:
			assert.Equal(t, stock.EventConfig, ev.Kind)
		case <-time.After(time.Second):
			t.Fatal("todos los suscriptores deben recibir el evento")
		}
	}
}

func TestWatcher_UnsubscribeCierraElCanal(t *testing.T) {
	w := stock.NewWatcher()
	id, ch := w.Subscribe()

	w.Unsubscribe(id)
	assert.Equal(t, 0, w.Subscribers())

	_, open := <-ch
	assert.False(t, open, "el canal debe cerrarse al darse de baja")

	// Repetir la baja no debe romper nada
	w.Unsubscribe(id)
}

// Un suscriptor que no consume no debe bloquear a los escritores: una vez
// lleno su buffer, los eventos extra se descartan.
func TestWatcher_SuscriptorSaturadoNoBloquea(t *testing.T) {
	w := stock.NewWatcher()
	_, _ = w.Subscribe()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			w.Publish(stock.Event{Kind: stock.EventStock})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish no debe bloquearse por un suscriptor lento")
	}
}
