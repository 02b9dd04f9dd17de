package reset

import "time"

// Clock abstrae el reloj de pared para que los tests del controlador sean
// deterministas.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time                         { return time.Now() }
func (systemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// SystemClock reloj real.
func SystemClock() Clock { return systemClock{} }
