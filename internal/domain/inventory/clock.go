package inventory

import (
	"fmt"
	"time"
	_ "time/tzdata" // contenedores sin /usr/share/zoneinfo
)

// DateLayout formato ISO-8601 con milisegundos y offset (ej. 2024-05-01T10:30:00.123-03:00).
const DateLayout = "2006-01-02T15:04:05.000-07:00"

// DefaultTimeZone zona horaria de referencia del ledger.
const DefaultTimeZone = "America/Sao_Paulo"

// Clock fija la fecha de los movimientos en la zona de referencia, con precisión de milisegundos.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock carga la zona horaria indicada (vacía = DefaultTimeZone).
func NewClock(tz string) (*Clock, error) {
	if tz == "" {
		tz = DefaultTimeZone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("cargar zona horaria %q: %w", tz, err)
	}
	return &Clock{loc: loc, now: time.Now}, nil
}

// NewFixedClock reloj que siempre devuelve t (para tests y replays).
func NewFixedClock(loc *time.Location, t time.Time) *Clock {
	return &Clock{loc: loc, now: func() time.Time { return t }}
}

// Now devuelve el instante actual normalizado.
func (c *Clock) Now() time.Time {
	return c.Normalize(c.now())
}

// Normalize lleva t a la zona de referencia truncando a milisegundos.
func (c *Clock) Normalize(t time.Time) time.Time {
	return t.In(c.loc).Truncate(time.Millisecond)
}

// Format renderiza t según DateLayout en la zona de referencia.
func (c *Clock) Format(t time.Time) string {
	return c.Normalize(t).Format(DateLayout)
}

// Location zona horaria de referencia.
func (c *Clock) Location() *time.Location { return c.loc }
