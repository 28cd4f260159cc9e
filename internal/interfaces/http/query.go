package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-farmacia/internal/domain"
)

const dateOnly = "2006-01-02"

// queryTime lee un parámetro RFC3339 o YYYY-MM-DD. Ausente devuelve nil.
// Con endOfDay una fecha sin hora se interpreta como el último instante de ese día.
func queryTime(c *fiber.Ctx, key string, endOfDay bool) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateOnly, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s debe ser RFC3339 o YYYY-MM-DD", domain.ErrInvalidInput, key)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// queryWindow lee from/to.
func queryWindow(c *fiber.Ctx) (from, to *time.Time, err error) {
	if from, err = queryTime(c, "from", false); err != nil {
		return nil, nil, err
	}
	if to, err = queryTime(c, "to", true); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}
