package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestTimeout fija un deadline en el contexto de la petición (c.UserContext()).
// Al vencer, la transacción en curso se revierte y los bloqueos pendientes se abandonan.
func RequestTimeout(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if d <= 0 {
			return c.Next()
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
