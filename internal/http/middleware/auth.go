package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"legalscan/internal/service"
)

// ActorLocalKey is the key used to store the authenticated actor in Fiber's context locals.
const ActorLocalKey = "actor"

// TokenVerifier turns a bearer token into an authenticated actor.
type TokenVerifier interface {
	Verify(token string) (service.Actor, error)
}

// Auth requires a valid "Authorization: Bearer <token>" header and stores the
// resulting actor in context locals under ActorLocalKey.
func Auth(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		actor, err := verifier.Verify(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(ActorLocalKey, actor)
		return c.Next()
	}
}

// RequireRole rejects requests whose actor does not hold the given role.
// It must run after Auth.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := c.Locals(ActorLocalKey).(service.Actor)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}
		if actor.Role != role {
			return fiber.NewError(fiber.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}

// ActorFromCtx returns the actor stored by Auth, if any.
func ActorFromCtx(c *fiber.Ctx) (service.Actor, bool) {
	actor, ok := c.Locals(ActorLocalKey).(service.Actor)
	return actor, ok
}
