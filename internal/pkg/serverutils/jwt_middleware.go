package serverutils

import (
	"context"
	"strings"

	"notes-repository-be/internal/session"

	"github.com/gofiber/fiber/v2"
)

type SessionResolver interface {
	Resolve(ctx context.Context, token string) (session.Identity, error)
}

// BearerToken returns the token from the Authorization header, or "".
func BearerToken(ctx *fiber.Ctx) string {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[7:])
}

// JwtMiddleware rejects requests without a live session. On success the
// identity is placed on the request's user context and "user_id" is set in
// Locals for handlers that only need the id.
func JwtMiddleware(resolver SessionResolver) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := BearerToken(ctx)
		if tokenStr == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
		}

		identity, err := resolver.Resolve(ctx.UserContext(), tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid or expired session"))
		}

		ctx.SetUserContext(session.WithIdentity(ctx.UserContext(), identity))
		ctx.Locals("user_id", identity.UserID.String())
		ctx.Locals("token", tokenStr)
		return ctx.Next()
	}
}
