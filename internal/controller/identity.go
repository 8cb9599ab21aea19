package controller

import (
	"notes-repository-be/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// currentUserID reads the identity JwtMiddleware put on the user context.
func currentUserID(ctx *fiber.Ctx) (uuid.UUID, error) {
	identity, ok := session.FromContext(ctx.UserContext())
	if !ok || identity.UserID == uuid.Nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	return identity.UserID, nil
}

func uuidParam(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}
