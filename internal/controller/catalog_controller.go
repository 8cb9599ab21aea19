package controller

import (
	"notes-repository-be/internal/dto"
	"notes-repository-be/internal/pkg/serverutils"
	"notes-repository-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICatalogController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	Browse(ctx *fiber.Ctx) error
}

type catalogController struct {
	catalogService service.ICatalogService
}

func NewCatalogController(catalogService service.ICatalogService) ICatalogController {
	return &catalogController{catalogService: catalogService}
}

func (c *catalogController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/catalog/v1", jwtMiddleware)
	h.Get("", c.Browse)
}

// Browse answers 200 even when one half failed to load; the body says so.
func (c *catalogController) Browse(ctx *fiber.Ctx) error {
	var req dto.CatalogRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}

	res := c.catalogService.Browse(ctx.UserContext(), &req)

	message := "Success get catalog"
	if res.Partial {
		message = "Catalog partially loaded"
	}
	return ctx.JSON(serverutils.SuccessResponse(message, res))
}
