package controller

import (
	"io"
	"mime/multipart"

	"notes-repository-be/internal/dto"
	"notes-repository-be/internal/pkg/serverutils"
	"notes-repository-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const imageField = "image"

type INoteController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	Create(ctx *fiber.Ctx) error
	Preview(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{
		noteService: noteService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/note/v1", jwtMiddleware)
	h.Post("", c.Create)
	h.Post("preview", c.Preview)
	h.Get(":id", c.Show)
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form")
	}

	// A missing file is left for the pipeline to report as incomplete.
	if fh, err := ctx.FormFile(imageField); err == nil {
		data, err := readUpload(fh)
		if err != nil {
			return err
		}
		req.FileName = fh.Filename
		req.Image = data
	}

	res, err := c.noteService.Create(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create note", res))
}

func (c *noteController) Preview(ctx *fiber.Ctx) error {
	fh, err := ctx.FormFile(imageField)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "image is required")
	}
	data, err := readUpload(fh)
	if err != nil {
		return err
	}

	res, err := c.noteService.Preview(ctx.UserContext(), fh.Filename, data)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success preview image", res))
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.noteService.Show(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show note", res))
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Unable to read image")
	}
	defer f.Close()
	return io.ReadAll(f)
}
