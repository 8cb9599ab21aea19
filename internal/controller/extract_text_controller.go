package controller

import (
	"encoding/json"
	"errors"

	"notes-repository-be/internal/dto"
	"notes-repository-be/internal/pkg/serverutils"
	"notes-repository-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const ExtractTextPath = "/functions/v1/extract-text"

const extractFailedMessage = "Failed to extract text from image"

var extractTextCORSHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET, POST, PUT, DELETE, OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type, Authorization, X-Client-Info, Apikey",
}

type IExtractTextController interface {
	RegisterRoutes(r fiber.Router)
	Preflight(ctx *fiber.Ctx) error
	Extract(ctx *fiber.Ctx) error
}

type extractTextController struct {
	service     service.IExtractTextService
	functionKey string
}

// NewExtractTextController serves the OCR proxy function. When functionKey is
// non-empty callers must present it as a bearer token.
func NewExtractTextController(service service.IExtractTextService, functionKey string) IExtractTextController {
	return &extractTextController{service: service, functionKey: functionKey}
}

func (c *extractTextController) RegisterRoutes(r fiber.Router) {
	h := r.Group(ExtractTextPath, withCORSHeaders)
	h.Options("", c.Preflight)
	h.Post("", c.Extract)
}

func withCORSHeaders(ctx *fiber.Ctx) error {
	for k, v := range extractTextCORSHeaders {
		ctx.Set(k, v)
	}
	return ctx.Next()
}

// Preflight answers 200 with an empty body.
func (c *extractTextController) Preflight(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).Send(nil)
}

// Extract never hands errors to the global handler: every failure is
// {"error": ..., "text": ""} with its own status.
func (c *extractTextController) Extract(ctx *fiber.Ctx) error {
	if c.functionKey != "" && serverutils.BearerToken(ctx) != c.functionKey {
		return fail(ctx, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.ExtractTextRequest
	if err := json.Unmarshal(ctx.Body(), &req); err != nil {
		return fail(ctx, fiber.StatusBadRequest, "Invalid JSON body")
	}

	text, err := c.service.Extract(ctx.UserContext(), req.ImageUrl)
	if errors.Is(err, service.ErrMissingImageURL) {
		return fail(ctx, fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		// Engine details stay in the service log.
		return fail(ctx, fiber.StatusInternalServerError, extractFailedMessage)
	}

	return ctx.JSON(dto.ExtractTextResponse{Text: text})
}

func fail(ctx *fiber.Ctx, code int, message string) error {
	return ctx.Status(code).JSON(dto.ExtractTextError{Error: message, Text: ""})
}
