package controller

import (
	"doc-chat-be/internal/pkg/apperror"
	"doc-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUploadController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
}

type uploadController struct {
	documentService service.IDocumentService
}

func NewUploadController(documentService service.IDocumentService) IUploadController {
	return &uploadController{
		documentService: documentService,
	}
}

func (c *uploadController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/upload/v1")
	h.Post("", c.Upload)
}

func (c *uploadController) Upload(ctx *fiber.Ctx) error {
	sessionId := ctx.FormValue("session_id")
	if sessionId == "" {
		return apperror.BadRequest("No session_id provided.")
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return apperror.BadRequest("No file provided.")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperror.Internal("Failed to read uploaded file: " + err.Error())
	}
	defer file.Close()

	res, err := c.documentService.ProcessUpload(ctx.Context(), sessionId, fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
