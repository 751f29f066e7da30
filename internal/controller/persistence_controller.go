package controller

import (
	"ai-artpoet-be/internal/dto"
	"ai-artpoet-be/internal/pkg/serverutils"
	"ai-artpoet-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPersistenceController interface {
	RegisterRoutes(r fiber.Router)
}

type persistenceController struct {
	persistenceService service.IPersistenceService
}

func NewPersistenceController(persistenceService service.IPersistenceService) IPersistenceController {
	return &persistenceController{
		persistenceService: persistenceService,
	}
}

func (c *persistenceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/collection/v1")
	h.Use(requireClientId)
	h.Post("bookmarks/toggle", c.ToggleBookmark)
	h.Get("bookmarks", c.Bookmarks)
	h.Post("likes/toggle", c.ToggleLike)
	h.Get("likes", c.LikedPoems)
	h.Delete("likes/:id", c.DeleteLikedPoem)
}

// requireClientId insists on the self-minted client id header that scopes
// every collection.
func requireClientId(ctx *fiber.Ctx) error {
	if ctx.Get("X-Client-Id") == "" {
		return fiber.NewError(fiber.StatusBadRequest, "X-Client-Id header is required")
	}
	return ctx.Next()
}

func clientId(ctx *fiber.Ctx) string {
	return ctx.Get("X-Client-Id")
}

func (c *persistenceController) ToggleBookmark(ctx *fiber.Ctx) error {
	var req dto.ToggleBookmarkRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	active, err := c.persistenceService.ToggleBookmark(ctx.Context(), clientId(ctx), &req.Artwork)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success toggle bookmark", dto.ToggleResponse{Active: active}))
}

func (c *persistenceController) Bookmarks(ctx *fiber.Ctx) error {
	bookmarks, err := c.persistenceService.Bookmarks(ctx.Context(), clientId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list bookmarks", bookmarks))
}

func (c *persistenceController) ToggleLike(ctx *fiber.Ctx) error {
	var req dto.ToggleLikeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	active, err := c.persistenceService.ToggleLike(ctx.Context(), clientId(ctx), req.Artwork, req.Poem, req.ThemeLines)
	if err != nil {
		if err == service.ErrNothingToLike {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success toggle like", dto.ToggleResponse{Active: active}))
}

func (c *persistenceController) LikedPoems(ctx *fiber.Ctx) error {
	poems, err := c.persistenceService.LikedPoems(ctx.Context(), clientId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list liked poems", poems))
}

func (c *persistenceController) DeleteLikedPoem(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid liked poem id")
	}
	if err := c.persistenceService.DeleteLikedPoem(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete liked poem", nil))
}
