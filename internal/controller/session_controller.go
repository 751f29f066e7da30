package controller

import (
	"errors"

	"ai-artpoet-be/internal/dto"
	"ai-artpoet-be/internal/pkg/serverutils"
	"ai-artpoet-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
}

type sessionController struct {
	sessionService     service.ISessionService
	artService         service.IArtService
	inspirationService service.IInspirationService
	poemService        service.IPoemService
}

func NewSessionController(
	sessionService service.ISessionService,
	artService service.IArtService,
	inspirationService service.IInspirationService,
	poemService service.IPoemService,
) ISessionController {
	return &sessionController{
		sessionService:     sessionService,
		artService:         artService,
		inspirationService: inspirationService,
		poemService:        poemService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Get("sources", c.Sources)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
	h.Put(":id/source", c.SelectSource)

	h.Post(":id/artwork/fetch", c.FetchArtwork)
	h.Post(":id/artwork/fetch-by-id", c.FetchArtworkById)
	h.Post(":id/artwork/change", c.ChangeArtwork)

	h.Post(":id/keywords/inspire", c.InspireMe)
	h.Post(":id/keywords/regenerate", c.RegenerateKeywords)

	h.Put(":id/themes", c.UpdateThemeLines)
	h.Delete(":id/themes", c.ClearThemeLines)

	h.Post(":id/poem/generate", c.GeneratePoem)
	h.Post(":id/poem/manual", c.FinalizeManually)
	h.Put(":id/poem", c.UpdateEditablePoem)

	h.Post(":id/artless", c.StartArtlessMode)
	h.Post(":id/flip/editor", c.FlipBackToEditor)
	h.Post(":id/flip/view", c.FlipToViewLastPoem)

	h.Post(":id/liked/load", c.LoadLikedPoem)
	h.Post(":id/liked/recreate", c.RecreatePoem)

	h.Get(":id/logs", c.GenerationLogs)
}

// mapSessionError converts service sentinel errors into HTTP errors.
func mapSessionError(err error) error {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrLikedPoemNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNoPreviousPoem):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return err
	}
}

// snapshot responds with the session's current state, the payload every
// intent returns so the client can re-render unconditionally.
func (c *sessionController) snapshot(ctx *fiber.Ctx, message string) error {
	snap, err := c.sessionService.Snapshot(ctx.Params("id"))
	if err != nil {
		return mapSessionError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse(message, snap))
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	snap := c.sessionService.Create()
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create session", snap))
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	return c.snapshot(ctx, "Success show session")
}

func (c *sessionController) Delete(ctx *fiber.Ctx) error {
	c.sessionService.Delete(ctx.Params("id"))
	return ctx.JSON(serverutils.SuccessResponse("Success delete session", nil))
}

func (c *sessionController) Sources(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success list sources", c.artService.Sources()))
}

func (c *sessionController) SelectSource(ctx *fiber.Ctx) error {
	var req dto.SelectSourceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	if err := c.sessionService.SelectSource(ctx.Params("id"), req.Source); err != nil {
		return mapSessionError(err)
	}
	return c.snapshot(ctx, "Success select source")
}

func (c *sessionController) FetchArtwork(ctx *fiber.Ctx) error {
	state, err := c.sessionService.Get(ctx.Params("id"))
	if err != nil {
		return mapSessionError(err)
	}
	c.artService.FetchRandom(ctx.Context(), state)
	return c.snapshot(ctx, "Success fetch artwork")
}

func (c *sessionController) FetchArtworkById(ctx *fiber.Ctx) error {
	state, err := c.sessionService.Get(ctx.Params("id"))
	if err != nil {
		return mapSessionError(err)
	}
	var req dto.FetchArtworkByIdRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	c.artService.FetchById(ctx.Context(), state, req.ArtworkId, req.Source)
	return c.snapshot(ctx, "Success fetch artwork")
}

func (c *sessionController) ChangeArtwork(ctx *fiber.Ctx) error {
	state, err := c.sessionService.Get(ctx.Params("id"))
	if err != nil {
		return mapSessionError(err)
	}
	c.artService.ChangeArtwork(ctx.Context(), state)
	return c.snapshot(ctx, "Success change artwork")
}

func (c *sessionController) InspireMe(ctx *fiber.Ctx) error {
	state, err := c.sessionService.Get(ctx.Params("id"))
	if err != nil {
		return mapSessionError(err)
	}
	c.inspirationService.InspireMe(ctx.Context(), state)
	return c.snapshot(ctx, "Success generate keywords")
}

func (c *sessionController) RegenerateKeywords(ctx *fiber.Ctx) error {
	state, err := c.sessionService.Get(ctx.Params("id"))
	if err != nil {
		return mapSessionError(err)
	}
	c.inspirationService.Regenerate(ctx.Context(), state)
	return c.snapshot(ctx, "Success regenerate keywords")
}

func (c *sessionController) UpdateThemeLines(ctx *fiber.Ctx) error {
	var req dto.UpdateThemeLinesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	if err := c.sessionService.SetThemeLines(ctx.Params("id"), req.Lines); err != nil {
		return mapSessionError(err)
	}
	return c.snapshot(ctx, "Success update themes")
}

func (c *sessionController) ClearThemeLines(ctx *fiber.Ctx) error {
	if err := c.sessionService.ClearThemeLines(ctx.Params("id")); err != nil {
		return mapSessionError(err)
	}
	return c.snapshot(ctx, "Success clear themes")
}

func (c *sessionController) GeneratePoem(ctx *fiber.Ctx) error {
	state, err := c.sessionService.Get(ctx.Params("id"))
	if err != nil {
		return mapSessionError(err)
	}
	var req dto.GeneratePoemRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
	}
	c.poemService.Generate(ctx.Context(), state, req.Restricted)
	return c.snapshot(ctx, "Success generate poem")
}

func (c *sessionController) FinalizeManually(ctx *fiber.Ctx) error {
	state, err := c.sessionService.Get(ctx.Params("id"))
	if err != nil {
		return mapSessionError(err)
	}
	c.poemService.FinalizeManually(state)
	return c.snapshot(ctx, "Success finalize poem")
}

func (c *sessionController) UpdateEditablePoem(ctx *fiber.Ctx) error {
	var req dto.UpdateEditablePoemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := c.sessionService.SetEditablePoem(ctx.Params("id"), req.Text); err != nil {
		return mapSessionError(err)
	}
	return c.snapshot(ctx, "Success update poem")
}

func (c *sessionController) StartArtlessMode(ctx *fiber.Ctx) error {
	if err := c.sessionService.StartArtlessMode(ctx.Params("id")); err != nil {
		return mapSessionError(err)
	}
	return c.snapshot(ctx, "Success start artless mode")
}

func (c *sessionController) FlipBackToEditor(ctx *fiber.Ctx) error {
	if err := c.sessionService.FlipBackToEditor(ctx.Params("id")); err != nil {
		return mapSessionError(err)
	}
	return c.snapshot(ctx, "Success flip to editor")
}

func (c *sessionController) FlipToViewLastPoem(ctx *fiber.Ctx) error {
	if err := c.sessionService.FlipToViewLastPoem(ctx.Params("id")); err != nil {
		return mapSessionError(err)
	}
	return c.snapshot(ctx, "Success flip to poem")
}

func (c *sessionController) LoadLikedPoem(ctx *fiber.Ctx) error {
	var req dto.LikedPoemActionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	likedPoemId, err := uuid.Parse(req.LikedPoemId)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid liked poem id")
	}
	if err := c.sessionService.LoadLikedPoem(ctx.Context(), ctx.Params("id"), likedPoemId); err != nil {
		return mapSessionError(err)
	}
	return c.snapshot(ctx, "Success load liked poem")
}

func (c *sessionController) RecreatePoem(ctx *fiber.Ctx) error {
	var req dto.LikedPoemActionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	likedPoemId, err := uuid.Parse(req.LikedPoemId)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid liked poem id")
	}
	if err := c.sessionService.RecreatePoem(ctx.Context(), ctx.Params("id"), likedPoemId); err != nil {
		return mapSessionError(err)
	}
	return c.snapshot(ctx, "Success recreate poem")
}

func (c *sessionController) GenerationLogs(ctx *fiber.Ctx) error {
	snap, err := c.sessionService.Snapshot(ctx.Params("id"))
	if err != nil {
		return mapSessionError(err)
	}
	res := dto.GenerationLogsResponse{
		KeywordLog: snap.KeywordLog,
		PoemLog:    snap.PoemLog,
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show generation logs", res))
}
