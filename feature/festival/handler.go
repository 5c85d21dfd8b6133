package festival

import (
	"festival-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for festival data.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the festival routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/festivals", h.HandleListUpcoming)
	app.Get("/festivals/:slug", h.HandleGetFestival)
	app.Get("/artists/:slug", h.HandleGetArtist)
	app.Get("/runs", h.HandleRecentRuns)
}

// HandleListUpcoming serves upcoming festivals ordered by start date.
func (h *Handler) HandleListUpcoming(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.log, c)

	festivals, err := h.service.ListUpcoming(c.Context(), c.QueryInt("limit", 50))
	if err != nil {
		l.Error("Failed to list festivals", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list festivals"})
	}

	return c.JSON(festivals)
}

// HandleGetFestival serves one festival by slug, with venue and lineup.
func (h *Handler) HandleGetFestival(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.log, c)
	slug := c.Params("slug")

	festival, err := h.service.GetFestivalBySlug(c.Context(), slug)
	if err != nil {
		l.Error("Failed to get festival", zap.String("slug", slug), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get festival"})
	}
	if festival == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "festival not found"})
	}

	return c.JSON(festival)
}

// HandleGetArtist serves one artist by slug, with spotlight clips.
func (h *Handler) HandleGetArtist(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.log, c)
	slug := c.Params("slug")

	artist, err := h.service.GetArtistBySlug(c.Context(), slug)
	if err != nil {
		l.Error("Failed to get artist", zap.String("slug", slug), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get artist"})
	}
	if artist == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "artist not found"})
	}

	return c.JSON(artist)
}

// HandleRecentRuns serves the newest sync run logs.
func (h *Handler) HandleRecentRuns(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.log, c)

	runs, err := h.service.RecentRuns(c.Context(), c.QueryInt("limit", 20))
	if err != nil {
		l.Error("Failed to list runs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list runs"})
	}

	return c.JSON(runs)
}
