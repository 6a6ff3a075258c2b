package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/geosql-kit/internal/pkg/utils"
	"github.com/geosql-kit/internal/pkg/validator"
	"github.com/geosql-kit/internal/usecase"
	"github.com/geosql-kit/internal/usecase/dto"
)

// SearchHandler exposes spatial place search over HTTP.
type SearchHandler struct {
	searchUC *usecase.SearchUseCase
	logger   *zap.Logger
}

func NewSearchHandler(searchUC *usecase.SearchUseCase, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		searchUC: searchUC,
		logger:   logger,
	}
}

// SearchNearby handles POST /api/v1/search/nearby. The body carries a
// loose shape description, a radius (number of meters or "2km" style
// string), optional categories, limit and response unit.
func (h *SearchHandler) SearchNearby(c *fiber.Ctx) error {
	var req dto.NearbySearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.searchUC.SearchNearby(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}

// SearchWithin handles POST /api/v1/search/within.
func (h *SearchHandler) SearchWithin(c *fiber.Ctx) error {
	var req dto.WithinSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.searchUC.SearchWithin(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}

// GetPlace handles GET /api/v1/places/:id.
func (h *SearchHandler) GetPlace(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid place ID"})
	}

	place, err := h.searchUC.GetPlace(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, place, nil)
}
