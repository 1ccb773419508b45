package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/emsdev/ems-service/internal/service"
	apperrors "github.com/emsdev/ems-service/pkg/util/errorutil"
)

// AnalyticsHandler serves the dashboard aggregates.
type AnalyticsHandler struct {
	service *service.AnalyticsService
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: analyticsService}
}

// Overview GET /analytics/overview?range=week|month|quarter|year.
func (h *AnalyticsHandler) Overview(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	window, ok := service.ParseHireWindow(c.Query("range"))
	if !ok {
		return apperrors.NewValidationError("range must be one of week, month, quarter, year", map[string]any{"range": c.Query("range")})
	}
	overview, err := h.service.Overview(c.UserContext(), actor, window)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": overviewResponse(overview)})
}
