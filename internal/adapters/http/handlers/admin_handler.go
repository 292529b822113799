package handlers

import (
	"errors"

	"github.com/Sujal-Mishra/cleanvit/internal/adapters/persistence/models"
	"github.com/Sujal-Mishra/cleanvit/internal/core/domain"
	"github.com/Sujal-Mishra/cleanvit/internal/core/services"
	"github.com/Sujal-Mishra/cleanvit/internal/pkg/pagination"
	"github.com/Sujal-Mishra/cleanvit/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles admin endpoints
type AdminHandler struct {
	adminService *services.AdminService
	statsService *services.StatsService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *services.AdminService, statsService *services.StatsService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		statsService: statsService,
	}
}

// GetStats returns system-wide request statistics
// @Summary Admin dashboard statistics
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/stats [get]
func (h *AdminHandler) GetStats(c *fiber.Ctx) error {
	overview, err := h.statsService.GetAdminOverview(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Something went wrong")
	}

	return response.Success(c, "Stats retrieved successfully", overview)
}

// ListCleaners returns a paginated cleaner roster
// @Summary List cleaners
// @Tags Admin
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /admin/cleaners [get]
func (h *AdminHandler) ListCleaners(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	cleaners, total, err := h.adminService.ListCleaners(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Something went wrong")
	}

	responses := make([]*models.CleanerResponse, len(cleaners))
	for i, cleaner := range cleaners {
		responses[i] = cleaner.ToResponse()
	}

	return response.Success(c, "Cleaners retrieved successfully",
		pagination.NewResponse(responses, params, total))
}

// AddCleaner registers a new cleaner account
// @Summary Add cleaner
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body services.AddCleanerInput true "Cleaner data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/cleaners [post]
func (h *AdminHandler) AddCleaner(c *fiber.Ctx) error {
	var input services.AddCleanerInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.BadRequest(c, validationMessage(err))
	}

	cleaner, err := h.adminService.AddCleaner(c.Context(), &input)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return response.BadRequest(c, "Employee ID already registered")
		}
		return response.InternalServerError(c, "Something went wrong")
	}

	return response.Created(c, "Cleaner added successfully", cleaner.ToResponse())
}

// GetCleanerStats returns one cleaner's performance statistics
// @Summary Cleaner statistics
// @Tags Admin
// @Produce json
// @Param id path int true "Cleaner ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/cleaners/{id}/stats [get]
func (h *AdminHandler) GetCleanerStats(c *fiber.Ctx) error {
	id, err := parseRequestID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid cleaner ID")
	}

	stats, err := h.statsService.GetCleanerStats(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Cleaner not found")
		}
		return response.InternalServerError(c, "Something went wrong")
	}

	return response.Success(c, "Stats retrieved successfully", stats)
}
