package handlers

import (
	"github.com/Sujal-Mishra/cleanvit/internal/adapters/http/middleware"
	"github.com/Sujal-Mishra/cleanvit/internal/core/services"
	"github.com/Sujal-Mishra/cleanvit/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// StudentHandler handles student profile endpoints
type StudentHandler struct {
	studentService *services.StudentService
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(studentService *services.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// Roommates lists everyone sharing the caller's room group
// @Summary List roommates
// @Tags Student
// @Produce json
// @Success 200 {object} response.Response
// @Router /student/roommates [get]
func (h *StudentHandler) Roommates(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	roommates, err := h.studentService.Roommates(c.Context(), claims.UserID)
	if err != nil {
		return response.InternalServerError(c, "Something went wrong")
	}

	return response.Success(c, "Roommates retrieved successfully", roommates)
}
