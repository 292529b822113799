package handlers

import (
	"errors"
	"io"
	"strconv"

	"github.com/Sujal-Mishra/cleanvit/internal/adapters/http/middleware"
	"github.com/Sujal-Mishra/cleanvit/internal/adapters/persistence/models"
	"github.com/Sujal-Mishra/cleanvit/internal/core/domain"
	"github.com/Sujal-Mishra/cleanvit/internal/core/services"
	"github.com/Sujal-Mishra/cleanvit/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// maxProofImageBytes caps uploaded scan images at 8 MiB
const maxProofImageBytes = 8 << 20

// RequestHandler handles cleaning request endpoints
type RequestHandler struct {
	requestService *services.RequestService
}

// NewRequestHandler creates a new request handler
func NewRequestHandler(requestService *services.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// Create handles request creation
// @Summary Create cleaning request
// @Description Create a pending cleaning request for the caller's room
// @Tags Requests
// @Accept json
// @Produce json
// @Param body body services.CreateRequestInput true "Request data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /requests [post]
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	var input services.CreateRequestInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.BadRequest(c, validationMessage(err))
	}

	request, err := h.requestService.Create(c.Context(), claims.UserID, &input)
	if err != nil {
		return h.mapRequestError(c, err)
	}

	return response.Created(c, "Request created successfully", request.ToResponse())
}

// List returns the role-scoped request list
// @Summary List requests
// @Description Students see their group's requests, cleaners see their accepted jobs
// @Tags Requests
// @Produce json
// @Success 200 {object} response.Response
// @Router /requests [get]
func (h *RequestHandler) List(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	var (
		requests []*models.Request
		err      error
	)
	switch domain.Role(claims.Role) {
	case domain.RoleStudent:
		requests, err = h.requestService.ListForStudent(c.Context(), claims.UserID)
	case domain.RoleCleaner:
		requests, err = h.requestService.ListForCleaner(c.Context(), claims.UserID)
	default:
		return response.Forbidden(c, "Access denied")
	}
	if err != nil {
		return h.mapRequestError(c, err)
	}

	return response.Success(c, "Requests retrieved successfully", toRequestResponses(requests))
}

// ListPending returns pending requests in the cleaner's assigned blocks
// @Summary List pending requests
// @Tags Requests
// @Produce json
// @Success 200 {object} response.Response
// @Router /requests/pending [get]
func (h *RequestHandler) ListPending(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	requests, err := h.requestService.ListPending(c.Context(), claims.UserID)
	if err != nil {
		return h.mapRequestError(c, err)
	}

	return response.Success(c, "Pending requests retrieved successfully", toRequestResponses(requests))
}

// Accept assigns a pending request to the caller
// @Summary Accept request
// @Tags Requests
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /requests/{id}/accept [put]
func (h *RequestHandler) Accept(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := parseRequestID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	request, err := h.requestService.Accept(c.Context(), id, claims.UserID)
	if err != nil {
		return h.mapRequestError(c, err)
	}

	return response.Success(c, "Request accepted", request.ToResponse())
}

// CompleteRequest represents manual completion input
type CompleteRequest struct {
	Proof string `json:"proof" validate:"required"`
}

// Complete marks a request done using a manually entered proof code
// @Summary Complete request with manual proof
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param body body CompleteRequest true "Proof code"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /requests/{id}/complete [put]
func (h *RequestHandler) Complete(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := parseRequestID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	var req CompleteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.BadRequest(c, validationMessage(err))
	}

	request, err := h.requestService.CompleteManual(c.Context(), id, claims.UserID, req.Proof)
	if err != nil {
		return h.mapRequestError(c, err)
	}

	return response.Success(c, "Request completed", request.ToResponse())
}

// CompleteScan marks a request done from an uploaded QR image
// @Summary Complete request by scanning QR proof
// @Tags Requests
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Request ID"
// @Param qr_image formData file true "QR image"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /requests/{id}/complete-scan [put]
func (h *RequestHandler) CompleteScan(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := parseRequestID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	fileHeader, err := c.FormFile("qr_image")
	if err != nil {
		return response.BadRequest(c, "QR image file is required")
	}
	if fileHeader.Size > maxProofImageBytes {
		return response.BadRequest(c, "QR image too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.BadRequest(c, "Could not read QR image")
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		return response.BadRequest(c, "Could not read QR image")
	}

	request, err := h.requestService.CompleteByScan(c.Context(), id, claims.UserID, imageBytes)
	if err != nil {
		return h.mapRequestError(c, err)
	}

	return response.Success(c, "Request completed", request.ToResponse())
}

// Rate records rating and feedback on a completed request
// @Summary Rate completed request
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param body body services.RateInput true "Rating"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /requests/{id}/rate [put]
func (h *RequestHandler) Rate(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := parseRequestID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	var input services.RateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.BadRequest(c, validationMessage(err))
	}

	if err := h.requestService.Rate(c.Context(), id, claims.UserID, &input); err != nil {
		return h.mapRequestError(c, err)
	}

	return response.Success(c, "Rating submitted", nil)
}

func parseRequestID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func toRequestResponses(requests []*models.Request) []*models.RequestResponse {
	responses := make([]*models.RequestResponse, len(requests))
	for i, r := range requests {
		responses[i] = r.ToResponse()
	}
	return responses
}

// mapRequestError maps lifecycle errors to HTTP responses. Unknown errors
// surface as a generic 500 so datastore details never reach callers.
func (h *RequestHandler) mapRequestError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		return response.Conflict(c, "Request is not in a valid state for this action")
	case errors.Is(err, domain.ErrProofMismatch):
		return response.BadRequest(c, "Proof does not match this request")
	case errors.Is(err, domain.ErrNoProofFound):
		return response.BadRequest(c, "No QR code found in the image")
	case errors.Is(err, domain.ErrInvalidImage):
		return response.BadRequest(c, "Invalid image file")
	case errors.Is(err, domain.ErrInvalidRating):
		return response.BadRequest(c, "Rating must be between 1 and 5")
	case errors.Is(err, domain.ErrOutOfScope):
		return response.Forbidden(c, "Request is outside your assigned blocks")
	case errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized(c, "You are not allowed to perform this action")
	case errors.Is(err, domain.ErrCleanerInactive):
		return response.Forbidden(c, "Account is inactive")
	case errors.Is(err, domain.ErrRequestNotFound), errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, "Request not found")
	default:
		return response.InternalServerError(c, "Something went wrong")
	}
}
