package handlers

import (
	"errors"

	"github.com/Sujal-Mishra/cleanvit/internal/core/domain"
	"github.com/Sujal-Mishra/cleanvit/internal/core/services"
	"github.com/Sujal-Mishra/cleanvit/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignupStudent handles direct student signup
// @Summary Student signup
// @Description Register a student account with an institutional email
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.SignupInput true "Signup data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/student/signup [post]
func (h *AuthHandler) SignupStudent(c *fiber.Ctx) error {
	var input services.SignupInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.BadRequest(c, validationMessage(err))
	}

	_, err := h.authService.SignupStudent(c.Context(), &input)
	if err != nil {
		return h.mapAuthError(c, err)
	}

	return response.Success(c, "Account created successfully", nil)
}

// OTPRequest represents an OTP signup request
type OTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RequestSignupOTP issues a signup OTP
// @Summary Request signup OTP
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body OTPRequest true "Email"
// @Success 200 {object} response.Response
// @Router /auth/student/signup-otp [post]
func (h *AuthHandler) RequestSignupOTP(c *fiber.Ctx) error {
	var req OTPRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.BadRequest(c, validationMessage(err))
	}

	code, err := h.authService.RequestSignupOTP(c.Context(), req.Email)
	if err != nil {
		return h.mapAuthError(c, err)
	}

	// No mail transport is wired: the code is returned for the caller's
	// delivery channel, matching the legacy behavior.
	return response.Success(c, "OTP sent", fiber.Map{"otp": code})
}

// VerifyOTPRequest represents OTP verification + account creation input
type VerifyOTPRequest struct {
	OTP string `json:"otp" validate:"required,len=6"`
	services.SignupInput
}

// VerifySignupOTP verifies an OTP and creates the account
// @Summary Verify signup OTP
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body VerifyOTPRequest true "OTP and profile"
// @Success 200 {object} response.Response
// @Router /auth/student/verify-otp [post]
func (h *AuthHandler) VerifySignupOTP(c *fiber.Ctx) error {
	var req VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.BadRequest(c, validationMessage(err))
	}

	_, err := h.authService.VerifySignupOTP(c.Context(), req.OTP, &req.SignupInput)
	if err != nil {
		return h.mapAuthError(c, err)
	}

	return response.Success(c, "Account created successfully", nil)
}

// StudentLoginRequest represents student login input
type StudentLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginStudent handles student login
// @Summary Student login
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body StudentLoginRequest true "Credentials"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/student/login [post]
func (h *AuthHandler) LoginStudent(c *fiber.Ctx) error {
	var req StudentLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.BadRequest(c, validationMessage(err))
	}

	result, err := h.authService.LoginStudent(c.Context(), req.Email, req.Password)
	if err != nil {
		return h.mapAuthError(c, err)
	}

	return response.Success(c, "Login successful", result)
}

// CleanerLoginRequest represents cleaner login input
type CleanerLoginRequest struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// LoginCleaner handles cleaner login
// @Summary Cleaner login
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body CleanerLoginRequest true "Credentials"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/cleaner/login [post]
func (h *AuthHandler) LoginCleaner(c *fiber.Ctx) error {
	var req CleanerLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.BadRequest(c, validationMessage(err))
	}

	result, err := h.authService.LoginCleaner(c.Context(), req.EmployeeID, req.Password)
	if err != nil {
		return h.mapAuthError(c, err)
	}

	return response.Success(c, "Login successful", result)
}

// AdminLoginRequest represents admin login input
type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginAdmin handles admin login
// @Summary Admin login
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body AdminLoginRequest true "Credentials"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/admin/login [post]
func (h *AuthHandler) LoginAdmin(c *fiber.Ctx) error {
	var req AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.BadRequest(c, validationMessage(err))
	}

	result, err := h.authService.LoginAdmin(c.Context(), req.Username, req.Password)
	if err != nil {
		return h.mapAuthError(c, err)
	}

	return response.Success(c, "Login successful", result)
}

// mapAuthError maps auth service errors to HTTP responses without leaking
// datastore detail to callers
func (h *AuthHandler) mapAuthError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized(c, "Invalid credentials")
	case errors.Is(err, domain.ErrInvalidEmailDomain):
		return response.BadRequest(c, "Please use a valid VIT email address")
	case errors.Is(err, domain.ErrEmailTaken):
		return response.BadRequest(c, "Email already registered")
	case errors.Is(err, domain.ErrInvalidOTP):
		return response.BadRequest(c, "Invalid or expired OTP")
	default:
		return response.InternalServerError(c, "Something went wrong")
	}
}
