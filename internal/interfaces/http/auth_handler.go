package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wholesale-api/internal/application/auth"
	"github.com/jhoicas/wholesale-api/internal/application/dto"
)

// AuthHandler registration, login and password recovery.
type AuthHandler struct {
	uc        *auth.AuthUseCase
	publicURL string
}

// NewAuthHandler builds the handler. publicURL is the frontend base used in reset links when the request has no Origin.
func NewAuthHandler(uc *auth.AuthUseCase, publicURL string) *AuthHandler {
	return &AuthHandler{uc: uc, publicURL: publicURL}
}

// Register godoc
// @Summary      Register an account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "firstname, lastname, email, password, role"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.AuthResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Verify godoc
// @Summary      Verify a token
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.VerifyResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/verify [get]
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	token, errResp := bearerToken(c)
	if errResp != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(errResp)
	}
	out, err := h.uc.Verify(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "invalid or expired token"})
	}
	return c.JSON(out)
}

// ForgotPassword godoc
// @Summary      Email a password reset link
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ForgotPasswordRequest  true  "email"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in dto.ForgotPasswordRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	base := c.Get(fiber.HeaderOrigin)
	if base == "" {
		base = h.publicURL
	}
	if err := h.uc.ForgotPassword(c.UserContext(), in.Email, base); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Status: true, Message: "Password reset link sent to your email"})
}

// ResetPassword godoc
// @Summary      Set a new password with a reset token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token  path  string                    true  "reset token"
// @Param        body   body  dto.ResetPasswordRequest  true  "password"
// @Success      200    {object}  dto.MessageResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/auth/reset-password/{token} [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	if err := h.uc.ResetPassword(c.UserContext(), c.Params("token"), in); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Status: true, Message: "Password has been reset"})
}

// UpdateProfile godoc
// @Summary      Update the caller's profile
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "firstname, lastname, email"
// @Success      200   {object}  dto.ProfileResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/update-profile [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateProfile(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdatePassword godoc
// @Summary      Change the caller's password
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdatePasswordRequest  true  "password, newPassword"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/update-password [put]
func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	var in dto.UpdatePasswordRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	if err := h.uc.UpdatePassword(c.UserContext(), GetUserID(c), in); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Status: true, Message: "Password updated"})
}
