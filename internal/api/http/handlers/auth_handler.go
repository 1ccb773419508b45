package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/emsdev/ems-service/internal/api/dto"
	"github.com/emsdev/ems-service/internal/auth"
	"github.com/emsdev/ems-service/internal/service"
	apperrors "github.com/emsdev/ems-service/pkg/util/errorutil"
)

// AuthHandler exposes sign up, sign in and session endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	session, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Company:  req.Company,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": h.authResponse(session)})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	session, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.authResponse(session)})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"user":       userResponse(principal.User),
		"navigation": h.auth.Navigation(principal.Role()),
	}})
}

// Logout handles POST /auth/logout. The presented token stops working immediately.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.auth.Logout(c.UserContext(), principal.Claims); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Navigation handles GET /auth/navigation.
func (h *AuthHandler) Navigation(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.auth.Navigation(actor.Role)})
}

func (h *AuthHandler) authResponse(s *service.Session) dto.AuthResponse {
	return dto.AuthResponse{
		Token:      s.Token.Token,
		ExpiresAt:  s.Token.ExpiresAt,
		User:       userResponse(s.User),
		Navigation: h.auth.Navigation(s.User.Role),
	}
}
