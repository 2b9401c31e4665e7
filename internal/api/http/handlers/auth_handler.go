package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/agate-ltd/agency-crm/internal/api/dto"
	"github.com/agate-ltd/agency-crm/internal/auth"
	"github.com/agate-ltd/agency-crm/internal/service"
	apperrors "github.com/agate-ltd/agency-crm/pkg/util"
)

// AuthHandler exposes signup, sign-in, refresh and sign-out.
type AuthHandler struct {
	authService *service.AuthService
	cookie      auth.CookieOptions
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cookie auth.CookieOptions) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

// SignUp handles POST /api/auth/signup.
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	staff, err := h.authService.SignUp(requestContext(c), service.SignUpInput{
		StaffID:   req.StaffID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
		Roles:     req.RoleFlags.Roles(),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Staff account created successfully",
		"data":    dto.NewStaffResponse(staff),
	})
}

// SignIn handles POST /api/auth/signin.
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	staff, session, err := h.authService.SignIn(requestContext(c), req.StaffID, req.Password)
	if err != nil {
		return err
	}

	auth.SetSessionCookie(c, h.cookie, session.Token)
	return c.JSON(dto.SignInResponse{
		Success:          true,
		StaffResponse:    dto.NewStaffResponse(staff),
		SessionExpiresAt: session.ExpiresAt.UnixMilli(),
	})
}

// Refresh handles POST /api/auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgNoCredential)
	}
	session, err := h.authService.Refresh(requestContext(c), claims)
	if err != nil {
		return err
	}

	auth.SetSessionCookie(c, h.cookie, session.Token)
	return c.JSON(dto.RefreshResponse{
		Success:          true,
		SessionExpiresAt: session.ExpiresAt.UnixMilli(),
	})
}

// SignOut handles POST /api/user/signout. It never fails and needs no session.
func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	auth.ClearSessionCookie(c, h.cookie)
	return respondMessage(c, "Staff has been signed out")
}
