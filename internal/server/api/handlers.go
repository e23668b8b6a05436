package api

import (
	"net/http"

	"github.com/dmitrijs2005/assocportal/internal/logging"
	"github.com/dmitrijs2005/assocportal/internal/server/models"
	"github.com/dmitrijs2005/assocportal/internal/server/services"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	svc    UserService
	logger logging.Logger
}

func NewAuthHandler(svc UserService, logger logging.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=HABITANT ASSOCIATION"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Code     string `json:"code" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type authResponse struct {
	AccessToken string            `json:"accessToken"`
	User        models.PublicUser `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}

func newAuthResponse(res *services.AuthResult) authResponse {
	return authResponse{AccessToken: res.AccessToken, User: res.User}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newAuthResponse(res))
}

// Register handles POST /auth/register and signs the new account in.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.svc.Register(c.Request().Context(), req.Email, req.Password, models.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newAuthResponse(res))
}

// ForgotPassword handles POST /auth/forgot-password. The answer is the same
// whether or not the account exists. There is no mailer, so the issued code
// goes to the server log.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	code, err := h.svc.ForgotPassword(ctx, req.Email)
	if err != nil {
		return err
	}
	if code != "" {
		h.logger.Info(ctx, "password reset code issued", "email", req.Email, "code", code)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "if the account exists, a reset code has been issued"})
}

// ResetPassword handles POST /auth/reset-password.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.svc.ResetPassword(c.Request().Context(), req.Email, req.Code, req.Password); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Me handles GET /users/me behind Auth.
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	me, err := h.svc.Me(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, me)
}

// Liveness handles GET /health.
func Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
