package handler

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"bookshelf/internal/auth"
	apperrors "bookshelf/internal/errors"
	"bookshelf/internal/model"
	"bookshelf/internal/service"
	"bookshelf/internal/validation"
)

// UserHandler handles registration, profile and confirmation endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// RegisterRequest represents the registration form.
type RegisterRequest struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// ConfirmEmailRequest carries the submitted confirmation code.
type ConfirmEmailRequest struct {
	Code int `json:"code"`
}

// ChangePasswordRequest carries the password change form.
type ChangePasswordRequest struct {
	Password           string `json:"password"`
	NewPassword        string `json:"new_password"`
	NewPasswordConfirm string `json:"new_password_confirm"`
}

// UpdateProfileRequest is a partial profile update; omitted fields stay as is.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
}

// ProfileResponse is the public view of a user.
type ProfileResponse struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// MessageResponse wraps a human-readable acknowledgment.
type MessageResponse struct {
	Message string `json:"message"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration form"
// @Success 201 {object} service.RegisteredUser
// @Failure 400 {object} validation.Errors
// @Router /auth/registration [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	created, err := h.svc.Register(c.Request().Context(), service.RegisterInput{
		FullName:        req.FullName,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ProfileResponse{FullName: user.FullName, Email: user.Email})
}

// UpdateProfile godoc
// @Summary Update the authenticated user's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Fields to update"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} validation.Errors
// @Router /profile [patch]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	updated, err := h.svc.UpdateProfile(c.Request().Context(), user, service.UpdateProfileInput{
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, ProfileResponse{FullName: updated.FullName, Email: updated.Email})
}

// ConfirmEmail godoc
// @Summary Confirm the authenticated user's email with a code
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ConfirmEmailRequest true "6-digit code"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} validation.Errors
// @Router /email/confirm [patch]
func (h *UserHandler) ConfirmEmail(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	var req ConfirmEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	message, err := h.svc.ConfirmEmail(c.Request().Context(), user, req.Code)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: message})
}

// ChangePassword godoc
// @Summary Change the authenticated user's password
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "Password change form"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} validation.Errors
// @Router /change-password [patch]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	message, err := h.svc.ChangePassword(c.Request().Context(), user, req.Password, req.NewPassword, req.NewPasswordConfirm)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: message})
}

// currentUser resolves the user record from the verified token claims.
func (h *UserHandler) currentUser(c echo.Context) (*model.User, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	user, err := h.svc.FindByEmail(c.Request().Context(), claims.Email)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
	}
	return user, nil
}

// respondServiceError renders field-keyed validation errors as a 400 body and
// maps the remaining domain errors through the shared table.
func respondServiceError(c echo.Context, err error) error {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		return c.JSON(http.StatusBadRequest, fieldErrs)
	}
	httpErr := apperrors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}
