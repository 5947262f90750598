package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"sharespace/internal/domain/entity"
	"sharespace/internal/usecase"
	"sharespace/pkg/errors"
	"sharespace/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

type registerRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Name       string `json:"name" validate:"required,min=2"`
	Phone      string `json:"phone" validate:"omitempty"`
	College    string `json:"college" validate:"omitempty"`
	Department string `json:"department" validate:"omitempty"`
	RollNumber string `json:"roll_number" validate:"omitempty"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	Phone      string  `json:"phone,omitempty"`
	College    string  `json:"college,omitempty"`
	Department string  `json:"department,omitempty"`
	RollNumber string  `json:"roll_number,omitempty"`
	Role       string  `json:"role"`
	Rating     float64 `json:"seller_rating"`
	Reviews    int     `json:"seller_review_count"`
	Verified   bool    `json:"verified"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func toUserResponse(user *entity.User) userResponse {
	return userResponse{
		ID:         user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Phone:      user.Phone,
		College:    user.College,
		Department: user.Department,
		RollNumber: user.RollNumber,
		Role:       user.Role,
		Rating:     user.SellerRating,
		Reviews:    user.SellerReviewCount,
		Verified:   user.Verified,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Register(c.Request().Context(), usecase.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		Name:       req.Name,
		Phone:      req.Phone,
		College:    req.College,
		Department: req.Department,
		RollNumber: req.RollNumber,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, authResponse{
		Token: result.Token,
		User:  toUserResponse(result.User),
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, authResponse{
		Token: result.Token,
		User:  toUserResponse(result.User),
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.authUseCase.Logout(c.Request().Context(), uid); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Successfully logged out",
	})
}

// RestoreSession rebuilds the profile from a persisted ID token so a client
// can resume without re-entering credentials.
func (h *AuthHandler) RestoreSession(c echo.Context) error {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return response.Error(c, errors.Unauthorized("Authorization header required", nil))
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return response.Error(c, errors.Unauthorized("Invalid authorization format", nil))
	}

	user, err := h.authUseCase.RestoreSession(c.Request().Context(), parts[1])
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, toUserResponse(user))
}
