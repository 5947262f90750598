package handler

import (
	"github.com/labstack/echo/v4"

	"sharespace/internal/usecase"
	"sharespace/pkg/errors"
	"sharespace/pkg/response"
)

type RatingHandler struct {
	ratingUseCase *usecase.RatingUseCase
}

func NewRatingHandler(ratingUseCase *usecase.RatingUseCase) *RatingHandler {
	return &RatingHandler{
		ratingUseCase: ratingUseCase,
	}
}

type rateSellerRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

func (h *RatingHandler) RateSeller(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req rateSellerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	rating, err := h.ratingUseCase.RateSeller(c.Request().Context(), uid, c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, rating)
}

func (h *RatingHandler) ListForSeller(c echo.Context) error {
	ratings, err := h.ratingUseCase.ListForSeller(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, ratings)
}
