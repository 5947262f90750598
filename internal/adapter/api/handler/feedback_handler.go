package handler

import (
	"github.com/labstack/echo/v4"

	"sharespace/internal/usecase"
	"sharespace/pkg/errors"
	"sharespace/pkg/response"
)

type FeedbackHandler struct {
	feedbackUseCase *usecase.FeedbackUseCase
}

func NewFeedbackHandler(feedbackUseCase *usecase.FeedbackUseCase) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackUseCase: feedbackUseCase,
	}
}

type submitFeedbackRequest struct {
	Subject  string `json:"subject"`
	Message  string `json:"message" validate:"required"`
	Category string `json:"category" validate:"required"`
}

type setFeedbackStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending reviewed resolved"`
}

func (h *FeedbackHandler) Submit(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req submitFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	feedback, err := h.feedbackUseCase.Submit(c.Request().Context(), uid, req.Subject, req.Message, req.Category)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, feedback)
}

func (h *FeedbackHandler) List(c echo.Context) error {
	views, err := h.feedbackUseCase.List(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, views)
}

func (h *FeedbackHandler) SetStatus(c echo.Context) error {
	var req setFeedbackStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	feedback, err := h.feedbackUseCase.SetStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, feedback)
}

func (h *FeedbackHandler) Delete(c echo.Context) error {
	if err := h.feedbackUseCase.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Feedback deleted",
	})
}
