package handler

import (
	"io"

	"github.com/labstack/echo/v4"

	"sharespace/internal/usecase"
	"sharespace/pkg/errors"
	"sharespace/pkg/response"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type createConversationRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
	ProductID   string `json:"product_id"`
}

type editMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

type typingRequest struct {
	IsTyping bool `json:"is_typing"`
}

func (h *ChatHandler) CreateConversation(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req createConversationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	conversation, err := h.chatUseCase.EnsureConversation(c.Request().Context(), uid, req.RecipientID, req.ProductID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, conversation)
}

func (h *ChatHandler) ListConversations(c echo.Context) error {
	uid := c.Get("uid").(string)

	views, err := h.chatUseCase.ListForUser(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, views)
}

func (h *ChatHandler) GetMessages(c echo.Context) error {
	uid := c.Get("uid").(string)

	views, err := h.chatUseCase.LoadMessages(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, views)
}

// SendMessage accepts multipart form data so text and an optional image can
// travel in one request. Fields: text, image.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	uid := c.Get("uid").(string)

	input := usecase.SendMessageInput{
		ConversationID: c.Param("id"),
		Text:           c.FormValue("text"),
	}

	file, err := c.FormFile("image")
	if err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			return response.Error(c, errors.BadRequest("Failed to read image", err))
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			return response.Error(c, errors.BadRequest("Failed to read image", err))
		}

		input.ImageData = data
		input.ImageType = file.Header.Get("Content-Type")
	}

	view, err := h.chatUseCase.Send(c.Request().Context(), uid, input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, view)
}

func (h *ChatHandler) EditMessage(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req editMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	view, err := h.chatUseCase.Edit(c.Request().Context(), uid, c.Param("id"), c.Param("messageId"), req.Text)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, view)
}

func (h *ChatHandler) DeleteMessage(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.chatUseCase.Delete(c.Request().Context(), uid, c.Param("id"), c.Param("messageId")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Message deleted",
	})
}

func (h *ChatHandler) MarkMessageRead(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.chatUseCase.MarkRead(c.Request().Context(), uid, c.Param("id"), c.Param("messageId")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Message marked as read",
	})
}

func (h *ChatHandler) SetTyping(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req typingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	h.chatUseCase.SetTyping(uid, c.Param("id"), req.IsTyping)

	return response.Success(c, map[string]string{
		"message": "Typing status sent",
	})
}
