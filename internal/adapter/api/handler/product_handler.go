package handler

import (
	"github.com/labstack/echo/v4"

	"sharespace/internal/usecase"
	"sharespace/pkg/errors"
	"sharespace/pkg/response"
	"sharespace/pkg/utils"
)

type ProductHandler struct {
	catalogUseCase *usecase.CatalogUseCase
}

func NewProductHandler(catalogUseCase *usecase.CatalogUseCase) *ProductHandler {
	return &ProductHandler{
		catalogUseCase: catalogUseCase,
	}
}

type createProductRequest struct {
	Title       string  `json:"title" validate:"required,min=2"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category" validate:"required"`
	Condition   string  `json:"condition" validate:"required"`
	ImageURL    string  `json:"image_url"`
}

type updateProductRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=2"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Category    *string  `json:"category"`
	Condition   *string  `json:"condition"`
	ImageURL    *string  `json:"image_url"`
	Sold        *bool    `json:"sold"`
}

type setProductStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active blocked"`
}

func (h *ProductHandler) isAdmin(c echo.Context) bool {
	flag, ok := c.Get("isAdmin").(bool)
	return ok && flag
}

// List serves the cached catalog. Blocked products are filtered out for
// everyone except their owner and administrators.
func (h *ProductHandler) List(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	views := h.catalogUseCase.ListVisible(uid, h.isAdmin(c))

	total := int64(len(views))
	start := pagination.Offset
	if start > len(views) {
		start = len(views)
	}
	end := start + pagination.PageSize
	if end > len(views) {
		end = len(views)
	}

	return response.Paginated(c, views[start:end], total, pagination.Page, pagination.PageSize)
}

func (h *ProductHandler) GetByID(c echo.Context) error {
	view, err := h.catalogUseCase.ByID(c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, view)
}

func (h *ProductHandler) ListMine(c echo.Context) error {
	uid := c.Get("uid").(string)

	return response.Success(c, h.catalogUseCase.BySeller(uid))
}

func (h *ProductHandler) Create(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.catalogUseCase.Add(c.Request().Context(), uid, usecase.CreateProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Condition:   req.Condition,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, product)
}

func (h *ProductHandler) Update(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.catalogUseCase.Update(c.Request().Context(), uid, h.isAdmin(c), c.Param("id"), usecase.UpdateProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Condition:   req.Condition,
		ImageURL:    req.ImageURL,
		Sold:        req.Sold,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.catalogUseCase.Remove(c.Request().Context(), uid, h.isAdmin(c), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Product deleted",
	})
}

// SetStatus blocks or unblocks a listing. The route sits behind the admin
// middleware.
func (h *ProductHandler) SetStatus(c echo.Context) error {
	var req setProductStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.catalogUseCase.SetStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}
