package usecase

import (
	"context"
	"sync"

	"sharespace/internal/domain/entity"
	"sharespace/internal/domain/repository"
	"sharespace/pkg/errors"
	"sharespace/pkg/logger"
)

// ProductView is a product joined with its seller's display fields. The
// seller fields are resolved at refresh time, never stored on the product row.
type ProductView struct {
	*entity.Product
	SellerName        string  `json:"seller_name"`
	SellerRating      float64 `json:"seller_rating"`
	SellerReviewCount int     `json:"seller_review_count"`
	SellerVerified    bool    `json:"seller_verified"`
}

// CatalogUseCase mirrors the product collection in memory. Every remote
// change notification triggers a full re-fetch; readers always see the last
// complete snapshot.
type CatalogUseCase struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository

	mu        sync.RWMutex
	snapshot  []*ProductView
	stopWatch func()
}

func NewCatalogUseCase(productRepo repository.ProductRepository, userRepo repository.UserRepository) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

// Start performs the initial fetch and subscribes to the product change feed
// for the lifetime of ctx.
func (uc *CatalogUseCase) Start(ctx context.Context) error {
	if err := uc.Refresh(ctx); err != nil {
		return err
	}

	uc.stopWatch = uc.productRepo.Watch(ctx, func() {
		if err := uc.Refresh(context.Background()); err != nil {
			logger.Error("Catalog refresh after change notification failed: %v", err)
		}
	})

	return nil
}

// Stop releases the change-feed subscription.
func (uc *CatalogUseCase) Stop() {
	if uc.stopWatch != nil {
		uc.stopWatch()
		uc.stopWatch = nil
	}
}

// Refresh replaces the whole snapshot. No incremental patching; catalogs are
// small and a full swap keeps the cache trivially consistent.
func (uc *CatalogUseCase) Refresh(ctx context.Context) error {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return err
	}

	sellers := make(map[string]*entity.User)
	views := make([]*ProductView, 0, len(products))
	for _, product := range products {
		seller, ok := sellers[product.SellerID]
		if !ok {
			seller, err = uc.userRepo.GetByID(ctx, product.SellerID)
			if err != nil {
				logger.Warn("Seller %s missing for product %s: %v", product.SellerID, product.ID, err)
				seller = &entity.User{ID: product.SellerID}
			}
			sellers[product.SellerID] = seller
		}

		views = append(views, &ProductView{
			Product:           product,
			SellerName:        seller.Name,
			SellerRating:      seller.SellerRating,
			SellerReviewCount: seller.SellerReviewCount,
			SellerVerified:    seller.Verified,
		})
	}

	uc.mu.Lock()
	uc.snapshot = views
	uc.mu.Unlock()

	return nil
}

type CreateProductInput struct {
	Title       string
	Description string
	Price       float64
	Category    string
	Condition   string
	ImageURL    string
}

func (uc *CatalogUseCase) Add(ctx context.Context, sellerID string, input CreateProductInput) (*entity.Product, error) {
	if input.Price < 0 {
		return nil, errors.BadRequest("Price must not be negative", nil)
	}
	if !entity.ValidCondition(input.Condition) {
		return nil, errors.BadRequest("Invalid product condition", nil)
	}

	product := &entity.Product{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Condition:   input.Condition,
		ImageURL:    input.ImageURL,
		SellerID:    sellerID,
		Status:      entity.ProductStatusActive,
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	if err := uc.Refresh(ctx); err != nil {
		logger.Warn("Catalog refresh after add failed: %v", err)
	}

	return product, nil
}

type UpdateProductInput struct {
	Title       *string
	Description *string
	Price       *float64
	Category    *string
	Condition   *string
	ImageURL    *string
	Sold        *bool
}

func (uc *CatalogUseCase) Update(ctx context.Context, userID string, isAdmin bool, id string, input UpdateProductInput) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if product.SellerID != userID && !isAdmin {
		return nil, errors.Forbidden("Only the owner may edit this product", nil)
	}

	if input.Price != nil {
		if *input.Price < 0 {
			return nil, errors.BadRequest("Price must not be negative", nil)
		}
		product.Price = *input.Price
	}
	if input.Condition != nil {
		if !entity.ValidCondition(*input.Condition) {
			return nil, errors.BadRequest("Invalid product condition", nil)
		}
		product.Condition = *input.Condition
	}
	if input.Title != nil {
		product.Title = *input.Title
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.Sold != nil {
		product.Sold = *input.Sold
	}

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	if err := uc.Refresh(ctx); err != nil {
		logger.Warn("Catalog refresh after update failed: %v", err)
	}

	return product, nil
}

func (uc *CatalogUseCase) Remove(ctx context.Context, userID string, isAdmin bool, id string) error {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if product.SellerID != userID && !isAdmin {
		return errors.Forbidden("Only the owner may delete this product", nil)
	}

	if err := uc.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := uc.Refresh(ctx); err != nil {
		logger.Warn("Catalog refresh after remove failed: %v", err)
	}

	return nil
}

// SetStatus blocks or unblocks a product. Administrator-only; the HTTP layer
// gates the route and the handler passes the admin flag through.
func (uc *CatalogUseCase) SetStatus(ctx context.Context, id, status string) (*entity.Product, error) {
	if status != entity.ProductStatusActive && status != entity.ProductStatusBlocked {
		return nil, errors.BadRequest("Invalid product status", nil)
	}

	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Status = status

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	if err := uc.Refresh(ctx); err != nil {
		logger.Warn("Catalog refresh after status change failed: %v", err)
	}

	return product, nil
}

// ByID reads the last-refreshed snapshot. The result may be stale between a
// remote mutation and the next change notification.
func (uc *CatalogUseCase) ByID(id string) (*ProductView, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	for _, view := range uc.snapshot {
		if view.ID == id {
			return view, nil
		}
	}

	return nil, errors.NotFound("Product", nil)
}

func (uc *CatalogUseCase) BySeller(sellerID string) []*ProductView {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	var views []*ProductView
	for _, view := range uc.snapshot {
		if view.SellerID == sellerID {
			views = append(views, view)
		}
	}

	return views
}

// ListVisible returns the catalog as seen by a viewer: blocked products are
// hidden from buyers but remain visible to their owning seller and to
// administrators.
func (uc *CatalogUseCase) ListVisible(viewerID string, isAdmin bool) []*ProductView {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	var views []*ProductView
	for _, view := range uc.snapshot {
		if view.Status == entity.ProductStatusBlocked && !isAdmin && view.SellerID != viewerID {
			continue
		}
		views = append(views, view)
	}

	return views
}
