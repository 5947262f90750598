package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharespace/internal/domain/entity"
)

func newCatalogEnv(t *testing.T) (*CatalogUseCase, *fakeProductRepo, *fakeUserRepo) {
	t.Helper()

	userRepo := newFakeUserRepo()
	userRepo.add(&entity.User{ID: "seller-1", Name: "Ravi", SellerRating: 4.5, SellerReviewCount: 2, Verified: true})
	userRepo.add(&entity.User{ID: "buyer-1", Name: "Asha"})

	productRepo := newFakeProductRepo()
	uc := NewCatalogUseCase(productRepo, userRepo)
	return uc, productRepo, userRepo
}

func TestAddJoinsSellerFields(t *testing.T) {
	uc, _, _ := newCatalogEnv(t)
	ctx := context.Background()

	product, err := uc.Add(ctx, "seller-1", CreateProductInput{
		Title:     "Calculus Textbook",
		Price:     250,
		Category:  "Books",
		Condition: "Good",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusActive, product.Status)

	view, err := uc.ByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ravi", view.SellerName)
	assert.Equal(t, 4.5, view.SellerRating)
	assert.True(t, view.SellerVerified)
}

func TestAddValidatesInput(t *testing.T) {
	uc, _, _ := newCatalogEnv(t)
	ctx := context.Background()

	_, err := uc.Add(ctx, "seller-1", CreateProductInput{
		Title:     "Broken",
		Price:     -1,
		Condition: "Good",
	})
	assert.Error(t, err)

	_, err = uc.Add(ctx, "seller-1", CreateProductInput{
		Title:     "Broken",
		Price:     10,
		Condition: "Mint",
	})
	assert.Error(t, err)
}

func TestBlockedProductVisibility(t *testing.T) {
	uc, _, userRepo := newCatalogEnv(t)
	ctx := context.Background()

	userRepo.roles["admin-1"] = "admin"
	userRepo.add(&entity.User{ID: "admin-1", Name: "Admin"})

	product, err := uc.Add(ctx, "seller-1", CreateProductInput{
		Title:     "Lamp",
		Price:     100,
		Category:  "Furniture",
		Condition: "Fair",
	})
	require.NoError(t, err)

	_, err = uc.SetStatus(ctx, product.ID, entity.ProductStatusBlocked)
	require.NoError(t, err)

	assert.Empty(t, uc.ListVisible("buyer-1", false))
	assert.Len(t, uc.ListVisible("seller-1", false), 1)
	assert.Len(t, uc.ListVisible("admin-1", true), 1)

	_, err = uc.SetStatus(ctx, product.ID, entity.ProductStatusActive)
	require.NoError(t, err)
	assert.Len(t, uc.ListVisible("buyer-1", false), 1)
}

func TestSetStatusValidatesValue(t *testing.T) {
	uc, _, _ := newCatalogEnv(t)
	ctx := context.Background()

	product, err := uc.Add(ctx, "seller-1", CreateProductInput{
		Title:     "Lamp",
		Price:     100,
		Condition: "Fair",
	})
	require.NoError(t, err)

	_, err = uc.SetStatus(ctx, product.ID, "suspended")
	assert.Error(t, err)
}

func TestUpdateOwnerOrAdminOnly(t *testing.T) {
	uc, _, _ := newCatalogEnv(t)
	ctx := context.Background()

	product, err := uc.Add(ctx, "seller-1", CreateProductInput{
		Title:     "Bicycle",
		Price:     1200,
		Condition: "Good",
	})
	require.NoError(t, err)

	newPrice := 1000.0
	_, err = uc.Update(ctx, "buyer-1", false, product.ID, UpdateProductInput{Price: &newPrice})
	assert.Error(t, err)

	updated, err := uc.Update(ctx, "seller-1", false, product.ID, UpdateProductInput{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, updated.Price)

	sold := true
	updated, err = uc.Update(ctx, "admin-x", true, product.ID, UpdateProductInput{Sold: &sold})
	require.NoError(t, err)
	assert.True(t, updated.Sold)
}

func TestRemoveOwnerOnly(t *testing.T) {
	uc, _, _ := newCatalogEnv(t)
	ctx := context.Background()

	product, err := uc.Add(ctx, "seller-1", CreateProductInput{
		Title:     "Desk",
		Price:     500,
		Condition: "Fair",
	})
	require.NoError(t, err)

	assert.Error(t, uc.Remove(ctx, "buyer-1", false, product.ID))
	require.NoError(t, uc.Remove(ctx, "seller-1", false, product.ID))

	_, err = uc.ByID(product.ID)
	assert.Error(t, err)
}

func TestChangeNotificationRefreshesSnapshot(t *testing.T) {
	uc, productRepo, _ := newCatalogEnv(t)
	ctx := context.Background()

	require.NoError(t, uc.Start(ctx))
	defer uc.Stop()

	assert.Empty(t, uc.ListVisible("buyer-1", false))

	// Simulate a remote write followed by a change-feed notification.
	require.NoError(t, productRepo.Create(ctx, &entity.Product{
		Title:    "Remote Lamp",
		Price:    80,
		SellerID: "seller-1",
		Status:   entity.ProductStatusActive,
	}))
	productRepo.fireChange()

	assert.Len(t, uc.ListVisible("buyer-1", false), 1)
}
