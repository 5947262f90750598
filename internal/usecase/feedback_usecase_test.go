package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharespace/internal/domain/entity"
)

func newFeedbackEnv(t *testing.T) (*FeedbackUseCase, *fakeFeedbackRepo) {
	t.Helper()

	userRepo := newFakeUserRepo()
	userRepo.add(&entity.User{ID: "user-1", Name: "Asha", Email: "asha@campus.edu"})

	feedbackRepo := newFakeFeedbackRepo()
	uc := NewFeedbackUseCase(feedbackRepo, userRepo)
	return uc, feedbackRepo
}

func TestSubmitStartsPending(t *testing.T) {
	uc, _ := newFeedbackEnv(t)
	ctx := context.Background()

	feedback, err := uc.Submit(ctx, "user-1", "Search", "Search is slow", "Platform")
	require.NoError(t, err)
	assert.Equal(t, entity.FeedbackStatusPending, feedback.Status)

	views, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Asha", views[0].AuthorName)
	assert.Equal(t, "asha@campus.edu", views[0].AuthorEmail)
}

func TestSubmitValidation(t *testing.T) {
	uc, _ := newFeedbackEnv(t)
	ctx := context.Background()

	_, err := uc.Submit(ctx, "user-1", "Subject", "", "Platform")
	assert.Error(t, err)

	_, err = uc.Submit(ctx, "user-1", "Subject", "Message", "Complaints")
	assert.Error(t, err)
}

func TestSetStatusMovesInAnyDirection(t *testing.T) {
	uc, _ := newFeedbackEnv(t)
	ctx := context.Background()

	feedback, err := uc.Submit(ctx, "user-1", "Bug", "Broken image on listings", "Product")
	require.NoError(t, err)

	updated, err := uc.SetStatus(ctx, feedback.ID, entity.FeedbackStatusResolved)
	require.NoError(t, err)
	assert.Equal(t, entity.FeedbackStatusResolved, updated.Status)

	// Reopening is allowed.
	updated, err = uc.SetStatus(ctx, feedback.ID, entity.FeedbackStatusPending)
	require.NoError(t, err)
	assert.Equal(t, entity.FeedbackStatusPending, updated.Status)

	_, err = uc.SetStatus(ctx, feedback.ID, "archived")
	assert.Error(t, err)
}

func TestRemoveFeedback(t *testing.T) {
	uc, feedbackRepo := newFeedbackEnv(t)
	ctx := context.Background()

	feedback, err := uc.Submit(ctx, "user-1", "Dup", "Duplicate report", "Other")
	require.NoError(t, err)

	require.NoError(t, uc.Remove(ctx, feedback.ID))

	_, err = feedbackRepo.GetByID(ctx, feedback.ID)
	assert.Error(t, err)

	assert.Error(t, uc.Remove(ctx, "missing"))
}
