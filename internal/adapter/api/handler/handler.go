package handler

import (
	"sharespace/internal/usecase"
)

var (
	authHandler     *AuthHandler
	userHandler     *UserHandler
	productHandler  *ProductHandler
	feedbackHandler *FeedbackHandler
	ratingHandler   *RatingHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	catalogUseCase *usecase.CatalogUseCase,
	feedbackUseCase *usecase.FeedbackUseCase,
	ratingUseCase *usecase.RatingUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	productHandler = NewProductHandler(catalogUseCase)
	feedbackHandler = NewFeedbackHandler(feedbackUseCase)
	ratingHandler = NewRatingHandler(ratingUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetProductHandler() *ProductHandler {
	return productHandler
}

func GetFeedbackHandler() *FeedbackHandler {
	return feedbackHandler
}

func GetRatingHandler() *RatingHandler {
	return ratingHandler
}
