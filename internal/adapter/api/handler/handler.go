package handler

import (
	"campusmarket/internal/usecase"
)

var (
	listingHandler *ListingHandler
	offerHandler   *OfferHandler
	userHandler    *UserHandler
	healthHandler  *HealthHandler
)

func Setup(
	listingUseCase *usecase.ListingUseCase,
	offerUseCase *usecase.OfferUseCase,
	userUseCase *usecase.UserUseCase,
) {
	listingHandler = NewListingHandler(listingUseCase)
	offerHandler = NewOfferHandler(offerUseCase)
	userHandler = NewUserHandler(userUseCase)
	healthHandler = NewHealthHandler()
}

func GetListingHandler() *ListingHandler {
	return listingHandler
}

func GetOfferHandler() *OfferHandler {
	return offerHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}
