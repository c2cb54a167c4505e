package router

import (
	"github.com/labstack/echo/v4"

	"campusmarket/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	SetupHealthRouter(e)
	SetupListingRouter(e, authMiddleware)
	SetupOfferRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware)
}
