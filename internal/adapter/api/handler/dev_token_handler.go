package handler

import (
	"github.com/labstack/echo/v4"

	"campusmarket/internal/infrastructure/firebase"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/response"
)

type DevTokenHandler struct {
	authClient *firebase.FirebaseAuthClient
}

func NewDevTokenHandler(authClient *firebase.FirebaseAuthClient) *DevTokenHandler {
	return &DevTokenHandler{
		authClient: authClient,
	}
}

// GenerateUserToken mints a custom token for manual testing. Only routed
// in development.
func (h *DevTokenHandler) GenerateUserToken(c echo.Context) error {
	uid := c.QueryParam("uid")
	if uid == "" {
		return response.Error(c, errors.BadRequest("uid query parameter is required", nil))
	}

	token, err := h.authClient.GenerateToken(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, errors.Internal("Failed to generate token", err))
	}

	return response.Success(c, map[string]string{"token": token})
}
