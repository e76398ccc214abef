package routes

import (
	"order-approval-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runOrderHistoryRouter(api *echo.Group, ctrl *controllers.OrderHistoryController) {
	api.GET("/approval-history/:id", ctrl.GetApprovalHistory)
}
