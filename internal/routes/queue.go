package routes

import (
	"order-approval-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runQueueRouter(api *echo.Group, ctrl *controllers.QueueController) {
	api.GET("/queue", ctrl.Current)
	api.POST("/queue/refresh", ctrl.Refresh)
	api.POST("/queue/next", ctrl.Next)
	api.POST("/queue/previous", ctrl.Previous)
	api.POST("/queue/next-group", ctrl.NextGroup)
	api.POST("/queue/previous-group", ctrl.PreviousGroup)
	api.GET("/queue/search", ctrl.Search)
}
