package routes

import (
	"order-approval-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runEquipmentTypeRouter(api *echo.Group, ctrl *controllers.EquipmentTypeController) {
	api.GET("/equipment-types", ctrl.GetEquipmentTypes)
	api.GET("/equipment-type/:id", ctrl.FindEquipmentType)
}
