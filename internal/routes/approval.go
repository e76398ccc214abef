package routes

import (
	"order-approval-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runApprovalRouter(api *echo.Group, approvalCtrl *controllers.ApprovalController, managerCtrl *controllers.OrderManagerController) {
	// Статические маршруты менеджера имеют приоритет над :stage.
	api.POST("/approval/order-manager/approve", managerCtrl.ApproveOrder)
	api.POST("/approval/order-manager/reject", managerCtrl.RejectOrder)
	api.POST("/approval/order-manager/memo-draft", managerCtrl.NewMemoDraft)

	api.POST("/approval/:stage/approve", approvalCtrl.Approve)
	api.POST("/approval/:stage/reject", approvalCtrl.Reject)
}
