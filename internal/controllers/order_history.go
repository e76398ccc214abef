package controllers

import (
	"net/http"
	"strconv"

	"order-approval-system/internal/repositories"
	apperrors "order-approval-system/pkg/errors"
	"order-approval-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type OrderHistoryController struct {
	historyRepo repositories.OrderApprovalHistoryRepositoryInterface
	logger      *zap.Logger
}

func NewOrderHistoryController(historyRepo repositories.OrderApprovalHistoryRepositoryInterface, logger *zap.Logger) *OrderHistoryController {
	return &OrderHistoryController{historyRepo: historyRepo, logger: logger}
}

// GetApprovalHistory возвращает все шаги согласования конверта по порядку.
func (c *OrderHistoryController) GetApprovalHistory(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		c.logger.Error("GetApprovalHistory: неверный формат ID", zap.String("id", ctx.Param("id")), zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(
				http.StatusBadRequest,
				"Неверный формат ID согласования",
				err,
				map[string]interface{}{"param": ctx.Param("id")},
			),
			c.logger,
		)
	}

	history, err := c.historyRepo.FindByApprovalID(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("Ошибка получения истории согласования", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(
				http.StatusInternalServerError,
				"Не удалось получить историю согласования",
				err,
				nil,
			),
			c.logger,
		)
	}
	return utils.SuccessResponse(ctx, history, "Успешно", http.StatusOK)
}
