package controllers

import (
	"net/http"

	"order-approval-system/internal/dto"
	"order-approval-system/internal/entities"
	"order-approval-system/internal/services"
	apperrors "order-approval-system/pkg/errors"
	"order-approval-system/pkg/utils"

	"github.com/aarondl/null/v8"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type OrderManagerController struct {
	manager services.OrderManagerServiceInterface
	queue   services.OrderQueueInterface
	logger  *zap.Logger
}

func NewOrderManagerController(manager services.OrderManagerServiceInterface, queue services.OrderQueueInterface, logger *zap.Logger) *OrderManagerController {
	return &OrderManagerController{manager: manager, queue: queue, logger: logger}
}

func (c *OrderManagerController) ApproveOrder(ctx echo.Context) error {
	var body dto.ManagerApproveOrderDTO
	if err := ctx.Bind(&body); err != nil {
		c.logger.Error("ApproveOrder: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&body); err != nil {
		c.logger.Error("ApproveOrder: ошибка валидации данных", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	item := managerItemFromDTO(&body)
	result := c.manager.ApproveOrder(ctx.Request().Context(), item, body.Comment)
	if result.IsFailed() {
		return resultErrorResponse(ctx, result, c.logger)
	}
	return utils.SuccessResponse(ctx, map[string]interface{}{"order_approval_id": item.OrderApprovalID},
		"Заказ согласован", http.StatusOK)
}

func (c *OrderManagerController) RejectOrder(ctx echo.Context) error {
	var body dto.StageRejectDTO
	if err := ctx.Bind(&body); err != nil {
		c.logger.Error("RejectOrder: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&body); err != nil {
		c.logger.Error("RejectOrder: ошибка валидации данных", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	item := &entities.TechnologicalOrder{OrderApprovalID: body.OrderApprovalID}
	result := c.manager.RejectOrder(ctx.Request().Context(), item, services.RejectParams{
		Subdivision:          body.Subdivision,
		SubdivisionRecipient: body.SubdivisionRecipient,
		Comment:              body.Comment,
	})
	if result.IsFailed() {
		return resultErrorResponse(ctx, result, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Заказ возвращён на доработку", http.StatusOK)
}

func (c *OrderManagerController) NewMemoDraft(ctx echo.Context) error {
	draft := c.manager.NewMemoDraft(c.queue)
	return utils.SuccessResponse(ctx, draft, "Черновик служебной записки добавлен", http.StatusCreated)
}

func managerItemFromDTO(body *dto.ManagerApproveOrderDTO) *entities.TechnologicalOrder {
	item := &entities.TechnologicalOrder{
		OrderApprovalID:                 body.OrderApprovalID,
		IsByMemo:                        body.IsByMemo,
		MemoNumber:                      body.MemoNumber,
		MemoAuthor:                      body.MemoAuthor,
		CoreOrderByMemo:                 body.CoreOrder,
		CoreNumberByMemo:                body.CoreNumber,
		OrderByMemo:                     body.OrderCode,
		NumberByMemo:                    body.Number,
		OrderName:                       body.OrderName,
		NomenclatureGroup:               body.NomenclatureGroup,
		EquipmentTypeID:                 body.EquipmentTypeID,
		DraftByMemo:                     body.DraftByMemo,
		DraftNameByMemo:                 body.DraftNameByMemo,
		Balance:                         body.Balance,
		WorkshopByMemo:                  body.WorkshopByMemo,
		EquipmentRequiredQuantityByMemo: body.EquipmentRequiredQuantityByMemo,
	}
	if body.OpenAtByMemo != nil {
		item.OpenAtByMemo = null.TimeFromPtr(body.OpenAtByMemo)
	}
	return item
}
