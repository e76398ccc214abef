package controllers

import (
	"errors"
	"net/http"

	"order-approval-system/internal/dto"
	"order-approval-system/internal/services"
	apperrors "order-approval-system/pkg/errors"
	"order-approval-system/pkg/types"
	"order-approval-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ApprovalController обслуживает этапы технолога и начальника отдела заказов.
// Этап определяется сегментом пути, у менеджера заказов свой контроллер.
type ApprovalController struct {
	workflow services.ApprovalWorkflowServiceInterface
	stages   map[string]services.StageConfig
	logger   *zap.Logger
}

func NewApprovalController(workflow services.ApprovalWorkflowServiceInterface, stages map[string]services.StageConfig, logger *zap.Logger) *ApprovalController {
	return &ApprovalController{workflow: workflow, stages: stages, logger: logger}
}

func (c *ApprovalController) Approve(ctx echo.Context) error {
	stage, ok := c.stages[ctx.Param("stage")]
	if !ok {
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(
				http.StatusNotFound,
				"Неизвестный этап согласования",
				apperrors.ErrNotFound,
				map[string]interface{}{"stage": ctx.Param("stage")},
			),
			c.logger,
		)
	}

	var body dto.StageApproveDTO
	if err := ctx.Bind(&body); err != nil {
		c.logger.Error("Approve: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&body); err != nil {
		c.logger.Error("Approve: ошибка валидации данных", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	result := c.workflow.Approve(ctx.Request().Context(), stage, body.OrderApprovalID, services.ApproveParams{
		ManufacturingTerm: body.ManufacturingTerm,
		Comment:           body.Comment,
	})
	if result.IsFailed() {
		return resultErrorResponse(ctx, result, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Заказ согласован", http.StatusOK)
}

func (c *ApprovalController) Reject(ctx echo.Context) error {
	stage, ok := c.stages[ctx.Param("stage")]
	if !ok {
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(
				http.StatusNotFound,
				"Неизвестный этап согласования",
				apperrors.ErrNotFound,
				map[string]interface{}{"stage": ctx.Param("stage")},
			),
			c.logger,
		)
	}

	var body dto.StageRejectDTO
	if err := ctx.Bind(&body); err != nil {
		c.logger.Error("Reject: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&body); err != nil {
		c.logger.Error("Reject: ошибка валидации данных", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	result := c.workflow.Reject(ctx.Request().Context(), stage, body.OrderApprovalID, services.RejectParams{
		Subdivision:          body.Subdivision,
		SubdivisionRecipient: body.SubdivisionRecipient,
		Comment:              body.Comment,
	})
	if result.IsFailed() {
		return resultErrorResponse(ctx, result, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Заказ возвращён на доработку", http.StatusOK)
}

// resultErrorResponse переводит исход операции согласования в HTTP-ответ.
func resultErrorResponse(ctx echo.Context, result types.Result, logger *zap.Logger) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(result.Err, apperrors.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(result.Err, apperrors.ErrValidationFailed),
		errors.Is(result.Err, apperrors.ErrInvalidTerm):
		code = http.StatusUnprocessableEntity
	case errors.Is(result.Err, apperrors.ErrScheduleUnavailable):
		code = http.StatusConflict
	}
	return utils.ErrorResponse(ctx, apperrors.NewHttpError(code, result.Message, result.Err, nil), logger)
}
