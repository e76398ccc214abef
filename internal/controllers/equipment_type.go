package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"order-approval-system/internal/repositories"
	apperrors "order-approval-system/pkg/errors"
	"order-approval-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Справочник типов оборудования без бизнес-логики, контроллер ходит
// в репозиторий напрямую.
type EquipmentTypeController struct {
	typeRepo repositories.EquipmentTypeRepositoryInterface
	logger   *zap.Logger
}

func NewEquipmentTypeController(typeRepo repositories.EquipmentTypeRepositoryInterface, logger *zap.Logger) *EquipmentTypeController {
	return &EquipmentTypeController{typeRepo: typeRepo, logger: logger}
}

func (c *EquipmentTypeController) GetEquipmentTypes(ctx echo.Context) error {
	res, err := c.typeRepo.GetEquipmentTypes(ctx.Request().Context())
	if err != nil {
		c.logger.Error("Ошибка получения списка типов оборудования", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(
				http.StatusInternalServerError,
				"Не удалось получить список типов оборудования",
				err,
				nil,
			),
			c.logger,
		)
	}
	return utils.SuccessResponse(ctx, res, "Успешно", http.StatusOK)
}

func (c *EquipmentTypeController) FindEquipmentType(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		c.logger.Error("FindEquipmentType: неверный формат ID", zap.String("id", ctx.Param("id")), zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(
				http.StatusBadRequest,
				"Неверный формат ID типа оборудования",
				err,
				map[string]interface{}{"param": ctx.Param("id")},
			),
			c.logger,
		)
	}

	res, err := c.typeRepo.FindEquipmentType(ctx.Request().Context(), id)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, apperrors.ErrNotFound) {
			code = http.StatusNotFound
		}
		c.logger.Error("Ошибка поиска типа оборудования", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(code, "Не удалось найти тип оборудования", err, nil),
			c.logger,
		)
	}

	return utils.SuccessResponse(ctx, res, "Тип оборудования успешно найден", http.StatusOK)
}
