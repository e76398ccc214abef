package controllers

import (
	"net/http"

	"order-approval-system/internal/entities"
	"order-approval-system/internal/services"
	apperrors "order-approval-system/pkg/errors"
	"order-approval-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type QueueController struct {
	queue  services.OrderQueueInterface
	logger *zap.Logger
}

func NewQueueController(queue services.OrderQueueInterface, logger *zap.Logger) *QueueController {
	return &QueueController{queue: queue, logger: logger}
}

type queueStateResponse struct {
	TotalGroups      int                          `json:"total_groups"`
	GroupIndex       int                          `json:"group_index"`
	ItemIndex        int                          `json:"item_index"`
	Group            *services.OrderGroup         `json:"group,omitempty"`
	Item             *entities.TechnologicalOrder `json:"item,omitempty"`
	HasNext          bool                         `json:"has_next"`
	HasPrevious      bool                         `json:"has_previous"`
	HasNextGroup     bool                         `json:"has_next_group"`
	HasPreviousGroup bool                         `json:"has_previous_group"`
}

func (c *QueueController) state() *queueStateResponse {
	return &queueStateResponse{
		TotalGroups:      c.queue.TotalGroups(),
		GroupIndex:       c.queue.CurrentGroupIndex(),
		ItemIndex:        c.queue.CurrentIndex(),
		Group:            c.queue.CurrentGroup(),
		Item:             c.queue.CurrentItem(),
		HasNext:          c.queue.HasNext(),
		HasPrevious:      c.queue.HasPrevious(),
		HasNextGroup:     c.queue.HasNextGroup(),
		HasPreviousGroup: c.queue.HasPreviousGroup(),
	}
}

func (c *QueueController) Refresh(ctx echo.Context) error {
	c.queue.Load(ctx.Request().Context())
	return utils.SuccessResponse(ctx, c.state(), "Очередь заказов обновлена", http.StatusOK)
}

func (c *QueueController) Current(ctx echo.Context) error {
	return utils.SuccessResponse(ctx, c.state(), "Успешно", http.StatusOK)
}

func (c *QueueController) Next(ctx echo.Context) error {
	c.queue.NavigateNext()
	return utils.SuccessResponse(ctx, c.state(), "Успешно", http.StatusOK)
}

func (c *QueueController) Previous(ctx echo.Context) error {
	c.queue.NavigatePrevious()
	return utils.SuccessResponse(ctx, c.state(), "Успешно", http.StatusOK)
}

func (c *QueueController) NextGroup(ctx echo.Context) error {
	c.queue.NextGroup()
	return utils.SuccessResponse(ctx, c.state(), "Успешно", http.StatusOK)
}

func (c *QueueController) PreviousGroup(ctx echo.Context) error {
	c.queue.PreviousGroup()
	return utils.SuccessResponse(ctx, c.state(), "Успешно", http.StatusOK)
}

func (c *QueueController) Search(ctx echo.Context) error {
	number := ctx.QueryParam("number")
	if !c.queue.FindAndNavigate(number) {
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(
				http.StatusNotFound,
				"Заказ с таким номером не найден",
				apperrors.ErrNotFound,
				map[string]interface{}{"number": number},
			),
			c.logger,
		)
	}
	return utils.SuccessResponse(ctx, c.state(), "Заказ найден", http.StatusOK)
}
