package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"order-approval-system/internal/controllers"
	"order-approval-system/internal/repositories"
	"order-approval-system/internal/services"
	"order-approval-system/pkg/config"
	"order-approval-system/pkg/constants"
)

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, cfg *config.Config, logger *zap.Logger) {
	logger.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")

	// --- 1. РЕПОЗИТОРИИ ---
	txManager := repositories.NewTxManager(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	orderRepo := repositories.NewOrderRepository(dbConn)
	approvalRepo := repositories.NewOrderApprovalRepository(dbConn)
	historyRepo := repositories.NewOrderApprovalHistoryRepository(dbConn)
	typeRepo := repositories.NewEquipmentTypeRepository(dbConn, cacheRepo, logger)
	calendarRepo := repositories.NewCalendarRepository(dbConn)

	// --- 2. СЕРВИСЫ ---
	stages := stageConfigs(cfg)
	deadlineService := services.NewDeadlineService(calendarRepo, logger)
	workflowService := services.NewApprovalWorkflowService(historyRepo, typeRepo, deadlineService, txManager, logger)
	managerService := services.NewOrderManagerService(
		stages[constants.StageOrderManager],
		approvalRepo, historyRepo, typeRepo, deadlineService, txManager, workflowService, logger,
	)
	queue := services.NewOrderQueue(orderRepo, typeRepo, logger)

	// --- 3. КОНТРОЛЛЕРЫ ---
	queueCtrl := controllers.NewQueueController(queue, logger)
	approvalCtrl := controllers.NewApprovalController(workflowService, upstreamStages(stages), logger)
	managerCtrl := controllers.NewOrderManagerController(managerService, queue, logger)
	typeCtrl := controllers.NewEquipmentTypeController(typeRepo, logger)
	historyCtrl := controllers.NewOrderHistoryController(historyRepo, logger)

	// --- 4. РОУТЕРЫ ---
	runQueueRouter(api, queueCtrl)
	runApprovalRouter(api, approvalCtrl, managerCtrl)
	runEquipmentTypeRouter(api, typeCtrl)
	runOrderHistoryRouter(api, historyCtrl)

	logger.Info("InitRouter: Создание маршрутов завершено")
}

// stageConfigs разворачивает назначения из конфигурации в цепочку этапов:
// технолог -> начальник отдела заказов -> менеджер заказов.
func stageConfigs(cfg *config.Config) map[string]services.StageConfig {
	return map[string]services.StageConfig{
		constants.StageTechnologist: {
			Code:                   constants.StageTechnologist,
			Role:                   cfg.Stages.Technologist.Role,
			Name:                   cfg.Stages.Technologist.Name,
			NextRole:               cfg.Stages.HeadOfOrderDepartment.Role,
			NextName:               cfg.Stages.HeadOfOrderDepartment.Name,
			DeadlineFromCallerTerm: true,
		},
		constants.StageHeadOfOrderDepartment: {
			Code:     constants.StageHeadOfOrderDepartment,
			Role:     cfg.Stages.HeadOfOrderDepartment.Role,
			Name:     cfg.Stages.HeadOfOrderDepartment.Name,
			NextRole: cfg.Stages.OrderManager.Role,
			NextName: cfg.Stages.OrderManager.Name,
		},
		constants.StageOrderManager: {
			Code: constants.StageOrderManager,
			Role: cfg.Stages.OrderManager.Role,
			Name: cfg.Stages.OrderManager.Name,
		},
	}
}

// upstreamStages - этапы, которые обслуживает общий контроллер согласования.
// Менеджер заказов обрабатывается отдельно из-за ветки служебных записок.
func upstreamStages(stages map[string]services.StageConfig) map[string]services.StageConfig {
	return map[string]services.StageConfig{
		constants.StageTechnologist:          stages[constants.StageTechnologist],
		constants.StageHeadOfOrderDepartment: stages[constants.StageHeadOfOrderDepartment],
	}
}
