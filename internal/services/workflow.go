package services

import (
	"context"
	"time"

	"order-approval-system/internal/entities"
	"order-approval-system/internal/repositories"
	"order-approval-system/pkg/constants"
	apperrors "order-approval-system/pkg/errors"
	"order-approval-system/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// StageConfig описывает один этап согласования: кто работает на этапе
// и кому заказ уходит после согласования. Все этапы обслуживаются одним
// сервисом, различия между ними сводятся к этой конфигурации.
type StageConfig struct {
	Code     string
	Role     string
	Name     string
	NextRole string
	NextName string

	// Технолог назначает срок от даты изготовления, остальные этапы -
	// от момента согласования.
	DeadlineFromCallerTerm bool
}

type ApproveParams struct {
	ManufacturingTerm *time.Time
	Comment           string
}

type RejectParams struct {
	Subdivision          string
	SubdivisionRecipient string
	Comment              string
}

type ApprovalWorkflowServiceInterface interface {
	Approve(ctx context.Context, stage StageConfig, approvalID uint64, params ApproveParams) types.Result
	Reject(ctx context.Context, stage StageConfig, approvalID uint64, params RejectParams) types.Result
}

type ApprovalWorkflowService struct {
	historyRepo repositories.OrderApprovalHistoryRepositoryInterface
	typeRepo    repositories.EquipmentTypeRepositoryInterface
	deadlines   DeadlineServiceInterface
	txManager   repositories.TxManagerInterface
	logger      *zap.Logger

	now func() time.Time
}

func NewApprovalWorkflowService(
	historyRepo repositories.OrderApprovalHistoryRepositoryInterface,
	typeRepo repositories.EquipmentTypeRepositoryInterface,
	deadlines DeadlineServiceInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) *ApprovalWorkflowService {
	return &ApprovalWorkflowService{
		historyRepo: historyRepo,
		typeRepo:    typeRepo,
		deadlines:   deadlines,
		txManager:   txManager,
		logger:      logger,
		now:         time.Now,
	}
}

// Approve закрывает открытый шаг текущего этапа результатом "Согласовано"
// и открывает шаг следующего этапа. Обе записи выполняются в одной
// транзакции: при любой ошибке история остаётся нетронутой.
func (s *ApprovalWorkflowService) Approve(ctx context.Context, stage StageConfig, approvalID uint64, params ApproveParams) types.Result {
	term, err := s.typeRepo.TermByApprovalID(ctx, approvalID)
	if err != nil {
		s.logger.Error("Не удалось определить тип оборудования заказа",
			zap.Uint64("approval_id", approvalID), zap.String("stage", stage.Code), zap.Error(err))
		return types.Failed("Не удалось определить тип оборудования заказа", err)
	}

	reference := s.now()
	if stage.DeadlineFromCallerTerm && params.ManufacturingTerm != nil {
		reference = *params.ManufacturingTerm
	}

	deadline, err := s.deadlines.NextApproveDeadline(ctx, reference, term)
	if err != nil {
		s.logger.Error("Не удалось рассчитать срок согласования",
			zap.Uint64("approval_id", approvalID), zap.String("stage", stage.Code), zap.Error(err))
		return types.Failed("Не удалось рассчитать срок согласования", err)
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		open, err := s.historyRepo.FindOpenByRecipientInTx(ctx, tx, approvalID, stage.Role, stage.Name)
		if err != nil {
			return err
		}
		if err := s.historyRepo.CloseInTx(ctx, tx, open.ID, s.now(),
			constants.ApprovalStatusDone, constants.ApprovalResultApproved); err != nil {
			return err
		}
		return s.historyRepo.CreateInTx(ctx, tx, &entities.OrderApprovalHistory{
			OrderApprovalID: approvalID,
			ReceiptDate:     s.now(),
			Term:            deadline,
			RecipientRole:   stage.NextRole,
			RecipientName:   stage.NextName,
			SenderRole:      stage.Role,
			SenderName:      stage.Name,
			Status:          constants.ApprovalStatusInProgress,
			Comment:         nullableComment(params.Comment),
		})
	})
	if err != nil {
		s.logger.Error("Не удалось записать согласование заказа",
			zap.Uint64("approval_id", approvalID), zap.String("stage", stage.Code), zap.Error(err))
		return types.Failed("Не удалось записать данные в базу", err)
	}

	s.logger.Info("Заказ согласован",
		zap.Uint64("approval_id", approvalID), zap.String("stage", stage.Code), zap.Time("term", deadline))
	return types.Success()
}

// Reject закрывает последний шаг текущего этапа результатом "На доработку"
// и открывает шаг для подразделения, выбранного оператором.
func (s *ApprovalWorkflowService) Reject(ctx context.Context, stage StageConfig, approvalID uint64, params RejectParams) types.Result {
	if params.Subdivision == "" || params.SubdivisionRecipient == "" {
		return types.Failed("Не выбрано подразделение для возврата", apperrors.ErrValidationFailed)
	}

	term, err := s.typeRepo.TermByApprovalID(ctx, approvalID)
	if err != nil {
		s.logger.Error("Не удалось определить тип оборудования заказа",
			zap.Uint64("approval_id", approvalID), zap.String("stage", stage.Code), zap.Error(err))
		return types.Failed("Не удалось определить тип оборудования заказа", err)
	}
	if term <= 0 {
		return types.Failed("Некорректный срок согласования у типа оборудования", apperrors.ErrInvalidTerm)
	}

	deadline, err := s.deadlines.NextRejectDeadline(ctx, s.now(), term)
	if err != nil {
		s.logger.Error("Не удалось рассчитать срок возврата",
			zap.Uint64("approval_id", approvalID), zap.String("stage", stage.Code), zap.Error(err))
		return types.Failed("Не удалось рассчитать срок возврата", err)
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		latest, err := s.historyRepo.FindLatestByRecipientInTx(ctx, tx, approvalID, stage.Role, stage.Name)
		if err != nil {
			return err
		}
		if err := s.historyRepo.CloseInTx(ctx, tx, latest.ID, s.now(),
			constants.ApprovalStatusDone, constants.ApprovalResultNeedsRework); err != nil {
			return err
		}
		return s.historyRepo.CreateInTx(ctx, tx, &entities.OrderApprovalHistory{
			OrderApprovalID: approvalID,
			ReceiptDate:     s.now(),
			Term:            deadline,
			RecipientRole:   params.Subdivision,
			RecipientName:   params.SubdivisionRecipient,
			SenderRole:      stage.Role,
			SenderName:      stage.Name,
			Status:          constants.ApprovalStatusInProgress,
			Comment:         nullableComment(params.Comment),
		})
	})
	if err != nil {
		s.logger.Error("Не удалось записать возврат заказа",
			zap.Uint64("approval_id", approvalID), zap.String("stage", stage.Code), zap.Error(err))
		return types.Failed("Не удалось записать данные в базу", err)
	}

	s.logger.Info("Заказ возвращён на доработку",
		zap.Uint64("approval_id", approvalID), zap.String("stage", stage.Code),
		zap.String("subdivision", params.Subdivision), zap.Time("term", deadline))
	return types.Success()
}

func nullableComment(comment string) null.String {
	if comment == "" {
		return null.String{}
	}
	return null.StringFrom(comment)
}
