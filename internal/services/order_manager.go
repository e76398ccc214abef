package services

import (
	"context"
	"strings"
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

// Ключ группы и номер записки для черновика новой служебной записки.
const (
	NewMemoGroupKey = "Новая СЗ"
	NewMemoNumber   = "Новая"
)

type OrderManagerServiceInterface interface {
	ApproveOrder(ctx context.Context, item *entities.TechnologicalOrder, comment string) types.Result
	RejectOrder(ctx context.Context, item *entities.TechnologicalOrder, params RejectParams) types.Result
	NewMemoDraft(queue OrderQueueInterface) *entities.TechnologicalOrder
}

// OrderManagerService - этап менеджера заказов. В отличие от остальных
// этапов менеджер дописывает в конверт собственные поля, а заказ по
// служебной записке заводит с нуля.
type OrderManagerService struct {
	stage        StageConfig
	approvalRepo repositories.OrderApprovalRepositoryInterface
	historyRepo  repositories.OrderApprovalHistoryRepositoryInterface
	typeRepo     repositories.EquipmentTypeRepositoryInterface
	deadlines    DeadlineServiceInterface
	txManager    repositories.TxManagerInterface
	workflow     ApprovalWorkflowServiceInterface
	logger       *zap.Logger

	now func() time.Time
}

func NewOrderManagerService(
	stage StageConfig,
	approvalRepo repositories.OrderApprovalRepositoryInterface,
	historyRepo repositories.OrderApprovalHistoryRepositoryInterface,
	typeRepo repositories.EquipmentTypeRepositoryInterface,
	deadlines DeadlineServiceInterface,
	txManager repositories.TxManagerInterface,
	workflow ApprovalWorkflowServiceInterface,
	logger *zap.Logger,
) *OrderManagerService {
	return &OrderManagerService{
		stage:        stage,
		approvalRepo: approvalRepo,
		historyRepo:  historyRepo,
		typeRepo:     typeRepo,
		deadlines:    deadlines,
		txManager:    txManager,
		workflow:     workflow,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *OrderManagerService) ApproveOrder(ctx context.Context, item *entities.TechnologicalOrder, comment string) types.Result {
	if result := s.validateOrder(item); result.IsFailed() {
		return result
	}
	if item.IsByMemo {
		return s.approveMemoOrder(ctx, item, comment)
	}
	return s.approveTechnologicalOrder(ctx, item, comment)
}

// Возврат на доработку у менеджера ничем не отличается от остальных этапов.
func (s *OrderManagerService) RejectOrder(ctx context.Context, item *entities.TechnologicalOrder, params RejectParams) types.Result {
	return s.workflow.Reject(ctx, s.stage, item.OrderApprovalID, params)
}

// NewMemoDraft добавляет в очередь черновик заказа по служебной записке.
// Черновик живёт только в очереди, в базу он попадает при согласовании.
func (s *OrderManagerService) NewMemoDraft(queue OrderQueueInterface) *entities.TechnologicalOrder {
	draft := &entities.TechnologicalOrder{
		OrderNumber: NewMemoGroupKey,
		IsByMemo:    true,
		MemoNumber:  NewMemoNumber,
	}
	queue.AppendGroup(&OrderGroup{
		Key:      NewMemoGroupKey,
		IsByMemo: true,
		Items:    []*entities.TechnologicalOrder{draft},
	})
	return draft
}

func (s *OrderManagerService) validateOrder(item *entities.TechnologicalOrder) types.Result {
	if item.IsByMemo && strings.TrimSpace(item.MemoNumber) == "" {
		return types.Failed("Не заполнен номер служебной записки", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(item.OrderName) == "" {
		return types.Failed("Не заполнено наименование заказа", apperrors.ErrValidationFailed)
	}
	if item.EquipmentTypeID == nil {
		return types.Failed("Не выбран тип оборудования", apperrors.ErrValidationFailed)
	}
	if item.EquipmentRequiredQuantityByMemo <= 0 {
		return types.Failed("Не указано количество оборудования", apperrors.ErrValidationFailed)
	}
	return types.Success()
}

// approveMemoOrder заводит конверт согласования по служебной записке.
// Шаг менеджера записывается сразу закрытым: до менеджера заказ по
// записке ни через кого не проходил.
func (s *OrderManagerService) approveMemoOrder(ctx context.Context, item *entities.TechnologicalOrder, comment string) types.Result {
	now := s.now()

	openAt := item.OpenAtByMemo
	if !openAt.Valid {
		openAt = null.TimeFrom(now)
	}

	approval := &entities.OrderApproval{
		IsByMemo:   true,
		MemoNumber: item.MemoNumber,
		MemoAuthor: item.MemoAuthor,
	}
	applyManagerFields(approval, item)
	approval.OpenAtByMemo = openAt

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := s.approvalRepo.CreateInTx(ctx, tx, approval); err != nil {
			return err
		}
		return s.historyRepo.CreateInTx(ctx, tx, &entities.OrderApprovalHistory{
			OrderApprovalID: approval.ID,
			ReceiptDate:     now,
			CompletionDate:  null.TimeFrom(now),
			Term:            now.AddDate(0, 0, 1),
			RecipientRole:   constants.RoleMemoNext,
			RecipientName:   constants.NameMemoNext,
			SenderRole:      s.stage.Role,
			SenderName:      s.stage.Name,
			Status:          constants.ApprovalStatusDone,
			Result:          null.StringFrom(constants.ApprovalResultApproved),
			Comment:         nullableComment(comment),
		})
	})
	if err != nil {
		s.logger.Error("Не удалось записать заказ по служебной записке",
			zap.String("memo_number", item.MemoNumber), zap.Error(err))
		return types.Failed("Не удалось записать данные в базу", err)
	}

	item.OrderApprovalID = approval.ID
	s.logger.Info("Заказ по служебной записке согласован",
		zap.Uint64("approval_id", approval.ID), zap.String("memo_number", item.MemoNumber))
	return types.Success()
}

// approveTechnologicalOrder дописывает поля менеджера в существующий конверт
// и передаёт заказ дальше. Срок берётся по типу, выбранному менеджером в
// форме, а не по сохранённому в конверте.
func (s *OrderManagerService) approveTechnologicalOrder(ctx context.Context, item *entities.TechnologicalOrder, comment string) types.Result {
	equipmentType, err := s.typeRepo.FindEquipmentType(ctx, *item.EquipmentTypeID)
	if err != nil {
		s.logger.Error("Не удалось определить тип оборудования заказа",
			zap.Uint64("approval_id", item.OrderApprovalID), zap.Error(err))
		return types.Failed("Не удалось определить тип оборудования заказа", err)
	}

	now := s.now()
	deadline, err := s.deadlines.NextApproveDeadline(ctx, now, equipmentType.Term)
	if err != nil {
		s.logger.Error("Не удалось рассчитать срок согласования",
			zap.Uint64("approval_id", item.OrderApprovalID), zap.Error(err))
		return types.Failed("Не удалось рассчитать срок согласования", err)
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		approval, err := s.approvalRepo.FindByIDInTx(ctx, tx, item.OrderApprovalID)
		if err != nil {
			return err
		}
		applyManagerFields(approval, item)
		if err := s.approvalRepo.UpdateManagerFieldsInTx(ctx, tx, approval); err != nil {
			return err
		}

		open, err := s.historyRepo.FindOpenByRecipientInTx(ctx, tx, item.OrderApprovalID, s.stage.Role, s.stage.Name)
		if err != nil {
			return err
		}
		if err := s.historyRepo.CloseInTx(ctx, tx, open.ID, s.now(),
			constants.ApprovalStatusDone, constants.ApprovalResultApproved); err != nil {
			return err
		}
		return s.historyRepo.CreateInTx(ctx, tx, &entities.OrderApprovalHistory{
			OrderApprovalID: item.OrderApprovalID,
			ReceiptDate:     s.now(),
			Term:            deadline,
			RecipientRole:   constants.RoleAfterManager,
			RecipientName:   constants.NameAfterManager,
			SenderRole:      s.stage.Role,
			SenderName:      s.stage.Name,
			Status:          constants.ApprovalStatusInProgress,
			Comment:         nullableComment(comment),
		})
	})
	if err != nil {
		s.logger.Error("Не удалось записать согласование заказа",
			zap.Uint64("approval_id", item.OrderApprovalID), zap.Error(err))
		return types.Failed("Не удалось записать данные в базу", err)
	}

	s.logger.Info("Заказ согласован менеджером",
		zap.Uint64("approval_id", item.OrderApprovalID), zap.Time("term", deadline))
	return types.Success()
}

// applyManagerFields переносит из позиции очереди поля, которые заполняет
// менеджер заказов.
func applyManagerFields(approval *entities.OrderApproval, item *entities.TechnologicalOrder) {
	approval.CoreOrder = item.CoreOrderByMemo
	approval.CoreNumber = item.CoreNumberByMemo
	approval.OrderCode = item.OrderByMemo
	approval.Number = item.NumberByMemo
	approval.OrderName = item.OrderName
	approval.OpenAtByMemo = item.OpenAtByMemo
	approval.NomenclatureGroup = item.NomenclatureGroup
	approval.EquipmentTypeID = item.EquipmentTypeID
	approval.DraftByMemo = item.DraftByMemo
	approval.DraftNameByMemo = item.DraftNameByMemo
	approval.Balance = item.Balance
	approval.WorkshopByMemo = item.WorkshopByMemo
	approval.EquipmentRequiredQuantityByMemo = item.EquipmentRequiredQuantityByMemo
}
