package services

import (
	"context"
	"testing"
	"time"

	"order-approval-system/internal/entities"
	"order-approval-system/pkg/constants"
	apperrors "order-approval-system/pkg/errors"
	"order-approval-system/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var managerStage = StageConfig{
	Code: constants.StageOrderManager,
	Role: constants.RoleOrderManager,
	Name: "Папаева",
}

type managerFixture struct {
	approvals *fakeApprovalRepository
	history   *fakeHistoryRepository
	types     *fakeTypeRepository
	txManager *fakeTxManager
	workflow  *fakeWorkflowService
	service   *OrderManagerService
	now       time.Time
}

func newManagerFixture(t *testing.T) *managerFixture {
	t.Helper()

	approvals := &fakeApprovalRepository{approvals: map[uint64]entities.OrderApproval{}}
	history := &fakeHistoryRepository{}
	typeRepo := &fakeTypeRepository{
		types:          map[uint64]entities.EquipmentType{7: {ID: 7, Name: "Штамп", Term: 2}},
		termByApproval: map[uint64]int{},
	}
	calendar := &fakeCalendarRepository{
		workingDays: []time.Time{date(2024, 1, 2), date(2024, 1, 3), date(2024, 1, 4)},
	}
	txManager := &fakeTxManager{history: history, approvals: approvals}
	workflow := &fakeWorkflowService{result: types.Success()}

	logger := zap.NewNop()
	service := NewOrderManagerService(managerStage, approvals, history, typeRepo,
		NewDeadlineService(calendar, logger), txManager, workflow, logger)
	now := date(2024, 1, 1)
	service.now = func() time.Time { return now }

	return &managerFixture{
		approvals: approvals,
		history:   history,
		types:     typeRepo,
		txManager: txManager,
		workflow:  workflow,
		service:   service,
		now:       now,
	}
}

func managerItem() *entities.TechnologicalOrder {
	typeID := uint64(7)
	return &entities.TechnologicalOrder{
		OrderNumber:                     "A100-01",
		OrderApprovalID:                 42,
		OrderApprovalDraftID:            1,
		OrderName:                       "Штамп вырубной",
		EquipmentTypeID:                 &typeID,
		EquipmentRequiredQuantityByMemo: 2,
		NomenclatureGroup:               "Оснастка",
	}
}

func memoItem() *entities.TechnologicalOrder {
	item := managerItem()
	item.OrderApprovalID = 0
	item.IsByMemo = true
	item.MemoNumber = "СЗ-15"
	item.MemoAuthor = "Сидоров"
	return item
}

func TestManagerApproveMemoOrder(t *testing.T) {
	t.Run("создаёт конверт и сразу закрытый шаг", func(t *testing.T) {
		f := newManagerFixture(t)
		item := memoItem()

		result := f.service.ApproveOrder(context.Background(), item, "по записке")

		require.False(t, result.IsFailed(), result.Message)
		require.NotZero(t, item.OrderApprovalID)

		approval := f.approvals.approvals[item.OrderApprovalID]
		assert.True(t, approval.IsByMemo)
		assert.Equal(t, "СЗ-15", approval.MemoNumber)
		assert.Equal(t, "Штамп вырубной", approval.OrderName)
		assert.True(t, approval.OpenAtByMemo.Valid)

		require.Len(t, f.history.entries, 1)
		entry := f.history.entries[0]
		assert.Equal(t, item.OrderApprovalID, entry.OrderApprovalID)
		assert.False(t, entry.IsOpen())
		assert.Equal(t, constants.ApprovalStatusDone, entry.Status)
		assert.Equal(t, constants.ApprovalResultApproved, entry.Result.String)
		assert.Equal(t, constants.RoleMemoNext, entry.RecipientRole)
		assert.Equal(t, constants.NameMemoNext, entry.RecipientName)
		assert.Equal(t, managerStage.Role, entry.SenderRole)
		assert.Equal(t, f.now.AddDate(0, 0, 1), entry.Term)
		assert.Equal(t, "по записке", entry.Comment.String)
	})

	t.Run("без номера записки ничего не пишется", func(t *testing.T) {
		f := newManagerFixture(t)
		item := memoItem()
		item.MemoNumber = "  "

		result := f.service.ApproveOrder(context.Background(), item, "")

		require.True(t, result.IsFailed())
		assert.ErrorIs(t, result.Err, apperrors.ErrValidationFailed)
		assert.Empty(t, f.approvals.approvals)
		assert.Empty(t, f.history.entries)
	})
}

func TestManagerApproveTechnologicalOrder(t *testing.T) {
	addManagerOpenEntry := func(f *managerFixture, approvalID uint64) uint64 {
		f.history.nextID++
		f.history.entries = append(f.history.entries, entities.OrderApprovalHistory{
			ID:              f.history.nextID,
			OrderApprovalID: approvalID,
			ReceiptDate:     date(2023, 12, 25),
			Term:            date(2023, 12, 29),
			RecipientRole:   managerStage.Role,
			RecipientName:   managerStage.Name,
			SenderRole:      constants.RoleHeadOfOrderDepartment,
			SenderName:      "Дингес",
			Status:          constants.ApprovalStatusInProgress,
		})
		return f.history.nextID
	}

	t.Run("дописывает поля менеджера и передаёт заказ дальше", func(t *testing.T) {
		f := newManagerFixture(t)
		f.approvals.approvals[42] = entities.OrderApproval{ID: 42, RequestID: 10, Technologist: "Рагульский"}
		f.approvals.nextID = 42
		openID := addManagerOpenEntry(f, 42)

		result := f.service.ApproveOrder(context.Background(), managerItem(), "")

		require.False(t, result.IsFailed(), result.Message)

		// Конверт обновлён, новый не создан.
		require.Len(t, f.approvals.approvals, 1)
		approval := f.approvals.approvals[42]
		assert.Equal(t, "Штамп вырубной", approval.OrderName)
		assert.Equal(t, "Оснастка", approval.NomenclatureGroup)
		require.NotNil(t, approval.EquipmentTypeID)
		assert.Equal(t, uint64(7), *approval.EquipmentTypeID)
		assert.Equal(t, "Рагульский", approval.Technologist, "поля технолога не перезаписываются")

		closed := f.history.byID(openID)
		assert.False(t, closed.IsOpen())
		assert.Equal(t, constants.ApprovalResultApproved, closed.Result.String)

		open := f.history.openEntries(42)
		require.Len(t, open, 1)
		assert.Equal(t, constants.RoleAfterManager, open[0].RecipientRole)
		assert.Equal(t, constants.NameAfterManager, open[0].RecipientName)
		// Тип 7 со сроком 2 рабочих дня от момента согласования.
		assert.Equal(t, date(2024, 1, 3), open[0].Term)
	})

	t.Run("срок берётся по типу из формы", func(t *testing.T) {
		f := newManagerFixture(t)
		f.approvals.approvals[42] = entities.OrderApproval{ID: 42}
		f.approvals.nextID = 42
		addManagerOpenEntry(f, 42)
		f.types.types[8] = entities.EquipmentType{ID: 8, Name: "Калибр", Term: 1}

		item := managerItem()
		newTypeID := uint64(8)
		item.EquipmentTypeID = &newTypeID

		result := f.service.ApproveOrder(context.Background(), item, "")

		require.False(t, result.IsFailed(), result.Message)
		open := f.history.openEntries(42)
		require.Len(t, open, 1)
		assert.Equal(t, date(2024, 1, 2), open[0].Term)
	})

	t.Run("без типа оборудования ничего не пишется", func(t *testing.T) {
		f := newManagerFixture(t)
		item := managerItem()
		item.EquipmentTypeID = nil

		result := f.service.ApproveOrder(context.Background(), item, "")

		require.True(t, result.IsFailed())
		assert.ErrorIs(t, result.Err, apperrors.ErrValidationFailed)
		assert.Empty(t, f.history.entries)
	})

	t.Run("нет открытого шага менеджера", func(t *testing.T) {
		f := newManagerFixture(t)
		f.approvals.approvals[42] = entities.OrderApproval{ID: 42, Technologist: "Рагульский"}
		f.approvals.nextID = 42

		result := f.service.ApproveOrder(context.Background(), managerItem(), "")

		require.True(t, result.IsFailed())
		assert.ErrorIs(t, result.Err, apperrors.ErrNotFound)
		// Откат транзакции возвращает конверт в исходное состояние.
		assert.Empty(t, f.approvals.approvals[42].OrderName)
	})
}

func TestManagerRejectOrder(t *testing.T) {
	f := newManagerFixture(t)
	params := RejectParams{Subdivision: "Технологический отдел", SubdivisionRecipient: "Рагульский"}

	result := f.service.RejectOrder(context.Background(), managerItem(), params)

	require.False(t, result.IsFailed())
	require.Len(t, f.workflow.rejects, 1)
	call := f.workflow.rejects[0]
	assert.Equal(t, managerStage, call.stage)
	assert.Equal(t, uint64(42), call.approvalID)
	assert.Equal(t, params, call.params)
}

func TestManagerNewMemoDraft(t *testing.T) {
	f := newManagerFixture(t)
	queue := NewOrderQueue(&fakeOrderRepository{}, nil, zap.NewNop())
	queue.Load(context.Background())

	draft := f.service.NewMemoDraft(queue)

	require.NotNil(t, draft)
	assert.True(t, draft.IsByMemo)
	assert.Equal(t, NewMemoNumber, draft.MemoNumber)

	require.Equal(t, 1, queue.TotalGroups())
	assert.Equal(t, NewMemoGroupKey, queue.CurrentGroup().Key)
	assert.Same(t, draft, queue.CurrentItem())
}
