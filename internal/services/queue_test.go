package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"order-approval-system/internal/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func queueItem(orderNumber string, draftID uint64, equipmentDraft string, openAt time.Time) entities.TechnologicalOrder {
	return entities.TechnologicalOrder{
		OrderNumber:          orderNumber,
		OrderApprovalID:      draftID,
		OrderApprovalDraftID: draftID,
		EquipmentDraft:       equipmentDraft,
		OpenAtByTechnologist: openAt,
	}
}

func TestOrderQueueLoad(t *testing.T) {
	t.Run("группировка и сортировка", func(t *testing.T) {
		repo := &fakeOrderRepository{orders: []entities.TechnologicalOrder{
			queueItem("B200-17", 3, "ЧЕРТ-30", date(2024, 2, 1)),
			queueItem("A100-01", 1, "ЧЕРТ-10", date(2024, 1, 5)),
			queueItem("B200-17", 2, "ЧЕРТ-20", date(2024, 1, 1)),
		}}
		queue := NewOrderQueue(repo, nil, zap.NewNop())

		queue.Load(context.Background())

		require.Equal(t, 2, queue.TotalGroups())
		assert.Equal(t, "A100-01", queue.CurrentGroup().Key)

		queue.NextGroup()
		group := queue.CurrentGroup()
		require.Equal(t, "B200-17", group.Key)
		require.Len(t, group.Items, 2)
		// Внутри группы позиции идут по дате открытия технологом.
		assert.Equal(t, uint64(2), group.Items[0].OrderApprovalDraftID)
		assert.Equal(t, uint64(3), group.Items[1].OrderApprovalDraftID)
	})

	t.Run("повторы чертежа схлопываются", func(t *testing.T) {
		repo := &fakeOrderRepository{orders: []entities.TechnologicalOrder{
			queueItem("A100-01", 1, "ЧЕРТ-10", date(2024, 1, 5)),
			queueItem("A100-01", 1, "ЧЕРТ-10", date(2024, 1, 5)),
		}}
		queue := NewOrderQueue(repo, nil, zap.NewNop())

		queue.Load(context.Background())

		require.Equal(t, 1, queue.TotalGroups())
		assert.Len(t, queue.CurrentGroup().Items, 1)
	})

	t.Run("при ошибке чтения очередь пустая", func(t *testing.T) {
		repo := &fakeOrderRepository{err: errors.New("обрыв соединения")}
		queue := NewOrderQueue(repo, nil, zap.NewNop())

		queue.Load(context.Background())

		assert.Equal(t, 0, queue.TotalGroups())
		assert.Nil(t, queue.CurrentGroup())
		assert.Nil(t, queue.CurrentItem())
	})

	t.Run("подстановка типов оборудования", func(t *testing.T) {
		typeID := uint64(7)
		item := queueItem("A100-01", 1, "ЧЕРТ-10", date(2024, 1, 5))
		item.EquipmentTypeID = &typeID
		repo := &fakeOrderRepository{orders: []entities.TechnologicalOrder{item}}
		typeRepo := &fakeTypeRepository{types: map[uint64]entities.EquipmentType{
			7: {ID: 7, Name: "Штамп", Term: 10},
		}}
		queue := NewOrderQueue(repo, typeRepo, zap.NewNop())

		queue.Load(context.Background())

		current := queue.CurrentItem()
		require.NotNil(t, current)
		require.NotNil(t, current.EquipmentType)
		assert.Equal(t, "Штамп", current.EquipmentType.Name)
	})
}

func TestOrderQueueNavigation(t *testing.T) {
	newQueue := func(t *testing.T) OrderQueueInterface {
		t.Helper()
		repo := &fakeOrderRepository{orders: []entities.TechnologicalOrder{
			queueItem("A100-01", 1, "ЧЕРТ-10", date(2024, 1, 1)),
			queueItem("A100-01", 2, "ЧЕРТ-20", date(2024, 1, 2)),
			queueItem("B200-17", 3, "ЧЕРТ-30", date(2024, 1, 3)),
		}}
		queue := NewOrderQueue(repo, nil, zap.NewNop())
		queue.Load(context.Background())
		return queue
	}

	t.Run("переход по позициям внутри группы", func(t *testing.T) {
		queue := newQueue(t)

		assert.True(t, queue.HasNext())
		assert.False(t, queue.HasPrevious())

		queue.NavigateNext()
		assert.Equal(t, 0, queue.CurrentGroupIndex())
		assert.Equal(t, 1, queue.CurrentIndex())
		assert.True(t, queue.HasPrevious())

		queue.NavigatePrevious()
		assert.Equal(t, 0, queue.CurrentIndex())
	})

	t.Run("на последней позиции группы курсор стоит на месте", func(t *testing.T) {
		queue := newQueue(t)

		queue.NavigateNext()
		require.Equal(t, 1, queue.CurrentIndex())

		// Граница группы: дальше только через NextGroup.
		assert.False(t, queue.HasNext())
		assert.True(t, queue.HasNextGroup())

		queue.NavigateNext()
		assert.Equal(t, 0, queue.CurrentGroupIndex())
		assert.Equal(t, 1, queue.CurrentIndex())
	})

	t.Run("назад на первой позиции группы ничего не меняет", func(t *testing.T) {
		queue := newQueue(t)
		queue.NextGroup()
		require.Equal(t, 1, queue.CurrentGroupIndex())

		assert.False(t, queue.HasPrevious())
		queue.NavigatePrevious()
		assert.Equal(t, 1, queue.CurrentGroupIndex())
		assert.Equal(t, 0, queue.CurrentIndex())
	})

	t.Run("смена группы сбрасывает позицию", func(t *testing.T) {
		queue := newQueue(t)

		queue.NavigateNext()
		require.Equal(t, 1, queue.CurrentIndex())

		queue.NextGroup()
		assert.Equal(t, 1, queue.CurrentGroupIndex())
		assert.Equal(t, 0, queue.CurrentIndex())

		queue.PreviousGroup()
		assert.Equal(t, 0, queue.CurrentGroupIndex())
		assert.Equal(t, 0, queue.CurrentIndex())
	})

	t.Run("поиск по подстроке номера", func(t *testing.T) {
		queue := newQueue(t)

		require.True(t, queue.FindAndNavigate(" b200 "))
		assert.Equal(t, "B200-17", queue.CurrentGroup().Key)

		require.True(t, queue.FindAndNavigate("100"))
		assert.Equal(t, "A100-01", queue.CurrentGroup().Key)
	})

	t.Run("поиск текущей группы не сбрасывает позицию", func(t *testing.T) {
		queue := newQueue(t)
		queue.NavigateNext()
		require.Equal(t, 1, queue.CurrentIndex())

		require.True(t, queue.FindAndNavigate("A100"))
		assert.Equal(t, 0, queue.CurrentGroupIndex())
		assert.Equal(t, 1, queue.CurrentIndex())
	})

	t.Run("неудачный поиск не двигает курсор", func(t *testing.T) {
		queue := newQueue(t)
		queue.NextGroup()

		assert.False(t, queue.FindAndNavigate("C300"))
		assert.False(t, queue.FindAndNavigate("   "))
		assert.Equal(t, 1, queue.CurrentGroupIndex())
	})
}

func TestOrderQueueAppendGroup(t *testing.T) {
	repo := &fakeOrderRepository{orders: []entities.TechnologicalOrder{
		queueItem("A100-01", 1, "ЧЕРТ-10", date(2024, 1, 1)),
	}}
	queue := NewOrderQueue(repo, nil, zap.NewNop())
	queue.Load(context.Background())

	draft := &entities.TechnologicalOrder{IsByMemo: true, MemoNumber: "Новая"}
	queue.AppendGroup(&OrderGroup{Key: "Новая СЗ", IsByMemo: true, Items: []*entities.TechnologicalOrder{draft}})

	require.Equal(t, 2, queue.TotalGroups())
	assert.Equal(t, "Новая СЗ", queue.CurrentGroup().Key)
	assert.Same(t, draft, queue.CurrentItem())
	assert.True(t, queue.HasPreviousGroup())
}
