package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"order-approval-system/internal/entities"
	"order-approval-system/internal/repositories"

	"go.uber.org/zap"
)

// OrderGroup - позиции одного номера заказа (или одной служебной записки).
type OrderGroup struct {
	Key      string                         `json:"key"`
	IsByMemo bool                           `json:"is_by_memo"`
	Items    []*entities.TechnologicalOrder `json:"items"`
}

type OrderQueueInterface interface {
	Load(ctx context.Context)
	NavigateNext()
	NavigatePrevious()
	NextGroup()
	PreviousGroup()
	FindAndNavigate(query string) bool
	HasNext() bool
	HasPrevious() bool
	HasNextGroup() bool
	HasPreviousGroup() bool
	TotalGroups() int
	CurrentGroup() *OrderGroup
	CurrentItem() *entities.TechnologicalOrder
	CurrentGroupIndex() int
	CurrentIndex() int
	AppendGroup(group *OrderGroup)
}

// OrderQueue - очередь заказов этапа с курсором "текущая группа / текущая
// позиция". Снимок целиком пересобирается в Load, навигация меняет только
// индексы.
type OrderQueue struct {
	orderRepo repositories.OrderRepositoryInterface
	typeRepo  repositories.EquipmentTypeRepositoryInterface
	logger    *zap.Logger

	mu         sync.Mutex
	groups     []*OrderGroup
	groupIndex int
	itemIndex  int
}

// typeRepo нужен только этапу менеджера заказов, остальные этапы передают nil.
func NewOrderQueue(orderRepo repositories.OrderRepositoryInterface, typeRepo repositories.EquipmentTypeRepositoryInterface, logger *zap.Logger) OrderQueueInterface {
	return &OrderQueue{orderRepo: orderRepo, typeRepo: typeRepo, logger: logger}
}

// Load пересобирает очередь из базы. При ошибке чтения очередь остаётся
// пустой: этап продолжает работать, оператор видит отсутствие заказов.
func (q *OrderQueue) Load(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.groups = nil
	q.groupIndex = 0
	q.itemIndex = 0

	orders, err := q.orderRepo.GetStageOrders(ctx)
	if err != nil {
		q.logger.Error("Не удалось загрузить очередь заказов", zap.Error(err))
		return
	}

	if ids, err := q.orderRepo.ListApprovalIDsWithoutOpenStep(ctx); err != nil {
		q.logger.Warn("Не удалось проверить историю согласований", zap.Error(err))
	} else if len(ids) > 0 {
		q.logger.Warn("Найдены согласования без открытого шага", zap.Uint64s("approval_ids", ids))
	}

	// Один чертёж оборудования может встретиться в нескольких операциях,
	// в очереди он показывается один раз.
	seen := make(map[uint64]bool, len(orders))
	items := make([]*entities.TechnologicalOrder, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		if seen[o.OrderApprovalDraftID] {
			continue
		}
		seen[o.OrderApprovalDraftID] = true
		items = append(items, o)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].EquipmentDraft < items[j].EquipmentDraft
	})

	byNumber := make(map[string]*OrderGroup)
	for _, item := range items {
		group, ok := byNumber[item.OrderNumber]
		if !ok {
			group = &OrderGroup{Key: item.OrderNumber, IsByMemo: item.IsByMemo}
			byNumber[item.OrderNumber] = group
			q.groups = append(q.groups, group)
		}
		group.Items = append(group.Items, item)
	}

	for _, group := range q.groups {
		sort.SliceStable(group.Items, func(i, j int) bool {
			return group.Items[i].OpenAtByTechnologist.Before(group.Items[j].OpenAtByTechnologist)
		})
	}
	sort.SliceStable(q.groups, func(i, j int) bool {
		return q.groups[i].Key < q.groups[j].Key
	})

	q.attachEquipmentTypes(ctx, items)
}

// attachEquipmentTypes подставляет справочник типов оборудования в позиции
// для формы менеджера заказов.
func (q *OrderQueue) attachEquipmentTypes(ctx context.Context, items []*entities.TechnologicalOrder) {
	if q.typeRepo == nil {
		return
	}

	types, err := q.typeRepo.GetEquipmentTypes(ctx)
	if err != nil {
		q.logger.Warn("Не удалось загрузить справочник типов оборудования", zap.Error(err))
		return
	}

	byID := make(map[uint64]entities.EquipmentType, len(types))
	for _, t := range types {
		byID[t.ID] = t
	}
	for _, item := range items {
		if item.EquipmentTypeID == nil {
			continue
		}
		if t, ok := byID[*item.EquipmentTypeID]; ok {
			equipmentType := t
			item.EquipmentType = &equipmentType
		}
	}
}

// NavigateNext и NavigatePrevious двигают позицию только внутри текущей
// группы. На границе группы ничего не происходит: между группами
// переключают NextGroup/PreviousGroup.
func (q *OrderQueue) NavigateNext() {
	q.mu.Lock()
	defer q.mu.Unlock()

	group := q.currentGroup()
	if group != nil && q.itemIndex+1 < len(group.Items) {
		q.itemIndex++
	}
}

func (q *OrderQueue) NavigatePrevious() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.itemIndex > 0 {
		q.itemIndex--
	}
}

func (q *OrderQueue) NextGroup() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.groupIndex+1 < len(q.groups) {
		q.selectGroup(q.groupIndex + 1)
	}
}

func (q *OrderQueue) PreviousGroup() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.groupIndex > 0 {
		q.selectGroup(q.groupIndex - 1)
	}
}

// FindAndNavigate ищет группу по подстроке номера заказа без учёта регистра
// и делает её текущей. При отсутствии совпадений курсор не меняется.
func (q *OrderQueue) FindAndNavigate(query string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return false
	}
	for i, group := range q.groups {
		if strings.Contains(strings.ToLower(group.Key), needle) {
			// Найденная группа уже текущая: позицию не сбрасываем.
			if i != q.groupIndex {
				q.selectGroup(i)
			}
			return true
		}
	}
	return false
}

func (q *OrderQueue) HasNext() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	group := q.currentGroup()
	return group != nil && q.itemIndex+1 < len(group.Items)
}

func (q *OrderQueue) HasPrevious() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.itemIndex > 0
}

func (q *OrderQueue) HasNextGroup() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.groupIndex+1 < len(q.groups)
}

func (q *OrderQueue) HasPreviousGroup() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.groupIndex > 0
}

func (q *OrderQueue) TotalGroups() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.groups)
}

func (q *OrderQueue) CurrentGroup() *OrderGroup {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.currentGroup()
}

func (q *OrderQueue) CurrentItem() *entities.TechnologicalOrder {
	q.mu.Lock()
	defer q.mu.Unlock()

	group := q.currentGroup()
	if group == nil || q.itemIndex >= len(group.Items) {
		return nil
	}
	return group.Items[q.itemIndex]
}

func (q *OrderQueue) CurrentGroupIndex() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.groupIndex
}

func (q *OrderQueue) CurrentIndex() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.itemIndex
}

// AppendGroup добавляет группу в конец очереди и делает её текущей.
// Так менеджер заказов заводит черновик новой служебной записки.
func (q *OrderQueue) AppendGroup(group *OrderGroup) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.groups = append(q.groups, group)
	q.selectGroup(len(q.groups) - 1)
}

func (q *OrderQueue) currentGroup() *OrderGroup {
	if q.groupIndex >= len(q.groups) {
		return nil
	}
	return q.groups[q.groupIndex]
}

// При смене группы курсор всегда встаёт на первую позицию.
func (q *OrderQueue) selectGroup(index int) {
	q.groupIndex = index
	q.itemIndex = 0
}
