package services

import (
	"context"
	"sort"
	"time"

	"order-approval-system/internal/entities"
	apperrors "order-approval-system/pkg/errors"
	"order-approval-system/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
)

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// --- КАЛЕНДАРЬ ---

type fakeCalendarRepository struct {
	workingDays []time.Time
	err         error
}

func (f *fakeCalendarRepository) NthWorkingDayAfter(_ context.Context, after time.Time, n int) (time.Time, bool, error) {
	if f.err != nil {
		return time.Time{}, false, f.err
	}
	count := 0
	for _, day := range f.workingDays {
		if !day.After(after) {
			continue
		}
		count++
		if count == n {
			return day, true, nil
		}
	}
	return time.Time{}, false, nil
}

func (f *fakeCalendarRepository) HasWorkingDayAfter(_ context.Context, after time.Time) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, day := range f.workingDays {
		if day.After(after) {
			return true, nil
		}
	}
	return false, nil
}

// --- ТИПЫ ОБОРУДОВАНИЯ ---

type fakeTypeRepository struct {
	types          map[uint64]entities.EquipmentType
	termByApproval map[uint64]int
	err            error
}

func (f *fakeTypeRepository) GetEquipmentTypes(context.Context) ([]entities.EquipmentType, error) {
	if f.err != nil {
		return nil, f.err
	}
	var list []entities.EquipmentType
	for _, t := range f.types {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (f *fakeTypeRepository) FindEquipmentType(_ context.Context, id uint64) (*entities.EquipmentType, error) {
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.types[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (f *fakeTypeRepository) TermByApprovalID(_ context.Context, approvalID uint64) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	term, ok := f.termByApproval[approvalID]
	if !ok {
		return 0, apperrors.ErrNotFound
	}
	return term, nil
}

// --- ИСТОРИЯ СОГЛАСОВАНИЯ ---

type fakeHistoryRepository struct {
	entries   []entities.OrderApprovalHistory
	nextID    uint64
	createErr error
}

func (f *fakeHistoryRepository) FindOpenByRecipientInTx(_ context.Context, _ pgx.Tx, approvalID uint64, role, name string) (*entities.OrderApprovalHistory, error) {
	for i := len(f.entries) - 1; i >= 0; i-- {
		e := f.entries[i]
		if e.OrderApprovalID == approvalID && e.RecipientRole == role && e.RecipientName == name && e.IsOpen() {
			return &e, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeHistoryRepository) FindLatestByRecipientInTx(_ context.Context, _ pgx.Tx, approvalID uint64, role, name string) (*entities.OrderApprovalHistory, error) {
	for i := len(f.entries) - 1; i >= 0; i-- {
		e := f.entries[i]
		if e.OrderApprovalID == approvalID && e.RecipientRole == role && e.RecipientName == name {
			return &e, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeHistoryRepository) CloseInTx(_ context.Context, _ pgx.Tx, id uint64, completedAt time.Time, status, result string) error {
	for i := range f.entries {
		if f.entries[i].ID == id {
			f.entries[i].CompletionDate = null.TimeFrom(completedAt)
			f.entries[i].Status = status
			f.entries[i].Result = null.StringFrom(result)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeHistoryRepository) CreateInTx(_ context.Context, _ pgx.Tx, entry *entities.OrderApprovalHistory) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	entry.ID = f.nextID
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeHistoryRepository) FindByApprovalID(_ context.Context, approvalID uint64) ([]entities.OrderApprovalHistory, error) {
	var history []entities.OrderApprovalHistory
	for _, e := range f.entries {
		if e.OrderApprovalID == approvalID {
			history = append(history, e)
		}
	}
	return history, nil
}

func (f *fakeHistoryRepository) openEntries(approvalID uint64) []entities.OrderApprovalHistory {
	var open []entities.OrderApprovalHistory
	for _, e := range f.entries {
		if e.OrderApprovalID == approvalID && e.IsOpen() {
			open = append(open, e)
		}
	}
	return open
}

func (f *fakeHistoryRepository) byID(id uint64) entities.OrderApprovalHistory {
	for _, e := range f.entries {
		if e.ID == id {
			return e
		}
	}
	return entities.OrderApprovalHistory{}
}

// --- КОНВЕРТЫ СОГЛАСОВАНИЯ ---

type fakeApprovalRepository struct {
	approvals map[uint64]entities.OrderApproval
	nextID    uint64
	createErr error
}

func (f *fakeApprovalRepository) FindByIDInTx(_ context.Context, _ pgx.Tx, id uint64) (*entities.OrderApproval, error) {
	a, ok := f.approvals[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &a, nil
}

func (f *fakeApprovalRepository) CreateInTx(_ context.Context, _ pgx.Tx, approval *entities.OrderApproval) (uint64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	approval.ID = f.nextID
	if f.approvals == nil {
		f.approvals = make(map[uint64]entities.OrderApproval)
	}
	f.approvals[approval.ID] = *approval
	return approval.ID, nil
}

func (f *fakeApprovalRepository) UpdateManagerFieldsInTx(_ context.Context, _ pgx.Tx, approval *entities.OrderApproval) error {
	if _, ok := f.approvals[approval.ID]; !ok {
		return apperrors.ErrNotFound
	}
	f.approvals[approval.ID] = *approval
	return nil
}

// --- ТРАНЗАКЦИИ ---

// fakeTxManager повторяет откат транзакции: при ошибке состояние фейковых
// хранилищ возвращается к снимку, сделанному перед вызовом.
type fakeTxManager struct {
	history   *fakeHistoryRepository
	approvals *fakeApprovalRepository
	beginErr  error
	calls     int
}

func (m *fakeTxManager) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	if m.beginErr != nil {
		return m.beginErr
	}
	m.calls++

	var historySnapshot []entities.OrderApprovalHistory
	var historyNextID uint64
	if m.history != nil {
		historySnapshot = append([]entities.OrderApprovalHistory(nil), m.history.entries...)
		historyNextID = m.history.nextID
	}
	var approvalSnapshot map[uint64]entities.OrderApproval
	var approvalNextID uint64
	if m.approvals != nil {
		approvalSnapshot = make(map[uint64]entities.OrderApproval, len(m.approvals.approvals))
		for id, a := range m.approvals.approvals {
			approvalSnapshot[id] = a
		}
		approvalNextID = m.approvals.nextID
	}

	if err := fn(nil); err != nil {
		if m.history != nil {
			m.history.entries = historySnapshot
			m.history.nextID = historyNextID
		}
		if m.approvals != nil {
			m.approvals.approvals = approvalSnapshot
			m.approvals.nextID = approvalNextID
		}
		return err
	}
	return nil
}

// --- ОЧЕРЕДЬ ---

type fakeOrderRepository struct {
	orders         []entities.TechnologicalOrder
	err            error
	idsWithoutOpen []uint64
}

func (f *fakeOrderRepository) GetStageOrders(context.Context) ([]entities.TechnologicalOrder, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]entities.TechnologicalOrder(nil), f.orders...), nil
}

func (f *fakeOrderRepository) ListApprovalIDsWithoutOpenStep(context.Context) ([]uint64, error) {
	return f.idsWithoutOpen, nil
}

// --- РАБОЧИЙ ПРОЦЕСС ---

type rejectCall struct {
	stage      StageConfig
	approvalID uint64
	params     RejectParams
}

type fakeWorkflowService struct {
	rejects []rejectCall
	result  types.Result
}

func (f *fakeWorkflowService) Approve(_ context.Context, _ StageConfig, _ uint64, _ ApproveParams) types.Result {
	return f.result
}

func (f *fakeWorkflowService) Reject(_ context.Context, stage StageConfig, approvalID uint64, params RejectParams) types.Result {
	f.rejects = append(f.rejects, rejectCall{stage: stage, approvalID: approvalID, params: params})
	return f.result
}
