package repositories

import (
	"context"
	"errors"

	"order-approval-system/internal/entities"
	apperrors "order-approval-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderApprovalRepositoryInterface interface {
	FindByIDInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.OrderApproval, error)
	CreateInTx(ctx context.Context, tx pgx.Tx, approval *entities.OrderApproval) (uint64, error)
	UpdateManagerFieldsInTx(ctx context.Context, tx pgx.Tx, approval *entities.OrderApproval) error
}

type OrderApprovalRepository struct {
	storage *pgxpool.Pool
}

func NewOrderApprovalRepository(storage *pgxpool.Pool) OrderApprovalRepositoryInterface {
	return &OrderApprovalRepository{storage: storage}
}

func (r *OrderApprovalRepository) FindByIDInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.OrderApproval, error) {
	query := `
		SELECT id, request_id, technologist, core_draft, draft,
		       core_draft_name, draft_name, workshop, warehouse,
		       equipment_name_from_technologist, equipment_quantity_for_operation,
		       analog, open_at, is_by_memo,
		       COALESCE(memo_number, ''), COALESCE(memo_author, ''),
		       COALESCE(core_order, ''), COALESCE(core_number, ''),
		       COALESCE(order_code, ''), COALESCE(number, ''),
		       COALESCE(order_name, ''), open_at_by_memo,
		       COALESCE(nomenclature_group, ''), equipment_type_id,
		       COALESCE(draft_by_memo, ''), COALESCE(draft_name_by_memo, ''),
		       COALESCE(balance, 0), COALESCE(workshop_by_memo, ''),
		       COALESCE(equipment_required_quantity_by_memo, 0)
		FROM orders_approval
		WHERE id = $1`

	var a entities.OrderApproval
	err := tx.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.RequestID, &a.Technologist, &a.CoreDraft, &a.Draft,
		&a.CoreDraftName, &a.DraftName, &a.Workshop, &a.Warehouse,
		&a.EquipmentNameFromTechnologist, &a.EquipmentQuantityForOperation,
		&a.Analog, &a.OpenAt, &a.IsByMemo,
		&a.MemoNumber, &a.MemoAuthor,
		&a.CoreOrder, &a.CoreNumber,
		&a.OrderCode, &a.Number,
		&a.OrderName, &a.OpenAtByMemo,
		&a.NomenclatureGroup, &a.EquipmentTypeID,
		&a.DraftByMemo, &a.DraftNameByMemo,
		&a.Balance, &a.WorkshopByMemo,
		&a.EquipmentRequiredQuantityByMemo,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// CreateInTx создаёт конверт согласования для заказа по служебной записке.
func (r *OrderApprovalRepository) CreateInTx(ctx context.Context, tx pgx.Tx, approval *entities.OrderApproval) (uint64, error) {
	query := `
		INSERT INTO orders_approval
			(is_by_memo, memo_number, memo_author, core_order, core_number,
			 order_code, number, order_name, open_at_by_memo, nomenclature_group,
			 equipment_type_id, draft_by_memo, draft_name_by_memo, balance,
			 workshop_by_memo, equipment_required_quantity_by_memo, open_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, now())
		RETURNING id`

	var id uint64
	err := tx.QueryRow(ctx, query,
		approval.IsByMemo, approval.MemoNumber, approval.MemoAuthor,
		approval.CoreOrder, approval.CoreNumber,
		approval.OrderCode, approval.Number, approval.OrderName,
		approval.OpenAtByMemo, approval.NomenclatureGroup,
		approval.EquipmentTypeID, approval.DraftByMemo, approval.DraftNameByMemo,
		approval.Balance, approval.WorkshopByMemo,
		approval.EquipmentRequiredQuantityByMemo,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	approval.ID = id
	return id, nil
}

// UpdateManagerFieldsInTx переписывает поля конверта, которые заполняет
// менеджер заказов. Остальные поля конверта этапы не трогают.
func (r *OrderApprovalRepository) UpdateManagerFieldsInTx(ctx context.Context, tx pgx.Tx, approval *entities.OrderApproval) error {
	query := `
		UPDATE orders_approval
		SET core_order = $2, core_number = $3, order_code = $4, number = $5,
		    order_name = $6, open_at_by_memo = $7, nomenclature_group = $8,
		    equipment_type_id = $9, draft_by_memo = $10, draft_name_by_memo = $11,
		    balance = $12, workshop_by_memo = $13,
		    equipment_required_quantity_by_memo = $14
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query,
		approval.ID,
		approval.CoreOrder, approval.CoreNumber, approval.OrderCode, approval.Number,
		approval.OrderName, approval.OpenAtByMemo, approval.NomenclatureGroup,
		approval.EquipmentTypeID, approval.DraftByMemo, approval.DraftNameByMemo,
		approval.Balance, approval.WorkshopByMemo,
		approval.EquipmentRequiredQuantityByMemo,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
