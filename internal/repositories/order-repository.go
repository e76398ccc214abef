package repositories

import (
	"context"

	"order-approval-system/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepositoryInterface interface {
	GetStageOrders(ctx context.Context) ([]entities.TechnologicalOrder, error)
	ListApprovalIDsWithoutOpenStep(ctx context.Context) ([]uint64, error)
}

type OrderRepository struct {
	storage *pgxpool.Pool
}

func NewOrderRepository(storage *pgxpool.Pool) OrderRepositoryInterface {
	return &OrderRepository{storage: storage}
}

// GetStageOrders собирает плоскую проекцию позиций заказов для очереди этапа.
// Выборка повторяет legacy-запрос: заявки, прошедшие внедрение (d_vn_14),
// с чертежами оборудования и справочными данными рабочего места и операции.
func (r *OrderRepository) GetStageOrders(ctx context.Context) ([]entities.TechnologicalOrder, error) {
	query, args, err := sq.Select(
		"req.order_number",
		"oa.id",
		"oad.id",
		"oa.technologist",
		"oa.core_draft",
		"oa.draft",
		"TRIM(oa.core_draft_name)",
		"TRIM(oa.draft_name)",
		"oa.workshop",
		"oa.warehouse",
		"req.schedule",
		"TRIM(w.code || ' ' || w.name)",
		"TRIM(op.name)",
		"oad.equipment_draft",
		"TRIM(oad.equipment_name)",
		"TRIM(oa.equipment_name_from_technologist)",
		"oa.equipment_quantity_for_operation",
		"oad.equipment_required_quantity",
		"oad.cooperation",
		"oad.is_deleted_from_order",
		"req.note",
		"oa.analog",
		"oad.comment_for_design",
		"oad.comment_for_manufacturing",
		"oa.open_at",
		"oa.is_by_memo",
		"COALESCE(oa.memo_number, '')",
		"COALESCE(oa.memo_author, '')",
		"COALESCE(oa.core_order, '')",
		"COALESCE(oa.core_number, '')",
		"COALESCE(oa.order_code, '')",
		"COALESCE(oa.number, '')",
		"COALESCE(oa.order_name, '')",
		"oa.open_at_by_memo",
		"COALESCE(oa.nomenclature_group, '')",
		"oa.equipment_type_id",
		"COALESCE(oa.draft_by_memo, '')",
		"COALESCE(oa.draft_name_by_memo, '')",
		"COALESCE(oa.balance, 0)",
		"COALESCE(oa.workshop_by_memo, '')",
		"COALESCE(oa.equipment_required_quantity_by_memo, 0)",
	).
		From("orders_approval AS oa").
		Join("order_approval_drafts AS oad ON oad.order_approval_id = oa.id").
		Join("order_requests AS req ON req.id = oa.request_id").
		Join("order_progress AS pr ON pr.order_number = req.order_number").
		LeftJoin("workplaces AS w ON w.workplace_code = req.workplace_code").
		LeftJoin("operations AS op ON op.code = req.operation_code").
		Where("pr.approved_for_manufacturing_at IS NOT NULL").
		OrderBy("req.order_number").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []entities.TechnologicalOrder
	for rows.Next() {
		var o entities.TechnologicalOrder
		if err := rows.Scan(
			&o.OrderNumber, &o.OrderApprovalID, &o.OrderApprovalDraftID, &o.Technologist,
			&o.CoreDraft, &o.Draft, &o.CoreDraftName, &o.DraftName,
			&o.Workshop, &o.Warehouse, &o.Schedule,
			&o.Workplace, &o.Operation,
			&o.EquipmentDraft, &o.EquipmentName, &o.EquipmentNameFromTechnologist,
			&o.EquipmentQuantityForOperation, &o.EquipmentRequiredQuantity,
			&o.Cooperation, &o.IsDeletedFromOrder,
			&o.Note, &o.Analog, &o.DesignComment, &o.ManufacturingComment,
			&o.OpenAtByTechnologist,
			&o.IsByMemo, &o.MemoNumber, &o.MemoAuthor,
			&o.CoreOrderByMemo, &o.CoreNumberByMemo, &o.OrderByMemo, &o.NumberByMemo,
			&o.OrderName, &o.OpenAtByMemo, &o.NomenclatureGroup, &o.EquipmentTypeID,
			&o.DraftByMemo, &o.DraftNameByMemo, &o.Balance,
			&o.WorkshopByMemo, &o.EquipmentRequiredQuantityByMemo,
		); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// ListApprovalIDsWithoutOpenStep находит конверты согласования, у которых нет
// ни одной открытой записи истории. Такое состояние требует внимания оператора.
func (r *OrderRepository) ListApprovalIDsWithoutOpenStep(ctx context.Context) ([]uint64, error) {
	query := `
		SELECT oa.id
		FROM orders_approval oa
		WHERE EXISTS (
			SELECT 1 FROM order_approval_history h
			WHERE h.order_approval_id = oa.id
		)
		AND NOT EXISTS (
			SELECT 1 FROM order_approval_history h
			WHERE h.order_approval_id = oa.id AND h.completion_date IS NULL
		)`

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
