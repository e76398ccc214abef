package dto

import "time"

type StageApproveDTO struct {
	OrderApprovalID uint64 `json:"order_approval_id" validate:"required"`
	// Дату изготовления передаёт только этап технолога.
	ManufacturingTerm *time.Time `json:"manufacturing_term"`
	Comment           string     `json:"comment"`
}

type StageRejectDTO struct {
	OrderApprovalID      uint64 `json:"order_approval_id" validate:"required"`
	Subdivision          string `json:"subdivision" validate:"required"`
	SubdivisionRecipient string `json:"subdivision_recipient" validate:"required"`
	Comment              string `json:"comment"`
}

// ManagerApproveOrderDTO - форма менеджера заказов. Для заказа по служебной
// записке конверта ещё нет, поэтому идентификатор обязателен только для
// технологического пути.
type ManagerApproveOrderDTO struct {
	OrderApprovalID uint64 `json:"order_approval_id" validate:"required_unless=IsByMemo true"`
	IsByMemo        bool   `json:"is_by_memo"`

	MemoNumber string `json:"memo_number" validate:"required_if=IsByMemo true"`
	MemoAuthor string `json:"memo_author"`

	CoreOrder                       string     `json:"core_order"`
	CoreNumber                      string     `json:"core_number"`
	OrderCode                       string     `json:"order_code"`
	Number                          string     `json:"number"`
	OrderName                       string     `json:"order_name" validate:"required"`
	OpenAtByMemo                    *time.Time `json:"open_at_by_memo"`
	NomenclatureGroup               string     `json:"nomenclature_group"`
	EquipmentTypeID                 *uint64    `json:"equipment_type_id" validate:"required"`
	DraftByMemo                     string     `json:"draft_by_memo"`
	DraftNameByMemo                 string     `json:"draft_name_by_memo"`
	Balance                         float64    `json:"balance"`
	WorkshopByMemo                  string     `json:"workshop_by_memo"`
	EquipmentRequiredQuantityByMemo float64    `json:"equipment_required_quantity_by_memo" validate:"required,gt=0"`

	Comment string `json:"comment"`
}
