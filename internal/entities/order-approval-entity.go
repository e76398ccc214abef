package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// OrderApproval - конверт согласования уровня заказа. Создаётся один раз,
// этапы меняют в нём только сквозные поля (например EquipmentTypeID).
type OrderApproval struct {
	ID        uint64 `json:"id"`
	RequestID uint64 `json:"request_id"`

	Technologist                  string      `json:"technologist"`
	CoreDraft                     string      `json:"core_draft"`
	Draft                         string      `json:"draft"`
	CoreDraftName                 string      `json:"core_draft_name"`
	DraftName                     string      `json:"draft_name"`
	Workshop                      string      `json:"workshop"`
	Warehouse                     string      `json:"warehouse"`
	EquipmentNameFromTechnologist string      `json:"equipment_name_from_technologist"`
	EquipmentQuantityForOperation float64     `json:"equipment_quantity_for_operation"`
	Analog                        null.String `json:"analog"`
	OpenAt                        time.Time   `json:"open_at"`

	// Поля, заполняемые менеджером заказов.
	IsByMemo                        bool      `json:"is_by_memo"`
	MemoNumber                      string    `json:"memo_number"`
	MemoAuthor                      string    `json:"memo_author"`
	CoreOrder                       string    `json:"core_order"`
	CoreNumber                      string    `json:"core_number"`
	OrderCode                       string    `json:"order_code"`
	Number                          string    `json:"number"`
	OrderName                       string    `json:"order_name"`
	OpenAtByMemo                    null.Time `json:"open_at_by_memo"`
	NomenclatureGroup               string    `json:"nomenclature_group"`
	EquipmentTypeID                 *uint64   `json:"equipment_type_id"`
	DraftByMemo                     string    `json:"draft_by_memo"`
	DraftNameByMemo                 string    `json:"draft_name_by_memo"`
	Balance                         float64   `json:"balance"`
	WorkshopByMemo                  string    `json:"workshop_by_memo"`
	EquipmentRequiredQuantityByMemo float64   `json:"equipment_required_quantity_by_memo"`
}
