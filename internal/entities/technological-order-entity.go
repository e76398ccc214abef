package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// TechnologicalOrder - проекция одной позиции оборудования внутри номера заказа,
// как её видит этап согласования. Снимок собирается заново при каждой загрузке
// очереди и не изменяется по месту.
type TechnologicalOrder struct {
	OrderNumber          string `json:"order_number"`
	OrderApprovalID      uint64 `json:"order_approval_id"`
	OrderApprovalDraftID uint64 `json:"order_approval_draft_id"`
	Technologist         string `json:"technologist"`

	CoreDraft     string `json:"core_draft"`
	Draft         string `json:"draft"`
	CoreDraftName string `json:"core_draft_name"`
	DraftName     string `json:"draft_name"`

	Workshop  string      `json:"workshop"`
	Warehouse string      `json:"warehouse"`
	Schedule  null.String `json:"schedule"`

	Workplace null.String `json:"workplace"`
	Operation null.String `json:"operation"`

	EquipmentDraft                string  `json:"equipment_draft"`
	EquipmentName                 string  `json:"equipment_name"`
	EquipmentNameFromTechnologist string  `json:"equipment_name_from_technologist"`
	EquipmentQuantityForOperation float64 `json:"equipment_quantity_for_operation"`
	EquipmentRequiredQuantity     float64 `json:"equipment_required_quantity"`
	Cooperation                   bool    `json:"cooperation"`
	IsDeletedFromOrder            bool    `json:"is_deleted_from_order"`

	Note                 null.String `json:"note"`
	Analog               null.String `json:"analog"`
	DesignComment        null.String `json:"design_comment"`
	ManufacturingComment null.String `json:"manufacturing_comment"`
	OpenAtByTechnologist time.Time   `json:"open_at_by_technologist"`
	Comment              null.String `json:"comment"`

	// Поля служебной записки заполняются только на этапе менеджера заказов.
	IsByMemo                        bool           `json:"is_by_memo"`
	MemoNumber                      string         `json:"memo_number"`
	MemoAuthor                      string         `json:"memo_author"`
	CoreOrderByMemo                 string         `json:"core_order_by_memo"`
	CoreNumberByMemo                string         `json:"core_number_by_memo"`
	OrderByMemo                     string         `json:"order_by_memo"`
	NumberByMemo                    string         `json:"number_by_memo"`
	OrderName                       string         `json:"order_name"`
	OpenAtByMemo                    null.Time      `json:"open_at_by_memo"`
	NomenclatureGroup               string         `json:"nomenclature_group"`
	EquipmentTypeID                 *uint64        `json:"equipment_type_id"`
	EquipmentType                   *EquipmentType `json:"equipment_type,omitempty"`
	DraftByMemo                     string         `json:"draft_by_memo"`
	DraftNameByMemo                 string         `json:"draft_name_by_memo"`
	Balance                         float64        `json:"balance"`
	WorkshopByMemo                  string         `json:"workshop_by_memo"`
	EquipmentRequiredQuantityByMemo float64        `json:"equipment_required_quantity_by_memo"`
}
