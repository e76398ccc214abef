package entities

// EquipmentType - справочник типов оборудования. Term - требуемое число
// рабочих дней на согласование заказа этого типа.
type EquipmentType struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Term int    `json:"term"`
}
