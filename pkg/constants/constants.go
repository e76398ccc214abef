package constants

// --- СТАТУСЫ ЗАПИСЕЙ СОГЛАСОВАНИЯ (Совпадает со значениями в БД) ---
const (
	ApprovalStatusInProgress = "В работе"
	ApprovalStatusDone       = "Выполнено"
)

// --- РЕЗУЛЬТАТЫ ШАГА СОГЛАСОВАНИЯ ---
const (
	ApprovalResultApproved    = "Согласовано"
	ApprovalResultNeedsRework = "На доработку"
)

// Коды этапов согласования. Конкретные ФИО исполнителей привязываются
// к кодам через конфигурацию, а не зашиваются в логику.
const (
	StageTechnologist          = "technologist"
	StageHeadOfOrderDepartment = "head_of_order_department"
	StageOrderManager          = "order_manager"
)

// Названия ролей, как они записываются в историю согласования.
const (
	RoleTechnologist          = "Технолог"
	RoleHeadOfOrderDepartment = "Начальник отдела заказов"
	RoleOrderManager          = "Менеджер заказов"
)

// Получатель после менеджера заказов пока не определён в процессе,
// legacy-система писала заглушку. Значения сохранены для совместимости записей.
const (
	RoleAfterManager = "Кто-то после менеджера"
	NameAfterManager = "Кто-то после менеджера"
	RoleMemoNext     = "дальше"
	NameMemoNext     = "кто-то"
)
