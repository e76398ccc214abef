package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// OrderApprovalHistory - одна передача заказа между отправителем и получателем.
// Запись открыта, пока CompletionDate пуст; на каждый конверт согласования
// в любой момент открыта не более одной записи.
type OrderApprovalHistory struct {
	ID              uint64      `json:"id"`
	OrderApprovalID uint64      `json:"order_approval_id"`
	ReceiptDate     time.Time   `json:"receipt_date"`
	CompletionDate  null.Time   `json:"completion_date"`
	Term            time.Time   `json:"term"`
	RecipientRole   string      `json:"recipient_role"`
	RecipientName   string      `json:"recipient_name"`
	SenderRole      string      `json:"sender_role"`
	SenderName      string      `json:"sender_name"`
	Status          string      `json:"status"`
	Result          null.String `json:"result"`
	Comment         null.String `json:"comment"`
}

func (h *OrderApprovalHistory) IsOpen() bool {
	return !h.CompletionDate.Valid
}
