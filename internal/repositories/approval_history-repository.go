package repositories

import (
	"context"
	"errors"
	"time"

	"order-approval-system/internal/entities"
	apperrors "order-approval-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderApprovalHistoryRepositoryInterface interface {
	FindOpenByRecipientInTx(ctx context.Context, tx pgx.Tx, approvalID uint64, role, name string) (*entities.OrderApprovalHistory, error)
	FindLatestByRecipientInTx(ctx context.Context, tx pgx.Tx, approvalID uint64, role, name string) (*entities.OrderApprovalHistory, error)
	CloseInTx(ctx context.Context, tx pgx.Tx, id uint64, completedAt time.Time, status, result string) error
	CreateInTx(ctx context.Context, tx pgx.Tx, entry *entities.OrderApprovalHistory) error
	FindByApprovalID(ctx context.Context, approvalID uint64) ([]entities.OrderApprovalHistory, error)
}

type OrderApprovalHistoryRepository struct {
	storage *pgxpool.Pool
}

func NewOrderApprovalHistoryRepository(storage *pgxpool.Pool) OrderApprovalHistoryRepositoryInterface {
	return &OrderApprovalHistoryRepository{storage: storage}
}

const historyColumns = `
	id, order_approval_id, receipt_date, completion_date, term,
	recipient_role, recipient_name, sender_role, sender_name,
	status, result, comment`

func scanHistory(row pgx.Row) (*entities.OrderApprovalHistory, error) {
	var h entities.OrderApprovalHistory
	err := row.Scan(
		&h.ID, &h.OrderApprovalID, &h.ReceiptDate, &h.CompletionDate, &h.Term,
		&h.RecipientRole, &h.RecipientName, &h.SenderRole, &h.SenderName,
		&h.Status, &h.Result, &h.Comment,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &h, nil
}

// FindOpenByRecipientInTx возвращает открытый шаг согласования для получателя.
// Открытым считается шаг без даты завершения; по инварианту он один.
func (r *OrderApprovalHistoryRepository) FindOpenByRecipientInTx(ctx context.Context, tx pgx.Tx, approvalID uint64, role, name string) (*entities.OrderApprovalHistory, error) {
	return r.findByRecipient(ctx, tx, approvalID, role, name, true)
}

// FindLatestByRecipientInTx возвращает последнюю по идентификатору запись
// для получателя независимо от её состояния.
func (r *OrderApprovalHistoryRepository) FindLatestByRecipientInTx(ctx context.Context, tx pgx.Tx, approvalID uint64, role, name string) (*entities.OrderApprovalHistory, error) {
	return r.findByRecipient(ctx, tx, approvalID, role, name, false)
}

func (r *OrderApprovalHistoryRepository) findByRecipient(ctx context.Context, q querier, approvalID uint64, role, name string, openOnly bool) (*entities.OrderApprovalHistory, error) {
	query := `
		SELECT ` + historyColumns + `
		FROM order_approval_history
		WHERE order_approval_id = $1
		  AND recipient_role = $2
		  AND recipient_name = $3`
	if openOnly {
		query += `
		  AND completion_date IS NULL`
	}
	query += `
		ORDER BY id DESC
		LIMIT 1`

	return scanHistory(q.QueryRow(ctx, query, approvalID, role, name))
}

func (r *OrderApprovalHistoryRepository) CloseInTx(ctx context.Context, tx pgx.Tx, id uint64, completedAt time.Time, status, result string) error {
	query := `
		UPDATE order_approval_history
		SET completion_date = $2, status = $3, result = $4
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query, id, completedAt, status, result)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *OrderApprovalHistoryRepository) CreateInTx(ctx context.Context, tx pgx.Tx, entry *entities.OrderApprovalHistory) error {
	query := `
		INSERT INTO order_approval_history
			(order_approval_id, receipt_date, completion_date, term,
			 recipient_role, recipient_name, sender_role, sender_name,
			 status, result, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	return tx.QueryRow(ctx, query,
		entry.OrderApprovalID, entry.ReceiptDate, entry.CompletionDate, entry.Term,
		entry.RecipientRole, entry.RecipientName, entry.SenderRole, entry.SenderName,
		entry.Status, entry.Result, entry.Comment,
	).Scan(&entry.ID)
}

// FindByApprovalID возвращает всю историю согласования конверта по порядку шагов.
func (r *OrderApprovalHistoryRepository) FindByApprovalID(ctx context.Context, approvalID uint64) ([]entities.OrderApprovalHistory, error) {
	query := `
		SELECT ` + historyColumns + `
		FROM order_approval_history
		WHERE order_approval_id = $1
		ORDER BY id ASC`

	rows, err := r.storage.Query(ctx, query, approvalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []entities.OrderApprovalHistory
	for rows.Next() {
		var h entities.OrderApprovalHistory
		if err := rows.Scan(
			&h.ID, &h.OrderApprovalID, &h.ReceiptDate, &h.CompletionDate, &h.Term,
			&h.RecipientRole, &h.RecipientName, &h.SenderRole, &h.SenderName,
			&h.Status, &h.Result, &h.Comment,
		); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}
