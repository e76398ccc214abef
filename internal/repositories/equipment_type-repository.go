package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"order-approval-system/internal/entities"
	apperrors "order-approval-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type EquipmentTypeRepositoryInterface interface {
	GetEquipmentTypes(ctx context.Context) ([]entities.EquipmentType, error)
	FindEquipmentType(ctx context.Context, id uint64) (*entities.EquipmentType, error)
	TermByApprovalID(ctx context.Context, approvalID uint64) (int, error)
}

type EquipmentTypeRepository struct {
	storage *pgxpool.Pool
	cache   CacheRepositoryInterface
	logger  *zap.Logger
}

// Справочник типов статичен, срок согласования читается на каждом
// Approve/Reject - кешируем на 10 минут.
const termCacheTTL = 10 * time.Minute

func NewEquipmentTypeRepository(storage *pgxpool.Pool, cache CacheRepositoryInterface, logger *zap.Logger) EquipmentTypeRepositoryInterface {
	return &EquipmentTypeRepository{storage: storage, cache: cache, logger: logger}
}

func (r *EquipmentTypeRepository) GetEquipmentTypes(ctx context.Context) ([]entities.EquipmentType, error) {
	rows, err := r.storage.Query(ctx, `SELECT id, name, term FROM order_approval_types ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []entities.EquipmentType
	for rows.Next() {
		var t entities.EquipmentType
		if err := rows.Scan(&t.ID, &t.Name, &t.Term); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *EquipmentTypeRepository) FindEquipmentType(ctx context.Context, id uint64) (*entities.EquipmentType, error) {
	var t entities.EquipmentType
	err := r.storage.QueryRow(ctx,
		`SELECT id, name, term FROM order_approval_types WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.Term)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// TermByApprovalID возвращает требуемое число рабочих дней для типа
// оборудования конверта согласования.
func (r *EquipmentTypeRepository) TermByApprovalID(ctx context.Context, approvalID uint64) (int, error) {
	var typeID *uint64
	err := r.storage.QueryRow(ctx,
		`SELECT equipment_type_id FROM orders_approval WHERE id = $1`, approvalID,
	).Scan(&typeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, err
	}
	if typeID == nil {
		return 0, apperrors.ErrNotFound
	}

	return r.termByTypeID(ctx, *typeID)
}

func (r *EquipmentTypeRepository) termByTypeID(ctx context.Context, typeID uint64) (int, error) {
	cacheKey := fmt.Sprintf("equipment_type_term:%d", typeID)
	if cached, err := r.cache.Get(ctx, cacheKey); err == nil {
		if term, convErr := strconv.Atoi(cached); convErr == nil {
			return term, nil
		}
	}

	equipmentType, err := r.FindEquipmentType(ctx, typeID)
	if err != nil {
		return 0, err
	}

	if err := r.cache.Set(ctx, cacheKey, strconv.Itoa(equipmentType.Term), termCacheTTL); err != nil {
		r.logger.Warn("Не удалось закешировать срок согласования", zap.Uint64("type_id", typeID), zap.Error(err))
	}
	return equipmentType.Term, nil
}
