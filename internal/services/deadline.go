package services

import (
	"context"
	"math"
	"time"

	"order-approval-system/internal/repositories"
	apperrors "order-approval-system/pkg/errors"

	"go.uber.org/zap"
)

type DeadlineServiceInterface interface {
	NextApproveDeadline(ctx context.Context, reference time.Time, term int) (time.Time, error)
	NextRejectDeadline(ctx context.Context, from time.Time, term int) (time.Time, error)
}

type DeadlineService struct {
	calendarRepo repositories.CalendarRepositoryInterface
	logger       *zap.Logger
}

// Коэффициент запаса для резервного срока при возврате на доработку.
// Он намеренно отличается от резервного срока согласования: возврат
// закладывает дополнительное время на исправление.
const rejectFallbackFactor = 1.4

func NewDeadlineService(calendarRepo repositories.CalendarRepositoryInterface, logger *zap.Logger) DeadlineServiceInterface {
	return &DeadlineService{calendarRepo: calendarRepo, logger: logger}
}

// NextApproveDeadline возвращает term-й рабочий день производственного
// календаря строго после опорной даты. Если в календаре не хватает дней,
// срок считается в календарных днях от опорной даты.
func (s *DeadlineService) NextApproveDeadline(ctx context.Context, reference time.Time, term int) (time.Time, error) {
	day, found, err := s.calendarRepo.NthWorkingDayAfter(ctx, reference, term)
	if err != nil {
		return time.Time{}, err
	}
	if found {
		return day, nil
	}

	s.logger.Warn("В производственном календаре не хватает рабочих дней, срок считается в календарных днях",
		zap.Time("reference", reference), zap.Int("term", term))
	return reference.AddDate(0, 0, term), nil
}

// NextRejectDeadline возвращает срок для записи о возврате на доработку.
// Если после текущей даты в календаре нет ни одного рабочего дня,
// назначить срок невозможно и возврат отклоняется.
func (s *DeadlineService) NextRejectDeadline(ctx context.Context, from time.Time, term int) (time.Time, error) {
	hasWorkingDay, err := s.calendarRepo.HasWorkingDayAfter(ctx, from)
	if err != nil {
		return time.Time{}, err
	}
	if !hasWorkingDay {
		return time.Time{}, apperrors.ErrScheduleUnavailable
	}

	day, found, err := s.calendarRepo.NthWorkingDayAfter(ctx, from, term)
	if err != nil {
		return time.Time{}, err
	}
	if found {
		return day, nil
	}

	fallbackDays := int(math.Round(float64(term) * rejectFallbackFactor))
	s.logger.Warn("В производственном календаре не хватает рабочих дней, применён резервный срок возврата",
		zap.Time("from", from), zap.Int("term", term), zap.Int("fallback_days", fallbackDays))
	return from.AddDate(0, 0, fallbackDays), nil
}
