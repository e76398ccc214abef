package errors

import "fmt"

var (
	// Рабочий процесс согласования
	ErrNotFound            = fmt.Errorf("запись не найдена")
	ErrValidationFailed    = fmt.Errorf("данные не прошли проверку")
	ErrPersistenceFailed   = fmt.Errorf("не удалось сохранить изменения в БД")
	ErrScheduleUnavailable = fmt.Errorf("в производственном календаре нет будущих рабочих дней")
	ErrInvalidTerm         = fmt.Errorf("не найден срок согласования для типа оборудования")

	// Общие
	ErrBadRequest = fmt.Errorf("неверный запрос")
)

// Кастомные типы ошибок
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// HttpError несёт HTTP-код и человекочитаемое сообщение наружу.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{
		Code:    code,
		Message: message,
		Err:     err,
		Context: context,
	}
}
