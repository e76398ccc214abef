package types

// Result - единый исход операции согласования. Наружу из движка ошибки
// не пробрасываются, вызывающая сторона получает флаг и сообщение.
type Result struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func Success() Result {
	return Result{OK: true}
}

func Failed(message string, err error) Result {
	return Result{OK: false, Message: message, Err: err}
}

func (r Result) IsFailed() bool {
	return !r.OK
}
