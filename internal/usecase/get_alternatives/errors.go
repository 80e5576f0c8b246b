package get_alternatives

import "errors"

var (
	// ErrSlotNotFound возвращается, когда запрошенный слот не найден
	ErrSlotNotFound = errors.New("get_alternatives: slot not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_alternatives: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_alternatives: internal error")
)
