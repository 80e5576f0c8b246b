package create_booking

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrUserPenalized возвращается, когда у пользователя действует штраф за неявки
	ErrUserPenalized = errors.New("create_booking: user is penalized")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrSlotClosed возвращается, когда слот деактивирован
	ErrSlotClosed = errors.New("create_booking: slot is closed")

	// ErrSlotFull возвращается, когда вместимость слота исчерпана
	ErrSlotFull = errors.New("create_booking: slot is full")

	// ErrDuplicateBooking возвращается, когда у пользователя уже есть
	// активное бронирование в этом слоте
	ErrDuplicateBooking = errors.New("create_booking: active booking for this slot already exists")

	// ErrDailyLimitExceeded возвращается при превышении лимита бронирований в день
	ErrDailyLimitExceeded = errors.New("create_booking: daily booking limit exceeded")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
