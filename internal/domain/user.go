package domain

import "time"

// User пользователь
// Учётные данные и профиль принадлежат внешнему сервису;
// ядро мутирует только поля штрафа за неявки
type User struct {
	ID             int64
	Name           string
	NoShowCount    int
	IsPenalized    bool
	PenaltyEndDate *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsCurrentlyPenalized возвращает true, если штраф действует на момент now
// Флаг is_penalized проверяется лениво: истёкший штраф не блокирует пользователя
func (u *User) IsCurrentlyPenalized(now time.Time) bool {
	if !u.IsPenalized {
		return false
	}
	if u.PenaltyEndDate == nil {
		return false
	}
	return now.Before(*u.PenaltyEndDate)
}

// PenaltyExpired возвращает true, если флаг штрафа выставлен, но срок истёк
// Такой штраф подлежит ленивому сбросу при следующем бронировании
func (u *User) PenaltyExpired(now time.Time) bool {
	return u.IsPenalized && (u.PenaltyEndDate == nil || !now.Before(*u.PenaltyEndDate))
}
