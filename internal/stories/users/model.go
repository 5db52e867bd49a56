package users

import "time"

type User struct {
	ID         int64
	TelegramID int64
	Language   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Критерии для получения пользователя
type GetCriteria struct {
	ID         *int64
	TelegramID *int64
}

// Параметры для обновления пользователя
type UpdateParams struct {
	Language *string
}
