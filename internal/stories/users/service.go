package users

import (
	"context"

	"github.com/samber/lo"
)

// Service provides business logic for user operations
type Service struct {
	storage Storage
}

// NewService creates a new user service
func NewService(storage Storage) *Service {
	return &Service{
		storage: storage,
	}
}

// GetOrCreateUserByTelegramID получает пользователя по Telegram ID или создает нового.
// Непустой language перезаписывает сохранённый язык.
func (s *Service) GetOrCreateUserByTelegramID(ctx context.Context, telegramID int64, language string) (*User, error) {
	existingUser, err := s.storage.GetUser(ctx, GetCriteria{
		TelegramID: &telegramID,
	})
	if err != nil {
		return nil, err
	}

	if existingUser == nil {
		return s.storage.CreateUser(ctx, User{
			TelegramID: telegramID,
			Language:   language,
		})
	}

	if language == "" || existingUser.Language == language {
		return existingUser, nil
	}

	return s.storage.UpdateUser(ctx, GetCriteria{
		ID: lo.ToPtr(existingUser.ID),
	}, UpdateParams{
		Language: lo.ToPtr(language),
	})
}

// CountUsers количество пользователей, которые когда-либо писали боту
func (s *Service) CountUsers(ctx context.Context) (int64, error) {
	return s.storage.CountUsers(ctx)
}
