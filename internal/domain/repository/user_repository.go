package repository

import (
	"context"

	"github.com/lpg-station-service/internal/domain"
)

// UserRepository - доступ к пользователям
type UserRepository interface {
	// Create создаёт пользователя
	Create(ctx context.Context, user *domain.User) error

	// GetByID возвращает пользователя по ID
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail возвращает пользователя по email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListByRole возвращает пользователей с указанной ролью,
	// опционально только активных, с пагинацией
	ListByRole(ctx context.Context, role string, activeOnly bool, page, perPage int) ([]*domain.User, int, error)

	// Update перезаписывает изменяемые поля пользователя
	Update(ctx context.Context, user *domain.User) error

	// Delete удаляет пользователя. Строки журнала назначений,
	// где он менеджер, удаляются каскадом.
	Delete(ctx context.Context, id string) error
}
