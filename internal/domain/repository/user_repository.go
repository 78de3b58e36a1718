package repository

import (
	"context"

	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByLoginID(ctx context.Context, loginID string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}
