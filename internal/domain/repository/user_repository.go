package repository

import (
	"context"

	"campusmarket/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, profile *entity.UserProfile) error
	GetByUID(ctx context.Context, uid string) (*entity.UserProfile, error)
	Update(ctx context.Context, profile *entity.UserProfile) error
}
