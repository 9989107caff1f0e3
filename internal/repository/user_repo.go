package repository

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/shop-service/internal/domain/entity"
)

// UpdateUserParams carries the fields to overwrite; nil fields are left untouched.
type UpdateUserParams struct {
	Name     *string
	Password *string
	Phone    *string
	Address  *string
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	FindByID(ctx context.Context, userID string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByEmailAndAnswer(ctx context.Context, email, answer string) (*entity.User, error)
	UpdateByID(ctx context.Context, userID string, params UpdateUserParams) (*entity.User, error)
}
