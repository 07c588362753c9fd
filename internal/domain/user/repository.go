package user

import "context"

type Repository interface {
	GetByID(ctx context.Context, id uint) (*User, error)
	Create(ctx context.Context, u *User) error
}
