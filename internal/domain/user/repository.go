package user

import (
	"context"
)

// UserRepository returns a zero User (IsEmpty) when no row matches.
type UserRepository interface {
	GetAll(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByKey(ctx context.Context, key LookupKey) (User, error)
	GetByCredentials(ctx context.Context, username, password string) (User, error)
	ExistsByKey(ctx context.Context, key LookupKey) (bool, error)
	Save(ctx context.Context, newUser User) (User, error)
	Update(ctx context.Context, req UpdateUserRequest) error
	DeleteByID(ctx context.Context, id int64) error
}
