package user

import "context"

type UserService interface {
	AuthenticateUser(ctx context.Context, username, password string) (User, error)
	GetAllUsers(ctx context.Context) ([]User, error)
	GetUserByID(ctx context.Context, id int64) (User, error)
	GetUserByUniqueKey(ctx context.Context, key LookupKey) (User, error)
	AddNewUser(ctx context.Context, req CreateUserRequest) (User, error)
	UpdateUser(ctx context.Context, req UpdateUserRequest) error
	DeleteByID(ctx context.Context, id int64) error
}
