package user

import (
	"context"

	"github.com/cmlabs-hris/ers-backend-go/internal/domain/user"
	"github.com/stretchr/testify/mock"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) GetAll(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]user.User)
	return users, args.Error(1)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *mockUserRepository) GetByKey(ctx context.Context, key user.LookupKey) (user.User, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *mockUserRepository) GetByCredentials(ctx context.Context, username, password string) (user.User, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *mockUserRepository) ExistsByKey(ctx context.Context, key user.LookupKey) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) Save(ctx context.Context, newUser user.User) (user.User, error) {
	args := m.Called(ctx, newUser)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, req user.UpdateUserRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockUserRepository) DeleteByID(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// recordingTransactor runs fn directly and counts how the transactions ended.
type recordingTransactor struct {
	committed  int
	rolledBack int
}

func (t *recordingTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		t.rolledBack++
		return err
	}
	t.committed++
	return nil
}
