package user

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/ers-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ers-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/ers-backend-go/internal/pkg/validator"
)

type UserServiceImpl struct {
	user.UserRepository
	tx database.Transactor
}

func NewUserService(userRepository user.UserRepository, tx database.Transactor) user.UserService {
	return &UserServiceImpl{UserRepository: userRepository, tx: tx}
}

// AuthenticateUser implements user.UserService.
func (s *UserServiceImpl) AuthenticateUser(ctx context.Context, username, password string) (user.User, error) {
	if !validator.IsValidStrings(username, password) {
		return user.User{}, user.ErrInvalidCredentials
	}

	found, err := s.UserRepository.GetByCredentials(ctx, username, password)
	if err != nil {
		return user.User{}, err
	}
	if found.IsEmpty() {
		return user.User{}, user.ErrBadCredentials
	}

	return user.RemovePassword(found), nil
}

// GetAllUsers implements user.UserService.
func (s *UserServiceImpl) GetAllUsers(ctx context.Context) ([]user.User, error) {
	users, err := s.UserRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, user.ErrNoUsers
	}

	stripped := make([]user.User, 0, len(users))
	for _, u := range users {
		stripped = append(stripped, user.RemovePassword(u))
	}
	return stripped, nil
}

// GetUserByID implements user.UserService.
func (s *UserServiceImpl) GetUserByID(ctx context.Context, id int64) (user.User, error) {
	if !validator.IsValidID(id) {
		return user.User{}, user.ErrInvalidID
	}

	found, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.User{}, err
	}
	if found.IsEmpty() {
		return user.User{}, user.ErrUserNotFound
	}

	return user.RemovePassword(found), nil
}

// GetUserByUniqueKey implements user.UserService.
func (s *UserServiceImpl) GetUserByUniqueKey(ctx context.Context, key user.LookupKey) (user.User, error) {
	if key.Field == user.LookupByID {
		return s.GetUserByID(ctx, validator.ParseID(key.Value))
	}

	if !validator.IsValidStrings(key.Value) {
		return user.User{}, user.ErrInvalidLookupValue
	}

	found, err := s.UserRepository.GetByKey(ctx, key)
	if err != nil {
		return user.User{}, err
	}
	if found.IsEmpty() {
		return user.User{}, user.ErrUserNotFound
	}

	return user.RemovePassword(found), nil
}

// AddNewUser implements user.UserService. New users always start with the
// default role. The availability checks and the insert share a transaction.
func (s *UserServiceImpl) AddNewUser(ctx context.Context, req user.CreateUserRequest) (user.User, error) {
	if !validator.IsValidObject(req) {
		return user.User{}, user.ErrInvalidUser
	}

	var saved user.User
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		available, err := s.isUsernameAvailable(ctx, req.Username)
		if err != nil {
			return err
		}
		if !available {
			return user.ErrUsernameTaken
		}

		available, err = s.isEmailAvailable(ctx, req.Email)
		if err != nil {
			return err
		}
		if !available {
			return user.ErrEmailTaken
		}

		saved, err = s.UserRepository.Save(ctx, user.User{
			Username:  req.Username,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Role:      user.DefaultRole,
		})
		return err
	})
	if err != nil {
		return user.User{}, err
	}

	slog.Info("User registered", "user_id", saved.ID, "username", saved.Username)
	return user.RemovePassword(saved), nil
}

// UpdateUser implements user.UserService. Only username and names change.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, req user.UpdateUserRequest) error {
	if !validator.IsValidObject(req) || !validator.IsValidID(req.ID) {
		return user.ErrInvalidUser
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.GetUserByID(ctx, req.ID)
		if err != nil {
			return err
		}

		if current.Username != req.Username {
			available, err := s.isUsernameAvailable(ctx, req.Username)
			if err != nil {
				return err
			}
			if !available {
				return user.ErrUsernameTaken
			}
		}

		return s.UserRepository.Update(ctx, req)
	})
}

// DeleteByID implements user.UserService.
func (s *UserServiceImpl) DeleteByID(ctx context.Context, id int64) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.GetUserByID(ctx, id); err != nil {
			return err
		}
		return s.UserRepository.DeleteByID(ctx, id)
	})
}

func (s *UserServiceImpl) isUsernameAvailable(ctx context.Context, username string) (bool, error) {
	exists, err := s.UserRepository.ExistsByKey(ctx, user.ByUsername(username))
	return !exists, err
}

func (s *UserServiceImpl) isEmailAvailable(ctx context.Context, email string) (bool, error) {
	exists, err := s.UserRepository.ExistsByKey(ctx, user.ByEmail(email))
	return !exists, err
}
