package postgresql

import (
	"context"
	"errors"
	"strconv"

	"github.com/cmlabs-hris/ers-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ers-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/ers-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

const userBaseQuery = `
	SELECT id, username, password, first_name, last_name, email, role
	FROM users
`

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

// GetAll implements user.UserRepository.
func (r *userRepositoryImpl) GetAll(ctx context.Context) ([]user.User, error) {
	rows, err := GetQuerier(ctx, r.db).Query(ctx, userBaseQuery+` ORDER BY id`)
	if err != nil {
		return nil, apperror.Internal("Unable to get all users", err)
	}

	found, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[userRow])
	if err != nil {
		return nil, apperror.Internal("Unable to get all users", err)
	}

	return mapUserRows(found), nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id int64) (user.User, error) {
	return r.getOne(ctx, userBaseQuery+` WHERE id = $1`, id)
}

// GetByKey implements user.UserRepository.
func (r *userRepositoryImpl) GetByKey(ctx context.Context, key user.LookupKey) (user.User, error) {
	arg, ok := lookupArg(key)
	if !ok {
		return user.User{}, nil
	}
	return r.getOne(ctx, userBaseQuery+` WHERE `+key.Column()+` = $1`, arg)
}

// GetByCredentials implements user.UserRepository. A username that exists with
// a different password is reported the same way as an unknown username.
func (r *userRepositoryImpl) GetByCredentials(ctx context.Context, username, password string) (user.User, error) {
	found, err := r.getOne(ctx, userBaseQuery+` WHERE username = $1`, username)
	if err != nil || found.IsEmpty() {
		return found, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.Password), []byte(password)); err != nil {
		return user.User{}, nil
	}

	return found, nil
}

// ExistsByKey implements user.UserRepository.
func (r *userRepositoryImpl) ExistsByKey(ctx context.Context, key user.LookupKey) (bool, error) {
	arg, ok := lookupArg(key)
	if !ok {
		return false, nil
	}

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE ` + key.Column() + ` = $1)`

	var exists bool
	if err := GetQuerier(ctx, r.db).QueryRow(ctx, query, arg).Scan(&exists); err != nil {
		return false, apperror.Internal("Unable to check user uniqueness", err)
	}
	return exists, nil
}

// Save implements user.UserRepository. The password is stored as a bcrypt hash.
func (r *userRepositoryImpl) Save(ctx context.Context, newUser user.User) (user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(newUser.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, apperror.Internal("Unable to hash password", err)
	}

	query := `
		INSERT INTO users (username, password, first_name, last_name, email, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, username, password, first_name, last_name, email, role
	`

	rows, err := GetQuerier(ctx, r.db).Query(ctx, query,
		newUser.Username,
		string(hash),
		newUser.FirstName,
		newUser.LastName,
		newUser.Email,
		string(newUser.Role),
	)
	if err != nil {
		return user.User{}, apperror.Internal("Unable to save user", err)
	}

	created, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[userRow])
	if err != nil {
		if uniqueErr := userUniqueError(err); uniqueErr != nil {
			return user.User{}, uniqueErr
		}
		if dataViolation(err) {
			return user.User{}, user.ErrInvalidUser
		}
		return user.User{}, apperror.Internal("Unable to save user", err)
	}

	return mapUserRow(created), nil
}

// Update implements user.UserRepository.
func (r *userRepositoryImpl) Update(ctx context.Context, req user.UpdateUserRequest) error {
	query := `
		UPDATE users
		SET username = $2, first_name = $3, last_name = $4, updated_at = NOW()
		WHERE id = $1
	`
	if _, err := GetQuerier(ctx, r.db).Exec(ctx, query, req.ID, req.Username, req.FirstName, req.LastName); err != nil {
		if uniqueErr := userUniqueError(err); uniqueErr != nil {
			return uniqueErr
		}
		if dataViolation(err) {
			return user.ErrInvalidUser
		}
		return apperror.Internal("Unable to update user", err)
	}
	return nil
}

// DeleteByID implements user.UserRepository.
func (r *userRepositoryImpl) DeleteByID(ctx context.Context, id int64) error {
	if _, err := GetQuerier(ctx, r.db).Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		if _, ok := constraintViolation(err, pgForeignKeyViolation); ok {
			return user.ErrUserHasReimbursements
		}
		return apperror.Internal("Unable to delete user", err)
	}
	return nil
}

func (r *userRepositoryImpl) getOne(ctx context.Context, query string, args ...any) (user.User, error) {
	rows, err := GetQuerier(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return user.User{}, apperror.Internal("Unable to get user", err)
	}

	found, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[userRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return mapUserRow(nil), nil
		}
		return user.User{}, apperror.Internal("Unable to get user", err)
	}

	return mapUserRow(found), nil
}

// lookupArg converts the key value to the column's type. An id that does not
// parse cannot match any row.
func lookupArg(key user.LookupKey) (any, bool) {
	if key.Field != user.LookupByID {
		return key.Value, true
	}
	id, err := strconv.ParseInt(key.Value, 10, 64)
	if err != nil {
		return nil, false
	}
	return id, true
}

// userUniqueError maps a unique violation that slipped past ExistsByKey to
// the matching domain error.
func userUniqueError(err error) error {
	constraint, ok := constraintViolation(err, pgUniqueViolation)
	if !ok {
		return nil
	}
	if constraint == "users_email_key" {
		return user.ErrEmailTaken
	}
	return user.ErrUsernameTaken
}
