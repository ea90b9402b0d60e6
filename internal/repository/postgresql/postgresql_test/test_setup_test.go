package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/ers-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ers-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/ers-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// TestDatabaseSetup holds a migrated connection to the test database.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies migrations. The
// calling test is skipped when the variable is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	require.NoError(t, database.Migrate(dsn))

	db, err := database.NewPostgreSQLDB(context.Background(), dsn, database.DefaultPoolOptions)
	require.NoError(t, err, "failed to connect to test database")

	setup := &TestDatabaseSetup{DB: db}
	require.NoError(t, setup.TruncateAllTables(context.Background()))
	t.Cleanup(setup.Close)
	return setup
}

// TruncateAllTables removes all rows and resets id sequences.
func (s *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tables := []string{"sessions", "reimbursements", "users"}

	return postgresql.WithTransaction(ctx, s.DB, func(ctx context.Context) error {
		q := postgresql.GetQuerier(ctx, s.DB)
		for _, table := range tables {
			if _, err := q.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)); err != nil {
				return fmt.Errorf("failed to truncate table %s: %w", table, err)
			}
		}
		return nil
	})
}

// CreateUser saves a user through the repository.
func (s *TestDatabaseSetup) CreateUser(t *testing.T, username string, role user.Role) user.User {
	t.Helper()

	saved, err := postgresql.NewUserRepository(s.DB).Save(context.Background(), user.User{
		Username:  username,
		Password:  "password123",
		FirstName: "Test",
		LastName:  "User",
		Email:     username + "@example.com",
		Role:      role,
	})
	require.NoError(t, err)
	return saved
}

func (s *TestDatabaseSetup) Close() {
	s.DB.Close()
}
