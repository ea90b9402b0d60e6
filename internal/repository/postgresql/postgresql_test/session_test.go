package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/ers-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ers-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ers-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_Lifecycle(t *testing.T) {
	setup := NewTestDatabase(t)
	store := postgresql.NewSessionRepository(setup.DB)
	owner := setup.CreateUser(t, "owner", user.RoleManager)
	ctx := context.Background()

	session := auth.Session{
		ID:        "sid-1",
		Principal: auth.Principal{UserID: owner.ID, Username: owner.Username, Role: owner.Role},
		UserAgent: "test",
		IPAddress: "127.0.0.1",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}
	require.NoError(t, store.Create(ctx, session))

	found, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, session, found)

	require.NoError(t, store.Delete(ctx, "sid-1"))
	require.NoError(t, store.Delete(ctx, "sid-1"))

	_, err = store.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	setup := NewTestDatabase(t)
	store := postgresql.NewSessionRepository(setup.DB)
	owner := setup.CreateUser(t, "owner", user.RoleEmployee)
	ctx := context.Background()
	principal := auth.Principal{UserID: owner.ID, Username: owner.Username, Role: owner.Role}

	require.NoError(t, store.Create(ctx, auth.Session{ID: "old", Principal: principal, ExpiresAt: time.Now().Add(-time.Minute).Unix()}))
	require.NoError(t, store.Create(ctx, auth.Session{ID: "new", Principal: principal, ExpiresAt: time.Now().Add(time.Hour).Unix()}))

	_, err := store.Get(ctx, "old")
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)

	removed, err := store.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = store.Get(ctx, "new")
	assert.NoError(t, err)
}

func TestSessionRepository_DeleteByUser(t *testing.T) {
	setup := NewTestDatabase(t)
	store := postgresql.NewSessionRepository(setup.DB)
	leaver := setup.CreateUser(t, "leaver", user.RoleEmployee)
	stayer := setup.CreateUser(t, "stayer", user.RoleEmployee)
	ctx := context.Background()
	expires := time.Now().Add(time.Hour).Unix()

	for _, id := range []string{"a", "b"} {
		require.NoError(t, store.Create(ctx, auth.Session{ID: id, Principal: auth.Principal{UserID: leaver.ID, Username: leaver.Username, Role: leaver.Role}, ExpiresAt: expires}))
	}
	require.NoError(t, store.Create(ctx, auth.Session{ID: "c", Principal: auth.Principal{UserID: stayer.ID, Username: stayer.Username, Role: stayer.Role}, ExpiresAt: expires}))

	require.NoError(t, store.DeleteByUser(ctx, leaver.ID))

	for _, id := range []string{"a", "b"} {
		_, err := store.Get(ctx, id)
		assert.ErrorIs(t, err, auth.ErrSessionNotFound)
	}
	_, err := store.Get(ctx, "c")
	assert.NoError(t, err)
}
