package http

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/cmlabs-hris/ers-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ers-backend-go/internal/domain/reimbursement"
	"github.com/cmlabs-hris/ers-backend-go/internal/domain/user"
)

// memUserRepository keeps plaintext passwords; hashing is covered by the
// postgresql repository tests.
type memUserRepository struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]user.User
}

func newMemUserRepository() *memUserRepository {
	return &memUserRepository{users: map[int64]user.User{}}
}

func (m *memUserRepository) GetAll(_ context.Context) ([]user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := make([]user.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *memUserRepository) GetByID(_ context.Context, id int64) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[id], nil
}

func (m *memUserRepository) GetByKey(ctx context.Context, key user.LookupKey) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(key), nil
}

func (m *memUserRepository) find(key user.LookupKey) user.User {
	for _, u := range m.users {
		switch key.Field {
		case user.LookupByID:
			if strconv.FormatInt(u.ID, 10) == key.Value {
				return u
			}
		case user.LookupByUsername:
			if u.Username == key.Value {
				return u
			}
		case user.LookupByEmail:
			if u.Email == key.Value {
				return u
			}
		}
	}
	return user.User{}
}

func (m *memUserRepository) GetByCredentials(_ context.Context, username, password string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.find(user.ByUsername(username))
	if u.IsEmpty() || u.Password != password {
		return user.User{}, nil
	}
	return u, nil
}

func (m *memUserRepository) ExistsByKey(_ context.Context, key user.LookupKey) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.find(key).IsEmpty(), nil
}

func (m *memUserRepository) Save(_ context.Context, newUser user.User) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	newUser.ID = m.nextID
	m.users[newUser.ID] = newUser
	return newUser, nil
}

func (m *memUserRepository) Update(_ context.Context, req user.UpdateUserRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.users[req.ID]
	u.Username, u.FirstName, u.LastName = req.Username, req.FirstName, req.LastName
	m.users[req.ID] = u
	return nil
}

func (m *memUserRepository) DeleteByID(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	return nil
}

type memReimbursementRepository struct {
	mu      sync.Mutex
	nextID  int64
	records map[int64]reimbursement.Reimbursement
}

func newMemReimbursementRepository() *memReimbursementRepository {
	return &memReimbursementRepository{records: map[int64]reimbursement.Reimbursement{}}
}

func (m *memReimbursementRepository) filter(keep func(reimbursement.Reimbursement) bool) []reimbursement.Reimbursement {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]reimbursement.Reimbursement, 0)
	for _, r := range m.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memReimbursementRepository) GetAll(_ context.Context) ([]reimbursement.Reimbursement, error) {
	return m.filter(func(reimbursement.Reimbursement) bool { return true }), nil
}

func (m *memReimbursementRepository) GetAllByAuthor(_ context.Context, authorID int64) ([]reimbursement.Reimbursement, error) {
	return m.filter(func(r reimbursement.Reimbursement) bool { return r.Author == authorID }), nil
}

func (m *memReimbursementRepository) GetByID(_ context.Context, id int64) (reimbursement.Reimbursement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[id], nil
}

func (m *memReimbursementRepository) GetByKey(_ context.Context, key reimbursement.LookupKey) (reimbursement.Reimbursement, error) {
	found := m.filter(func(r reimbursement.Reimbursement) bool {
		if key.Field == reimbursement.LookupByReceipt {
			return r.Receipt != nil && *r.Receipt == key.Value
		}
		return strconv.FormatInt(r.ID, 10) == key.Value
	})
	if len(found) == 0 {
		return reimbursement.Reimbursement{}, nil
	}
	return found[0], nil
}

func (m *memReimbursementRepository) Save(_ context.Context, r reimbursement.Reimbursement) (reimbursement.Reimbursement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	r.ID = m.nextID
	m.records[r.ID] = r
	return r, nil
}

func (m *memReimbursementRepository) Update(_ context.Context, updated reimbursement.Reimbursement) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.records[updated.ID]
	if !ok || !current.IsPending() {
		return false, nil
	}
	current.Amount, current.Description, current.Type = updated.Amount, updated.Description, updated.Type
	m.records[updated.ID] = current
	return true, nil
}

func (m *memReimbursementRepository) Resolve(_ context.Context, resolved reimbursement.Reimbursement) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.records[resolved.ID]
	if !ok || !current.IsPending() {
		return false, nil
	}
	current.Status, current.Resolver, current.Resolved = resolved.Status, resolved.Resolver, resolved.Resolved
	m.records[resolved.ID] = current
	return true, nil
}

func (m *memReimbursementRepository) DeleteByID(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, id)
	return nil
}

type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]auth.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: map[string]auth.Session{}}
}

func (m *memSessionStore) Create(_ context.Context, session auth.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
	return nil
}

func (m *memSessionStore) Get(_ context.Context, sessionID string) (auth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return auth.Session{}, auth.ErrSessionNotFound
	}
	return session, nil
}

func (m *memSessionStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

func (m *memSessionStore) DeleteByUser(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, session := range m.sessions {
		if session.Principal.UserID == userID {
			delete(m.sessions, id)
		}
	}
	return nil
}

// directTransactor runs fn without a transaction.
type directTransactor struct{}

func (directTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
