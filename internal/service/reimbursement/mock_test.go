package reimbursement

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/ers-backend-go/internal/domain/reimbursement"
	"github.com/stretchr/testify/mock"
)

type mockReimbursementRepository struct {
	mock.Mock
}

func (m *mockReimbursementRepository) GetAll(ctx context.Context) ([]reimbursement.Reimbursement, error) {
	args := m.Called(ctx)
	all, _ := args.Get(0).([]reimbursement.Reimbursement)
	return all, args.Error(1)
}

func (m *mockReimbursementRepository) GetAllByAuthor(ctx context.Context, authorID int64) ([]reimbursement.Reimbursement, error) {
	args := m.Called(ctx, authorID)
	all, _ := args.Get(0).([]reimbursement.Reimbursement)
	return all, args.Error(1)
}

func (m *mockReimbursementRepository) GetByID(ctx context.Context, id int64) (reimbursement.Reimbursement, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(reimbursement.Reimbursement), args.Error(1)
}

func (m *mockReimbursementRepository) GetByKey(ctx context.Context, key reimbursement.LookupKey) (reimbursement.Reimbursement, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(reimbursement.Reimbursement), args.Error(1)
}

func (m *mockReimbursementRepository) Save(ctx context.Context, r reimbursement.Reimbursement) (reimbursement.Reimbursement, error) {
	args := m.Called(ctx, r)
	if fn, ok := args.Get(0).(func(context.Context, reimbursement.Reimbursement) reimbursement.Reimbursement); ok {
		return fn(ctx, r), args.Error(1)
	}
	return args.Get(0).(reimbursement.Reimbursement), args.Error(1)
}

func (m *mockReimbursementRepository) Update(ctx context.Context, r reimbursement.Reimbursement) (bool, error) {
	args := m.Called(ctx, r)
	return args.Bool(0), args.Error(1)
}

func (m *mockReimbursementRepository) Resolve(ctx context.Context, r reimbursement.Reimbursement) (bool, error) {
	args := m.Called(ctx, r)
	return args.Bool(0), args.Error(1)
}

func (m *mockReimbursementRepository) DeleteByID(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// memoryRepository applies the same pending guard as the SQL repository.
type memoryRepository struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]reimbursement.Reimbursement
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{rows: make(map[int64]reimbursement.Reimbursement)}
}

func (m *memoryRepository) GetAll(ctx context.Context) ([]reimbursement.Reimbursement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]reimbursement.Reimbursement, 0, len(m.rows))
	for id := int64(1); id <= m.nextID; id++ {
		if r, ok := m.rows[id]; ok {
			all = append(all, r)
		}
	}
	return all, nil
}

func (m *memoryRepository) GetAllByAuthor(ctx context.Context, authorID int64) ([]reimbursement.Reimbursement, error) {
	all, _ := m.GetAll(ctx)
	mine := make([]reimbursement.Reimbursement, 0)
	for _, r := range all {
		if r.Author == authorID {
			mine = append(mine, r)
		}
	}
	return mine, nil
}

func (m *memoryRepository) GetByID(ctx context.Context, id int64) (reimbursement.Reimbursement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[id], nil
}

func (m *memoryRepository) GetByKey(ctx context.Context, key reimbursement.LookupKey) (reimbursement.Reimbursement, error) {
	all, _ := m.GetAll(ctx)
	for _, r := range all {
		if r.Receipt != nil && *r.Receipt == key.Value {
			return r, nil
		}
	}
	return reimbursement.Reimbursement{}, nil
}

func (m *memoryRepository) Save(ctx context.Context, r reimbursement.Reimbursement) (reimbursement.Reimbursement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	r.ID = m.nextID
	m.rows[r.ID] = r
	return r, nil
}

func (m *memoryRepository) Update(ctx context.Context, r reimbursement.Reimbursement) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.rows[r.ID]
	if !ok || !current.IsPending() {
		return false, nil
	}
	current.Amount = r.Amount
	current.Description = r.Description
	current.Type = r.Type
	m.rows[r.ID] = current
	return true, nil
}

func (m *memoryRepository) Resolve(ctx context.Context, r reimbursement.Reimbursement) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.rows[r.ID]
	if !ok || !current.IsPending() {
		return false, nil
	}
	current.Status = r.Status
	current.Resolver = r.Resolver
	current.Resolved = r.Resolved
	m.rows[r.ID] = current
	return true, nil
}

func (m *memoryRepository) DeleteByID(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

type countingRecorder struct {
	created  map[string]int
	resolved map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{created: map[string]int{}, resolved: map[string]int{}}
}

func (c *countingRecorder) ReimbursementCreated(t string)  { c.created[t]++ }
func (c *countingRecorder) ReimbursementResolved(s string) { c.resolved[s]++ }

// passThrough runs fn without a transaction and counts rollbacks.
type passThrough struct {
	rolledBack *int
}

func (p passThrough) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	if err != nil && p.rolledBack != nil {
		*p.rolledBack++
	}
	return err
}
