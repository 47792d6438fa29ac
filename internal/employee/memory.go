package employee

import (
	"context"
	"sort"
	"strings"
	"sync"
)

type memoryRecord struct {
	employee Employee
	hash     string
}

// MemoryStore keeps the roster in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
	// highest employee number ever reserved or stored; never decreases
	highest int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]memoryRecord)}
}

func (m *MemoryStore) List(_ context.Context) ([]Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Employee, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r.employee)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.records[id]
	if !ok {
		return Employee{}, ErrNotFound
	}
	return r.employee, nil
}

func (m *MemoryStore) Create(_ context.Context, e Employee, passwordHash string) (Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[e.ID]; ok {
		return Employee{}, ErrDuplicateID
	}
	if m.emailTaken(e.Email, "") {
		return Employee{}, ErrDuplicateEmail
	}
	m.records[e.ID] = memoryRecord{employee: e, hash: passwordHash}
	if n, ok := ParseID(e.ID); ok && n > m.highest {
		m.highest = n
	}
	return e, nil
}

func (m *MemoryStore) Update(_ context.Context, e Employee, passwordHash string) (Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.records[e.ID]
	if !ok {
		return Employee{}, ErrNotFound
	}
	if m.emailTaken(e.Email, e.ID) {
		return Employee{}, ErrDuplicateEmail
	}
	r.employee = e
	if passwordHash != "" {
		r.hash = passwordHash
	}
	m.records[e.ID] = r
	return e, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return ErrNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *MemoryStore) PasswordHash(_ context.Context, id string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.records[id]
	if !ok {
		return "", ErrNotFound
	}
	return r.hash, nil
}

func (m *MemoryStore) NextID(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.highest++
	return FormatID(m.highest), nil
}

// emailTaken must be called with the lock held.
func (m *MemoryStore) emailTaken(email, exceptID string) bool {
	for id, r := range m.records {
		if id != exceptID && strings.EqualFold(r.employee.Email, email) {
			return true
		}
	}
	return false
}
